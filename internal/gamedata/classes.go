package gamedata

import "fmt"

// ClassFile is the embedded party class table.
const ClassFile = "classes.yaml"

// WeaponDef is a party member's starting weapon.
type WeaponDef struct {
	Name   string `yaml:"name"`
	Damage int    `yaml:"damage"` // maximum damage before strength is added
	Ranged bool   `yaml:"ranged"`
}

// ArmorDef is a party member's starting armour.
type ArmorDef struct {
	Name    string `yaml:"name"`
	Defense int    `yaml:"defense"` // value an attack roll must beat, 0..255
}

// ClassDef defines a playable class.
type ClassDef struct {
	ID     string    `yaml:"id"`     // matches entity.Class (e.g. "fighter")
	Name   string    `yaml:"name"`   // display name
	Symbol string    `yaml:"symbol"` // single character for rendering
	HP     int       `yaml:"hp"`
	Str    int       `yaml:"str"`
	Dex    int       `yaml:"dex"`
	Int    int       `yaml:"int"`
	Weapon WeaponDef `yaml:"weapon"`
	Armor  ArmorDef  `yaml:"armor"`
}

// SymbolRune returns the symbol as a rune for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '?'
	}
	return rune(c.Symbol[0])
}

// ClassesFile represents the structure of classes.yaml.
type ClassesFile struct {
	Classes []ClassDef `yaml:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.yaml file.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile](ClassFile)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(file.Classes))
	for _, c := range file.Classes {
		if c.ID == "" || c.HP <= 0 {
			return nil, fmt.Errorf("class %q: %w", c.Name, ErrInvalidField)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("class %q: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = true
	}
	return file.Classes, nil
}

// MustLoadClasses loads class definitions, panicking on error.
func MustLoadClasses() []ClassDef {
	classes, err := LoadClasses()
	if err != nil {
		panic(err)
	}
	return classes
}

// ClassByID returns the class with the given id, or nil.
func ClassByID(classes []ClassDef, id string) *ClassDef {
	for i := range classes {
		if classes[i].ID == id {
			return &classes[i]
		}
	}
	return nil
}
