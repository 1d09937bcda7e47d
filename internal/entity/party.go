package entity

import (
	"github.com/samdwyer/bestiary/internal/combat"
	"github.com/samdwyer/bestiary/internal/gamedata"
)

const (
	maxGold  = 9999
	maxFood  = 9999
	maxKarma = 99
)

// Virtue indexes the party's karma.
type Virtue int

const (
	Honesty Virtue = iota
	Compassion
	Valor
	Justice
	Sacrifice
	Honor
	Spirituality
	Humility
	virtueCount
)

// String returns the virtue name.
func (v Virtue) String() string {
	switch v {
	case Honesty:
		return "Honesty"
	case Compassion:
		return "Compassion"
	case Valor:
		return "Valor"
	case Justice:
		return "Justice"
	case Sacrifice:
		return "Sacrifice"
	case Honor:
		return "Honor"
	case Spirituality:
		return "Spirituality"
	case Humility:
		return "Humility"
	default:
		return "Unknown"
	}
}

// Party represents the player's party of adventurers and the resources
// they share.
type Party struct {
	Members []*Member
	Gold    int
	Food    int
	Karma   [virtueCount]int
}

// NewParty creates a party with starting gold and food.
func NewParty(gold, food int, members ...*Member) *Party {
	p := &Party{
		Members: members,
		Gold:    clamp(gold, 0, maxGold),
		Food:    clamp(food, 0, maxFood),
	}
	for i := range p.Karma {
		p.Karma[i] = maxKarma / 2
	}
	return p
}

// NewPartyFromClasses creates one member per named class using the class
// definitions. Unknown class ids get default stats.
func NewPartyFromClasses(defs []gamedata.ClassDef, names []string, classes []Class) *Party {
	p := NewParty(200, 300)
	for i, class := range classes {
		name := class.String()
		if i < len(names) {
			name = names[i]
		}
		m := NewMember(name, class)
		m.InitFromClassDef(gamedata.ClassByID(defs, class.ID()))
		p.Members = append(p.Members, m)
	}
	return p
}

// Alive returns the members still standing.
func (p *Party) Alive() []*Member {
	var out []*Member
	for _, m := range p.Members {
		if m.IsAlive() {
			out = append(out, m)
		}
	}
	return out
}

// Defeated reports whether every member is dead.
func (p *Party) Defeated() bool {
	return len(p.Alive()) == 0
}

// AdjustGold changes gold by delta within [0, 9999] and returns the amount
// actually changed.
func (p *Party) AdjustGold(delta int) int {
	before := p.Gold
	p.Gold = clamp(p.Gold+delta, 0, maxGold)
	return p.Gold - before
}

// AdjustFood changes food by delta within [0, 9999] and returns the amount
// actually changed.
func (p *Party) AdjustFood(delta int) int {
	before := p.Food
	p.Food = clamp(p.Food+delta, 0, maxFood)
	return p.Food - before
}

// AdjustKarma records a deed against the virtues it touches.
func (p *Party) AdjustKarma(action combat.KarmaAction) {
	switch action {
	case combat.KarmaSparedGood:
		p.adjustVirtue(Compassion, 1)
		p.adjustVirtue(Justice, 1)
	}
}

func (p *Party) adjustVirtue(v Virtue, delta int) {
	p.Karma[v] = clamp(p.Karma[v]+delta, 0, maxKarma)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

var _ combat.Party = (*Party)(nil)
