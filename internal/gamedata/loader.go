package gamedata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and decodes a YAML file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}
	return Parse[T](filename, content)
}

// LoadFile reads and decodes a YAML file from disk.
func LoadFile[T any](path string) (T, error) {
	var result T

	content, err := os.ReadFile(path)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse[T](path, content)
}

// Parse decodes YAML content. Unknown keys are rejected so typos in data
// files surface at load time; name is only used in error messages.
func Parse[T any](name string, content []byte) (T, error) {
	var result T

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return result, fmt.Errorf("parse %s: empty document", name)
		}
		return result, fmt.Errorf("parse %s: %w", name, err)
	}
	return result, nil
}

// MustLoad reads and decodes an embedded YAML file, panicking on error.
// Use this for data that must be present for the engine to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
