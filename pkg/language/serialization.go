package language

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a language.
type file struct {
	Symbols []string `yaml:"symbols" json:"symbols"`
}

// MarshalJSON serializes the language as a list of "name/arity" strings.
func (l *Language) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Strings())
}

// UnmarshalJSON deserializes the language from a list of "name/arity" strings.
func (l *Language) UnmarshalJSON(data []byte) error {
	if l == nil {
		return fmt.Errorf("language: UnmarshalJSON on nil pointer")
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return l.set(raw)
}

// MarshalYAML serializes the language as a sequence of "name/arity" strings.
func (l *Language) MarshalYAML() (any, error) {
	return l.Strings(), nil
}

// UnmarshalYAML accepts a sequence of "name/arity" strings.
func (l *Language) UnmarshalYAML(node *yaml.Node) error {
	var raw []string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	return l.set(raw)
}

func (l *Language) set(raw []string) error {
	parsed, err := Parse(raw...)
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}

// Decode reads a language document: a mapping with a "symbols" sequence.
func Decode(data []byte) (*Language, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode language: %w", err)
	}
	return Parse(f.Symbols...)
}

// Load reads a language document from path.
func Load(path string) (*Language, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
