// CLAUDE:SUMMARY Manifest YAML schema defining forbidden keyword categories, exact tokens, adjectives and symbols.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a lexicon: its source and the raw keyword tables.
type Manifest struct {
	ID         string              `yaml:"id" json:"id"`
	Version    string              `yaml:"version" json:"version"`
	Source     string              `yaml:"source" json:"source"`
	Categories map[string][]string `yaml:"categories" json:"-"`
	Exact      []string            `yaml:"exact" json:"-"`
	Adjectives []string            `yaml:"adjectives" json:"-"`
	Symbols    []string            `yaml:"symbols" json:"-"`
}

// LoadManifest reads and parses a lexicon manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes a YAML manifest and checks the required fields.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if len(m.Categories) == 0 {
		return nil, fmt.Errorf("no categories defined")
	}
	for name := range m.Categories {
		if !Category(name).valid() {
			return nil, fmt.Errorf("unknown category %q", name)
		}
	}
	return &m, nil
}
