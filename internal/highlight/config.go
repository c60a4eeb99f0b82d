package highlight

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleDefinition mirrors the YAML representation for easier parsing.
type RuleDefinition struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Fg      string `yaml:"fg"`
	Bg      string `yaml:"bg"`
	Bold    bool   `yaml:"bold"`
}

type ruleFile struct {
	Highlights []RuleDefinition `yaml:"highlights"`
}

// LoadFromFile reads a YAML highlight configuration and compiles it.
func LoadFromFile(path string) (Set, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Set{}, err
	}

	var rf ruleFile
	if err := yaml.Unmarshal(content, &rf); err != nil {
		return Set{}, fmt.Errorf("parse highlights: %w", err)
	}

	return Compile(rf.Highlights)
}
