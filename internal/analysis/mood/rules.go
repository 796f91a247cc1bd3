package mood

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownLabel   = errors.New("unknown mood label")
	ErrDuplicateLabel = errors.New("duplicate mood rule")
	ErrEmptyRule      = errors.New("mood rule has no keywords")
	ErrNoRules        = errors.New("no mood rules defined")
)

type rulesFile struct {
	Rules []struct {
		Mood     string   `yaml:"mood"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"rules"`
}

// ParseRules decodes an ordered rule list from YAML:
//
//	rules:
//	  - mood: sad
//	    keywords: [sad, cry]
//	  - mood: happy
//	    keywords: [happy]
//
// The sequence order is the tie-break order.
func ParseRules(data []byte) ([]Rule, error) {
	var doc rulesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode mood rules: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, ErrNoRules
	}

	seen := make(map[Label]bool, len(doc.Rules))
	rules := make([]Rule, 0, len(doc.Rules))
	for _, raw := range doc.Rules {
		label, err := ParseLabel(raw.Mood)
		if err != nil {
			return nil, err
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, label)
		}
		seen[label] = true

		keywords := make([]string, 0, len(raw.Keywords))
		for _, word := range raw.Keywords {
			if strings.TrimSpace(word) != "" {
				keywords = append(keywords, word)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRule, label)
		}
		rules = append(rules, Rule{Label: label, Keywords: keywords})
	}
	return rules, nil
}

// LoadRules reads a rule file; an empty path yields DefaultRules.
func LoadRules(path string) ([]Rule, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mood rules %s: %w", path, err)
	}
	return ParseRules(data)
}
