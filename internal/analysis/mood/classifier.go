package mood

import (
	"fmt"
	"strings"
)

// Label is one of the fixed moods PlayMate recognises.
type Label string

const (
	Sad     Label = "sad"
	Happy   Label = "happy"
	Neutral Label = "neutral"
)

// Labels lists every mood in declared order. The order is also the order the
// dashboard reports counts in.
func Labels() []Label {
	return []Label{Sad, Happy, Neutral}
}

// ParseLabel validates a raw mood name.
func ParseLabel(raw string) (Label, error) {
	switch Label(strings.ToLower(strings.TrimSpace(raw))) {
	case Sad:
		return Sad, nil
	case Happy:
		return Happy, nil
	case Neutral:
		return Neutral, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLabel, raw)
	}
}

// Rule binds a mood to the keywords that trigger it.
type Rule struct {
	Label    Label
	Keywords []string
}

// DefaultRules returns the built-in keyword lists. Earlier rules win ties.
func DefaultRules() []Rule {
	return []Rule{
		{Label: Sad, Keywords: []string{"sad", "unhappy", "cry", "upset", "angry", "mad", "worried", "scared", "lonely"}},
		{Label: Happy, Keywords: []string{"happy", "joy", "excited", "fun", "awesome", "great", "love"}},
		{Label: Neutral, Keywords: []string{"ok", "fine", "so-so", "alright", "okay"}},
	}
}

// Classifier maps free text to a mood using an ordered rule list.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds a classifier over rules. Keywords are lower-cased once
// up front; empty keywords are dropped since they would match everything.
func NewClassifier(rules []Rule) *Classifier {
	normalized := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, word := range rule.Keywords {
			word = strings.ToLower(strings.TrimSpace(word))
			if word == "" {
				continue
			}
			keywords = append(keywords, word)
		}
		normalized = append(normalized, Rule{Label: rule.Label, Keywords: keywords})
	}
	return &Classifier{rules: normalized}
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify returns the label of the first rule with a keyword contained in
// text, or Neutral when nothing matches. Matching is by substring, so "mad"
// also fires inside "made".
func (c *Classifier) Classify(text string) Label {
	normalized := strings.ToLower(text)
	for _, rule := range c.rules {
		for _, word := range rule.Keywords {
			if strings.Contains(normalized, word) {
				return rule.Label
			}
		}
	}
	return Neutral
}

// Rules returns a copy of the active rule list.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, rule := range c.rules {
		out[i] = Rule{Label: rule.Label, Keywords: append([]string(nil), rule.Keywords...)}
	}
	return out
}
