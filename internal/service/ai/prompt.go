package ai

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/playmate/backend/internal/analysis/mood"
	"github.com/zhouzirui/playmate/backend/internal/model/persona"
)

var styleByMood = map[mood.Label]string{
	mood.Sad:     "The child seems sad or worried. Be gentle, say you understand, and offer a calm activity or a grown-up to talk to.",
	mood.Happy:   "The child seems happy. Match their energy and cheer them on.",
	mood.Neutral: "The child seems calm. Be friendly and curious about what they would like to do.",
}

// BuildSystemPrompt assembles the companion's instructions for one turn.
func BuildSystemPrompt(p persona.Persona, detected mood.Label) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "You are %s, %s. Your tone is %s.\n", p.Name, p.Title, p.Tone)
	if p.PromptHint != "" {
		builder.WriteString(p.PromptHint)
		builder.WriteString("\n")
	}
	if len(p.Traits) > 0 {
		fmt.Fprintf(&builder, "Personality: %s.\n", strings.Join(p.Traits, ", "))
	}

	if len(p.Rules) > 0 {
		builder.WriteString("\nRules:\n")
		for _, rule := range p.Rules {
			builder.WriteString("- ")
			builder.WriteString(rule)
			builder.WriteString("\n")
		}
	}

	if style, ok := styleByMood[detected]; ok {
		builder.WriteString("\nMood check: ")
		builder.WriteString(style)
		builder.WriteString("\n")
	}

	fmt.Fprintf(&builder, "\nYou greeted the child with: %q", p.OpeningLine)
	return builder.String()
}
