package interview

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rehearse/internal/questions"
)

var titleCaser = cases.Title(language.English)

// Descriptor pairs a question-bank key with its display label.
type Descriptor struct {
	Key   string
	Label string
}

// Describe resolves a topic key to its descriptor. The key must match an
// embedded question bank.
func Describe(key string) (Descriptor, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, err := questions.Bank(key); err != nil {
		return Descriptor{}, fmt.Errorf("describe topic: %w", err)
	}
	return Descriptor{Key: key, Label: topicLabel(key)}, nil
}

// topicLabel renders the display name for a bank key. Short keys are treated
// as initialisms.
func topicLabel(key string) string {
	if len(key) <= 2 {
		return strings.ToUpper(key) + " Interview"
	}
	return titleCaser.String(key) + " Interview"
}
