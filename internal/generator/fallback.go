package generator

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dtroode/neoarcana-server/internal/model"
)

//go:embed fallbacks.yaml
var defaultFallbacks []byte

type fallbackEntry struct {
	Text      string   `yaml:"text"`
	CardNames []string `yaml:"cardNames"`
	Positions []string `yaml:"positions"`
}

var _ model.FallbackProvider = (*Fallbacks)(nil)

// Fallbacks serves static readings keyed by reading type and language.
type Fallbacks struct {
	entries map[model.ReadingType]map[string]fallbackEntry
}

// LoadFallbacks parses the embedded fallback readings.
func LoadFallbacks() (*Fallbacks, error) {
	return ParseFallbacks(defaultFallbacks)
}

// ParseFallbacks parses fallback readings from YAML. Every reading type needs an English entry.
func ParseFallbacks(raw []byte) (*Fallbacks, error) {
	var entries map[model.ReadingType]map[string]fallbackEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse fallbacks: %w", err)
	}

	for _, t := range model.ReadingTypes {
		en, ok := entries[t][model.DefaultLanguage]
		if !ok || en.Text == "" {
			return nil, fmt.Errorf("fallback for %s has no %s text", t, model.DefaultLanguage)
		}
	}

	return &Fallbacks{entries: entries}, nil
}

// Fallback returns the static reading for t in language, or in English when no translation exists.
func (f *Fallbacks) Fallback(t model.ReadingType, language string) model.Payload {
	byLang := f.entries[t]
	entry, ok := byLang[language]
	if !ok {
		entry = byLang[model.DefaultLanguage]
		language = model.DefaultLanguage
	}

	return model.Payload{
		Text:      entry.Text,
		CardNames: slices.Clone(entry.CardNames),
		Positions: slices.Clone(entry.Positions),
		Metadata: map[string]string{
			"source":   "fallback",
			"language": language,
		},
	}
}
