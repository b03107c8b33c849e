package generator

import (
	"strings"

	"github.com/dtroode/neoarcana-server/internal/model"
)

type runeRange struct {
	lo, hi rune
}

type scriptRule struct {
	name     string
	ranges   []runeRange
	minChars int
}

var (
	hanRange = runeRange{0x4E00, 0x9FFF}

	scriptRules = map[string]scriptRule{
		"ka": {"georgian", []runeRange{{0x10A0, 0x10FF}}, 10},
		"ru": {"cyrillic", []runeRange{{0x0400, 0x04FF}}, 10},
		"ko": {"hangul", []runeRange{{0xAC00, 0xD7AF}}, 10},
		"zh": {"han", []runeRange{hanRange}, 5},
		"ja": {"japanese", []runeRange{{0x3040, 0x309F}, {0x30A0, 0x30FF}, hanRange}, 5},
	}
)

func (r scriptRule) contains(c rune) bool {
	for _, rr := range r.ranges {
		if c >= rr.lo && c <= rr.hi {
			return true
		}
	}
	return false
}

// CleanOutput strips markdown fences and checks that text is written in the
// script of language. Languages written in Latin script are not checked.
func CleanOutput(text, language string) (string, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "```", ""))
	if text == "" {
		return "", &model.GenerationError{Reason: model.GenerationReasonInvalidOutput, Err: errEmptyOutput}
	}

	rule, ok := scriptRules[language]
	if !ok {
		return text, nil
	}

	distinct := make(map[rune]struct{})
	for _, c := range strings.ToLower(text) {
		if rule.contains(c) {
			distinct[c] = struct{}{}
		}
	}
	if len(distinct) < rule.minChars {
		return "", &model.GenerationError{
			Reason: model.GenerationReasonInvalidOutput,
			Err:    &scriptError{language: language, script: rule.name, found: len(distinct), min: rule.minChars},
		}
	}

	return text, nil
}
