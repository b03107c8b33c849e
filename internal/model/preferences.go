package model

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no supported language matches.
const DefaultLanguage = "en"

// SupportedLanguages lists languages readings can be generated in.
var SupportedLanguages = []string{"en", "ka", "ru", "ko", "zh", "ja", "es", "fr", "de"}

var languageNames = map[string]string{
	"en": "English",
	"ka": "Georgian",
	"ru": "Russian",
	"ko": "Korean",
	"zh": "Chinese",
	"ja": "Japanese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
}

var languageMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		tags = append(tags, language.MustParse(l))
	}
	return language.NewMatcher(tags)
}()

// NormalizeLanguage maps an arbitrary language code (e.g. "ru-RU", "zh-Hans")
// to one of SupportedLanguages, falling back to DefaultLanguage.
func NormalizeLanguage(code string) string {
	if code == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// LanguageName returns the English name of a supported language.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return languageNames[DefaultLanguage]
}

// Color is a user's chosen color.
type Color struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Numbers holds a user's numeric affinities.
type Numbers struct {
	Favorite int `json:"favorite,omitempty"`
	Lucky    int `json:"lucky,omitempty"`
	Guidance int `json:"guidance,omitempty"`
}

// Preferences is the personalization profile stored with a user.
type Preferences struct {
	Language  string   `json:"language"`
	Gender    string   `json:"gender,omitempty"`
	Color     Color    `json:"color,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Numbers   Numbers  `json:"numbers,omitempty"`
}
