// Package kana holds the bundled kana tables: plain, voiced and contracted
// kana for both scripts, a short vocabulary list, and example words.
package kana

import "fmt"

// Category partitions the catalog by the kind of entry.
type Category string

const (
	CategoryPlain      Category = "plain"
	CategoryVoiced     Category = "voiced"
	CategoryContracted Category = "contracted"
	CategoryVocabulary Category = "vocabulary"
)

// Script is the writing system an entry is written in.
type Script string

const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
)

// CategoryID names a quiz category. The values are stable and are stored
// with quiz history.
type CategoryID string

const (
	Hiragana   CategoryID = "hiragana"
	Katakana   CategoryID = "katakana"
	Combined   CategoryID = "combined"
	Voiced     CategoryID = "voiced"
	Contracted CategoryID = "contracted"
	Vocabulary CategoryID = "vocabulary"
)

// AllCategories lists every quiz category in menu order.
var AllCategories = []CategoryID{Hiragana, Katakana, Combined, Voiced, Contracted, Vocabulary}

// ParseCategoryID validates s as a category identifier.
func ParseCategoryID(s string) (CategoryID, error) {
	for _, id := range AllCategories {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Label returns the display name of the category.
func (id CategoryID) Label() string {
	switch id {
	case Hiragana:
		return "Hiragana"
	case Katakana:
		return "Katakana"
	case Combined:
		return "Hiragana + Katakana"
	case Voiced:
		return "Dakuten & Handakuten"
	case Contracted:
		return "Yoon"
	case Vocabulary:
		return "Vocabulary"
	}
	return string(id)
}

// Entry is one row of the catalog.
type Entry struct {
	Glyph    string   `yaml:"glyph"`
	Reading  string   `yaml:"reading"`
	Category Category `yaml:"-"`
	Script   Script   `yaml:"script"`

	// Vocabulary only.
	Gloss string `yaml:"gloss"`
	Kanji string `yaml:"kanji"`
	Type  string `yaml:"type"`
	Level string `yaml:"level"`

	// Chart position for plain kana.
	Row    string `yaml:"row"`
	Column string `yaml:"column"`

	// Voiced kana: the plain kana the mark is added to and which mark.
	Base string `yaml:"base"`
	Mark string `yaml:"mark"`

	// Contracted kana: chart group and voicing kind.
	Group string `yaml:"group"`
	Kind  string `yaml:"kind"`
}

// AudioKey returns the key used to look up pronunciation audio.
func (e Entry) AudioKey() string {
	return e.Reading
}

// Example is a word that uses a kana.
type Example struct {
	Word    string `yaml:"word"`
	Reading string `yaml:"reading"`
	Gloss   string `yaml:"gloss"`
}
