package quiz

import (
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/kanaz/internal/kana"
)

// OptionCount is the number of options a question has when the catalog
// allows it: one answer and three distractors.
const OptionCount = 4

// Kind discriminates questions by the catalog category they were drawn from.
type Kind int

const (
	KindPlain Kind = iota
	KindVoiced
	KindContracted
	KindVocabulary
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindVoiced:
		return "voiced"
	case KindContracted:
		return "contracted"
	case KindVocabulary:
		return "vocabulary"
	}
	return "unknown"
}

func kindOf(c kana.Category) (Kind, error) {
	switch c {
	case kana.CategoryPlain:
		return KindPlain, nil
	case kana.CategoryVoiced:
		return KindVoiced, nil
	case kana.CategoryContracted:
		return KindContracted, nil
	case kana.CategoryVocabulary:
		return KindVocabulary, nil
	}
	return 0, fmt.Errorf("unknown entry category %q", c)
}

// Direction is what the question shows and what the options are.
type Direction int

const (
	// DirectionGlyphToReading shows the kana and offers readings.
	DirectionGlyphToReading Direction = iota
	// DirectionReadingToGlyph shows the reading and offers kana.
	DirectionReadingToGlyph
	// DirectionMixed picks one of the two at random per question.
	DirectionMixed
)

func (d Direction) String() string {
	switch d {
	case DirectionGlyphToReading:
		return "glyph"
	case DirectionReadingToGlyph:
		return "reading"
	case DirectionMixed:
		return "mixed"
	}
	return "unknown"
}

// ParseDirection maps "glyph", "reading" or "mixed" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "glyph":
		return DirectionGlyphToReading, nil
	case "reading":
		return DirectionReadingToGlyph, nil
	case "mixed":
		return DirectionMixed, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Question is one multiple-choice prompt. It is immutable once built.
type Question struct {
	Kind      Kind
	Direction Direction

	Glyph          string
	CorrectReading string
	Script         kana.Script

	// Gloss is set for vocabulary questions only.
	Gloss string

	options []string
	answer  string
}

// NewQuestion builds a question for entry and validates it. dir must be
// resolved (not DirectionMixed). options must contain the answer for dir
// exactly once: the reading for glyph-to-reading, the glyph otherwise.
func NewQuestion(entry kana.Entry, dir Direction, options []string) (Question, error) {
	kind, err := kindOf(entry.Category)
	if err != nil {
		return Question{}, err
	}
	if entry.Glyph == "" || entry.Reading == "" {
		return Question{}, errors.New("entry needs a glyph and a reading")
	}
	if kind != KindVocabulary && entry.Script == "" {
		return Question{}, fmt.Errorf("%s entry %s has no script", kind, entry.Glyph)
	}

	var answer string
	switch dir {
	case DirectionGlyphToReading:
		answer = entry.Reading
	case DirectionReadingToGlyph:
		answer = entry.Glyph
	default:
		return Question{}, fmt.Errorf("question direction must be resolved, got %s", dir)
	}

	n := 0
	for _, o := range options {
		if o == answer {
			n++
		}
	}
	if n != 1 {
		return Question{}, fmt.Errorf("options must contain %q exactly once, found %d", answer, n)
	}

	q := Question{
		Kind:           kind,
		Direction:      dir,
		Glyph:          entry.Glyph,
		CorrectReading: entry.Reading,
		Script:         entry.Script,
		options:        slices.Clone(options),
		answer:         answer,
	}
	if kind == KindVocabulary {
		q.Gloss = entry.Gloss
	}
	return q, nil
}

// Prompt is the text the learner is asked about.
func (q Question) Prompt() string {
	if q.Direction == DirectionReadingToGlyph {
		return q.CorrectReading
	}
	return q.Glyph
}

// Options returns a copy of the options in display order.
func (q Question) Options() []string {
	return slices.Clone(q.options)
}

// Answer is the option that is correct.
func (q Question) Answer() string {
	return q.answer
}
