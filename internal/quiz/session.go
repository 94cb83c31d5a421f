package quiz

import (
	"slices"
	"strings"
	"time"

	"github.com/abhisek/kanaz/internal/kana"
)

// Phase is the state of a session.
type Phase int

const (
	PhaseAwaitingAnswer Phase = iota
	PhaseShowingFeedback
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseShowingFeedback:
		return "showing-feedback"
	case PhaseFinished:
		return "finished"
	}
	return "unknown"
}

// Feedback is returned by SubmitAnswer.
type Feedback struct {
	IsCorrect      bool
	CorrectReading string
	// CorrectOption is the option that would have been correct. It equals
	// CorrectReading for glyph-to-reading questions.
	CorrectOption string
}

// Answer records one submitted answer.
type Answer struct {
	Question Question
	Selected string
	Correct  bool
	At       time.Time
}

// Session is one quiz attempt. Its questions are fixed at creation.
// A Session is not safe for concurrent use; callers serialize access
// (the TUI event loop does).
type Session struct {
	id        string
	category  kana.CategoryID
	direction Direction
	questions []Question
	warnings  []CatalogWarning

	index       int
	score       int
	selected    string
	hasSelected bool
	phase       Phase
	answers     []Answer

	now        func() time.Time
	startedAt  time.Time
	finishedAt time.Time
}

func newSession(id string, category kana.CategoryID, dir Direction, questions []Question, warnings []CatalogWarning, now func() time.Time) *Session {
	s := &Session{
		id:        id,
		category:  category,
		direction: dir,
		questions: questions,
		warnings:  warnings,
		phase:     PhaseAwaitingAnswer,
		now:       now,
		startedAt: now(),
	}
	if len(questions) == 0 {
		s.finish()
	}
	return s
}

// SubmitAnswer records option as the answer to the current question.
// Answers are compared after trimming surrounding space and ignoring case.
func (s *Session) SubmitAnswer(option string) (Feedback, error) {
	if s.phase != PhaseAwaitingAnswer {
		return Feedback{}, &InvalidStateError{Op: "submit", Phase: s.phase}
	}
	q := s.questions[s.index]
	correct := strings.EqualFold(strings.TrimSpace(option), q.answer)

	s.selected = option
	s.hasSelected = true
	if correct {
		s.score++
	}
	s.answers = append(s.answers, Answer{
		Question: q,
		Selected: option,
		Correct:  correct,
		At:       s.now(),
	})
	s.phase = PhaseShowingFeedback

	return Feedback{
		IsCorrect:      correct,
		CorrectReading: q.CorrectReading,
		CorrectOption:  q.answer,
	}, nil
}

// Advance moves past the feedback for the current question and returns
// the new phase: AwaitingAnswer if questions remain, Finished otherwise.
func (s *Session) Advance() (Phase, error) {
	if s.phase != PhaseShowingFeedback {
		return s.phase, &InvalidStateError{Op: "advance", Phase: s.phase}
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.selected = ""
		s.hasSelected = false
		s.phase = PhaseAwaitingAnswer
		return s.phase, nil
	}
	s.finish()
	return s.phase, nil
}

// Result returns the score summary of a finished session.
func (s *Session) Result() (Result, error) {
	if s.phase != PhaseFinished {
		return Result{}, &InvalidStateError{Op: "result", Phase: s.phase}
	}
	return newResult(s.score, len(s.questions)), nil
}

func (s *Session) finish() {
	s.phase = PhaseFinished
	s.finishedAt = s.now()
}

// Current returns the question being asked. It reports false once the
// session is finished.
func (s *Session) Current() (Question, bool) {
	if s.phase == PhaseFinished || s.index >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Selected returns the option chosen for the current question, if any.
func (s *Session) Selected() (string, bool) {
	return s.selected, s.hasSelected
}

// ID is the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) Category() kana.CategoryID {
	return s.category
}

func (s *Session) Direction() Direction {
	return s.direction
}

// Index is the zero-based position of the current question.
func (s *Session) Index() int {
	return s.index
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Total() int {
	return len(s.questions)
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

func (s *Session) Questions() []Question {
	return slices.Clone(s.questions)
}

// Answers lists submitted answers in order.
func (s *Session) Answers() []Answer {
	return slices.Clone(s.answers)
}

// Warnings lists catalog problems found while building the session.
func (s *Session) Warnings() []CatalogWarning {
	return slices.Clone(s.warnings)
}

// Elapsed is the time from start to finish, or to now while running.
func (s *Session) Elapsed() time.Duration {
	if s.phase == PhaseFinished {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}
