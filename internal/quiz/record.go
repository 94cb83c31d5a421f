package quiz

import (
	"context"
	"fmt"

	"github.com/abhisek/kanaz/internal/store"
)

// Record converts a finished session into its persisted form.
func (s *Session) Record() (store.SessionRecord, error) {
	res, err := s.Result()
	if err != nil {
		return store.SessionRecord{}, err
	}

	answers := make([]store.AnswerRecord, len(s.answers))
	for i, a := range s.answers {
		answers[i] = store.AnswerRecord{
			Glyph:      a.Question.Glyph,
			Reading:    a.Question.CorrectReading,
			Kind:       a.Question.Kind.String(),
			Selected:   a.Selected,
			Correct:    a.Correct,
			AnsweredAt: a.At,
		}
	}

	return store.SessionRecord{
		SessionID:  s.id,
		Category:   string(s.category),
		Direction:  s.direction.String(),
		Score:      res.Score,
		Total:      res.Total,
		Percentage: res.Percentage,
		Tier:       string(res.Tier),
		Duration:   s.Elapsed(),
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
		Answers:    answers,
	}, nil
}

// Save persists a finished session. Sessions with no questions are skipped.
func Save(ctx context.Context, repo store.QuizRepo, s *Session) error {
	if s.Total() == 0 {
		return nil
	}
	rec, err := s.Record()
	if err != nil {
		return err
	}
	if err := repo.SaveSession(ctx, rec); err != nil {
		return fmt.Errorf("save quiz session %s: %w", s.id, err)
	}
	return nil
}
