package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type quizRepo struct {
	s *Store
}

func (r *quizRepo) SaveSession(ctx context.Context, rec SessionRecord) error {
	first, err := r.s.seq.NextN(ctx, 1+len(rec.Answers))
	if err != nil {
		return err
	}

	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	b := r.s.builder()
	query, args := b.Insert(quizSessionsTable.Name).
		Columns("sequence", "session_id", "category", "direction", "score", "total",
			"percentage", "tier", "duration_ms", "started_at", "finished_at").
		Values(first, rec.SessionID, rec.Category, rec.Direction, rec.Score, rec.Total,
			rec.Percentage, rec.Tier, rec.Duration.Milliseconds(), rec.StartedAt.UTC(), rec.FinishedAt.UTC()).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz session: %w", err)
	}

	if len(rec.Answers) > 0 {
		ins := b.Insert(quizAnswersTable.Name).
			Columns("sequence", "session_id", "glyph", "reading", "kind", "selected", "correct", "answered_at")
		for i, a := range rec.Answers {
			ins.Values(first+1+int64(i), rec.SessionID, a.Glyph, a.Reading, a.Kind, a.Selected, a.Correct, a.AnsweredAt.UTC())
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save quiz answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit quiz session: %w", err)
	}
	return nil
}

func (r *quizRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	b := r.s.builder()
	t := b.Table(quizSessionsTable.Name)
	sel := b.Select(
		t.C("sequence"), t.C("session_id"), t.C("category"), t.C("direction"),
		t.C("score"), t.C("total"), t.C("percentage"), t.C("tier"),
		t.C("duration_ms"), t.C("started_at"), t.C("finished_at"),
	).From(t).OrderBy(entsql.Desc(t.C("sequence")))

	var preds []*entsql.Predicate
	if opts.Category != "" {
		preds = append(preds, entsql.EQ(t.C("category"), opts.Category))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(t.C("finished_at"), opts.From.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec        SessionRecord
			durationMs int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.SessionID, &rec.Category, &rec.Direction,
			&rec.Score, &rec.Total, &rec.Percentage, &rec.Tier,
			&durationMs, &rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan quiz session: %w", err)
		}
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *quizRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	b := r.s.builder()
	t := b.Table(quizAnswersTable.Name)
	query, args := b.Select(
		t.C("glyph"), t.C("reading"), t.C("kind"), t.C("selected"), t.C("correct"), t.C("answered_at"),
	).From(t).
		Where(entsql.EQ(t.C("session_id"), sessionID)).
		OrderBy(t.C("sequence")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Glyph, &a.Reading, &a.Kind, &a.Selected, &a.Correct, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan quiz answer: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *quizRepo) CategoryStats(ctx context.Context) ([]CategoryStat, error) {
	b := r.s.builder()
	t := b.Table(quizSessionsTable.Name)
	query, args := b.Select(
		t.C("category"),
		entsql.As(entsql.Count("*"), "sessions"),
		entsql.As(entsql.Max("percentage"), "best"),
		entsql.As(entsql.Sum("score"), "correct"),
		entsql.As(entsql.Sum("total"), "answered"),
	).From(t).
		GroupBy(t.C("category")).
		OrderBy(t.C("category")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStat
	for rows.Next() {
		var c CategoryStat
		if err := rows.Scan(&c.Category, &c.Sessions, &c.BestPercentage, &c.Correct, &c.Answered); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *quizRepo) WeakestKana(ctx context.Context, limit int) ([]KanaStat, error) {
	b := r.s.builder()
	t := b.Table(quizAnswersTable.Name)
	query, args := b.Select(
		t.C("glyph"),
		t.C("reading"),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As("SUM(CASE WHEN correct THEN 1 ELSE 0 END)", "hits"),
	).From(t).
		GroupBy(t.C("glyph"), t.C("reading")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query kana stats: %w", err)
	}
	defer rows.Close()

	var out []KanaStat
	for rows.Next() {
		var (
			k    KanaStat
			hits sql.NullInt64
		)
		if err := rows.Scan(&k.Glyph, &k.Reading, &k.Attempts, &hits); err != nil {
			return nil, fmt.Errorf("scan kana stats: %w", err)
		}
		k.Correct = int(hits.Int64)
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Lowest accuracy first; among equals, the most practiced first.
	slices.SortFunc(out, func(a, b KanaStat) int {
		if c := cmp.Compare(a.Accuracy(), b.Accuracy()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Attempts, a.Attempts); c != 0 {
			return c
		}
		return cmp.Compare(a.Glyph, b.Glyph)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *quizRepo) Reset(ctx context.Context) error {
	b := r.s.builder()
	for _, table := range []string{quizAnswersTable.Name, quizSessionsTable.Name} {
		query, args := b.Delete(table).Query()
		if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}
