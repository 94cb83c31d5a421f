package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Preference keys.
const (
	PrefTheme     = "ui.theme"
	PrefDirection = "quiz.direction"
)

type preferenceRepo struct {
	s *Store
}

func (r *preferenceRepo) GetPreference(ctx context.Context, key string) (string, bool, error) {
	b := r.s.builder()
	t := b.Table(preferencesTable.Name)
	query, args := b.Select(t.C("value")).
		From(t).
		Where(entsql.EQ(t.C("key"), key)).
		Query()

	var value string
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepo) SetPreference(ctx context.Context, key, value string) error {
	query, args := r.s.builder().Insert(preferencesTable.Name).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}
