package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

type mnemonicRepo struct {
	s *Store
}

func (r *mnemonicRepo) GetMnemonic(ctx context.Context, glyph string) (*MnemonicRecord, error) {
	b := r.s.builder()
	t := b.Table(mnemonicsTable.Name)
	query, args := b.Select(t.C("glyph"), t.C("hint"), t.C("story"), t.C("model"), t.C("created_at")).
		From(t).
		Where(entsql.EQ(t.C("glyph"), glyph)).
		Query()

	var rec MnemonicRecord
	err := r.s.db.QueryRowContext(ctx, query, args...).
		Scan(&rec.Glyph, &rec.Hint, &rec.Story, &rec.Model, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mnemonic %s: %w", glyph, err)
	}
	return &rec, nil
}

func (r *mnemonicRepo) SaveMnemonic(ctx context.Context, rec MnemonicRecord) error {
	query, args := r.s.builder().Insert(mnemonicsTable.Name).
		Columns("glyph", "hint", "story", "model", "created_at").
		Values(rec.Glyph, rec.Hint, rec.Story, rec.Model, rec.CreatedAt.UTC()).
		OnConflict(entsql.ConflictColumns("glyph"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save mnemonic %s: %w", rec.Glyph, err)
	}
	return nil
}
