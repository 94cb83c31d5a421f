package store

import (
	"context"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// sequence numbers every recorded row (sessions, answers, LLM requests)
// from one counter, so rows of different tables share an order.
type sequence struct {
	mu sync.Mutex
	s  *Store
}

func newSequence(ctx context.Context, s *Store) (*sequence, error) {
	query, args := s.builder().Insert(globalSequenceTable.Name).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
		Query()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequence{s: s}, nil
}

// Next returns one sequence number.
func (q *sequence) Next(ctx context.Context) (int64, error) {
	return q.NextN(ctx, 1)
}

// NextN reserves n consecutive numbers and returns the first. The
// increment and read happen in one statement.
func (q *sequence) NextN(ctx context.Context, n int) (int64, error) {
	if n < 1 {
		return 0, fmt.Errorf("reserve %d sequence numbers", n)
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	stmt := fmt.Sprintf(`UPDATE %s SET next_val = next_val + %d WHERE id = 1 RETURNING next_val - %d`,
		globalSequenceTable.Name, n, n)
	var first int64
	if err := q.s.db.QueryRowContext(ctx, stmt).Scan(&first); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return first, nil
}
