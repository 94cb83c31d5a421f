package quiz

import (
	"errors"
	"fmt"

	"github.com/abhisek/kanaz/internal/kana"
)

// ErrInvalidState is matched by every InvalidStateError.
var ErrInvalidState = errors.New("invalid quiz state")

// InvalidStateError reports an operation called in a phase that does not
// permit it, such as submitting twice for the same question.
type InvalidStateError struct {
	Op    string
	Phase Phase
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("quiz: %s not allowed in phase %s", e.Op, e.Phase)
}

// Is reports whether target is ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// CatalogWarning flags a category that is too small to build full
// four-option questions. The session still runs with fewer options.
type CatalogWarning struct {
	Category         kana.CategoryID
	Entries          int
	DistinctReadings int
}

func (w CatalogWarning) String() string {
	if w.Entries == 0 {
		return fmt.Sprintf("category %s has no entries", w.Category)
	}
	return fmt.Sprintf("category %s has %d distinct readings across %d entries, fewer than %d options",
		w.Category, w.DistinctReadings, w.Entries, OptionCount)
}
