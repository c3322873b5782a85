package source

import (
	"context"
	"errors"

	"txdash/internal/models"
)

// Source supplies the full snapshot of transaction records in one
// call, no pagination. Implementations return ErrDataUnavailable when
// the underlying location holds no records at all.
type Source interface {
	Records(ctx context.Context) ([]models.TransactionRecord, error)
}

// ErrDataUnavailable is returned when a source has no records to
// supply. The pipeline fails fast on it; the dashboard never starts
// with misleading empty stats.
var ErrDataUnavailable = errors.New("no transaction records available")
