// Package storage defines interfaces and implementations for report storage backends.
package storage

import (
	"context"
	"errors"

	"github.com/chrissnell/cardiorhythm/internal/analysis"
)

// ErrNotFound is returned when a report ID is not in the store
var ErrNotFound = errors.New("report not found")

// ReportStore is an interface that provides a few standardized
// methods for various report storage backends
type ReportStore interface {
	SaveReport(ctx context.Context, r *analysis.Report) error
	GetReport(ctx context.Context, id string) (*analysis.Report, error)
	ListReports(ctx context.Context, limit int) ([]analysis.Summary, error)
	Close() error
}
