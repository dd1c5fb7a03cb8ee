// Package storage persists the report history and the alert keyword list as
// whole-collection snapshots.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/config"
	"github.com/iWorld-y/sales_agent/app/sales_agent/pkg/model"
)

// ErrMalformed wraps a backing snapshot that exists but cannot be decoded.
var ErrMalformed = errors.New("storage: malformed snapshot")

// Store is implemented by every backend. Loads of a collection that was
// never saved return an empty, non-nil slice.
type Store interface {
	LoadReports(ctx context.Context) ([]model.Report, error)
	SaveReports(ctx context.Context, reports []model.Report) error
	LoadKeywords(ctx context.Context) ([]string, error)
	SaveKeywords(ctx context.Context, keywords []string) error
	Close() error
}

// New opens the backend selected by cfg.Driver.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "postgres":
		if cfg.DSN == "" {
			return nil, fmt.Errorf("storage: postgres dsn is missing")
		}
		return NewPostgresStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
