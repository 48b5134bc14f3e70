package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/driveline/dealership-system/internal/core/ports"
)

// Store implements ports.Store and ports.QueryStore on one shared pool.
// Each unit of work is its own transaction; reads go straight to the pool.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var (
	_ ports.Store      = (*Store)(nil)
	_ ports.QueryStore = (*Store)(nil)
)

// WithinTx opens a transaction and runs fn against it. The transaction is
// guaranteed released on every exit path: committed when fn returns nil,
// rolled back on fn error, commit error, or panic. Integrity errors raised
// at commit time (deferred constraints) are classified like any other.
func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.EntityTx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&entityTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		// Commit failed: nothing staged in this unit of work is visible.
		// Rollback after a failed commit is a no-op but releases the handle.
		_ = tx.Rollback()
		return fmt.Errorf("commit: %w", classify(err))
	}
	return nil
}

// entityTx binds the row-level operations to one open transaction.
type entityTx struct {
	tx *sql.Tx
}

var _ ports.EntityTx = (*entityTx)(nil)

// whereClause joins accumulated filter conditions with AND.
func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
