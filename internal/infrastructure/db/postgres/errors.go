package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// classify reclassifies driver errors into the domain taxonomy. Integrity
// violations (SQLSTATE class 23: unique, foreign key, not-null, check) become
// domain.ErrConstraint with the driver detail preserved for diagnostics.
// Everything else passes through untouched and surfaces as an unexpected
// failure upstream.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return fmt.Errorf("%w: %s", domain.ErrConstraint, detail)
	}
	return err
}
