package postgres

import (
	"context"
	"fmt"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

const (
	insertLogQuery = `
		INSERT INTO system_logs (user_id, action)
		VALUES ($1, $2)
		RETURNING id
	`
	listLogsQuery = `SELECT id, user_id, action, created_at, updated_at, count(*) OVER () FROM system_logs`
)

// InsertLog appends one audit entry inside the open unit of work. The table
// is append-only; there is no update or delete path.
func (t *entityTx) InsertLog(ctx context.Context, entry *domain.SystemLog) error {
	err := t.tx.QueryRowContext(ctx, insertLogQuery, entry.UserID, entry.Action).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("insert system log: %w", classify(err))
	}
	return nil
}

// ListLogs returns audit entries newest first, optionally filtered by a
// case-insensitive substring of the action description.
func (s *Store) ListLogs(ctx context.Context, f ports.LogFilter) ([]domain.SystemLog, int64, error) {
	query := listLogsQuery
	var args []any

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		query += fmt.Sprintf(" WHERE action ILIKE $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list system logs: %w", err)
	}
	defer rows.Close()

	out := []domain.SystemLog{}
	var total int64
	for rows.Next() {
		var entry domain.SystemLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.CreatedAt, &entry.UpdatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan system log: %w", err)
		}
		out = append(out, entry)
	}
	return out, total, rows.Err()
}
