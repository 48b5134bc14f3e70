package domain

import "time"

// SystemLog is one append-only audit entry. Rows are created only as the
// side effect of a successful mutation (or a login/registration), always in
// the same transaction as the change they describe, and never updated.
type SystemLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
