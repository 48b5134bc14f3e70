package domain

// Principal is the authenticated actor behind a request, resolved by the
// auth middleware from a verified token. It is never populated from the
// request body.
type Principal struct {
	ID    int64
	Email string
	Role  string
}

// IsZero reports whether no principal was resolved. Mutations fail closed
// on a zero principal.
func (p Principal) IsZero() bool {
	return p.ID == 0 && p.Email == ""
}
