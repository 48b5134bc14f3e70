package domain

import (
	"strings"
	"time"
)

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// ParseAccountStatus validates a raw status value.
func ParseAccountStatus(s string) (AccountStatus, bool) {
	switch AccountStatus(s) {
	case StatusActive, StatusInactive:
		return AccountStatus(s), true
	}
	return "", false
}

// Well-known account types. The full set is deployment configuration — see
// RoleSet — but these three are referenced by the default capability grants.
const (
	RoleAdmin  = "ADMIN"
	RoleAgent  = "AGENT"
	RoleClient = "CLIENT"
)

// RoleSet is the validated, deployment-configurable set of account types.
// The set is open: deployments may add types (e.g. MANAGER) via config, but
// every stored value must be a member.
type RoleSet struct {
	roles map[string]struct{}
}

// NewRoleSet builds a RoleSet from the configured type names. Values are
// upper-cased and blanks dropped. An empty input yields the default set.
func NewRoleSet(roles []string) RoleSet {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			set[r] = struct{}{}
		}
	}
	if len(set) == 0 {
		set[RoleAdmin] = struct{}{}
		set[RoleAgent] = struct{}{}
		set[RoleClient] = struct{}{}
	}
	return RoleSet{roles: set}
}

// Valid reports whether t is a configured account type.
func (rs RoleSet) Valid(t string) bool {
	_, ok := rs.roles[t]
	return ok
}

// User models a dealership account: staff and customers alike.
type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Firstname    string        `json:"firstname"`
	Middlename   string        `json:"middlename,omitempty"`
	Lastname     string        `json:"lastname"`
	ContactNum   string        `json:"contact_num,omitempty"`
	Type         string        `json:"type"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	CreatedBy    string        `json:"created_by,omitempty"`
	UpdatedBy    string        `json:"updated_by,omitempty"`
}

// NormalizeName upper-cases a person-name field the way every write path
// stores it.
func NormalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
