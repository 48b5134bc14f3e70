package ports

import (
	"context"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// MutationService coordinates a domain mutation and its audit entry as one
// atomic unit.
type MutationService interface {
	Perform(ctx context.Context, change domain.Change, principal domain.Principal) (*domain.MutationResult, error)
}

// Page is a paginated result envelope: the rows plus the unpaginated total.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Size  int   `json:"page_size"`
}

// QueryService builds filtered, paginated reads per entity kind. Pagination
// is zero-indexed: offset = page * page_size.
type QueryService interface {
	Users(ctx context.Context, f UserFilter, page, size int) (*Page[domain.User], error)
	UserByID(ctx context.Context, id int64) (*domain.User, error)

	Cars(ctx context.Context, f CarFilter, page, size int) (*Page[domain.Car], error)
	CarByID(ctx context.Context, id int64) (*domain.Car, error)

	Sales(ctx context.Context, page, size int) (*Page[domain.SaleDetail], error)
	SaleByID(ctx context.Context, id int64) (*domain.SaleDetail, error)

	Logs(ctx context.Context, search string, page, size int) (*Page[domain.SystemLog], error)
}

// RegisterInput is the self-service registration payload.
type RegisterInput struct {
	Email      string
	Password   string
	Firstname  string
	Middlename string
	Lastname   string
	ContactNum string
}

// AuthService authenticates principals and manages token lifecycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}
