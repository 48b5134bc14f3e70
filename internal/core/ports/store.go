package ports

import (
	"context"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// EntityTx is the set of row-level operations available inside one open
// unit of work. Every call participates in the transaction the Store handed
// out; nothing is visible to other readers until commit.
type EntityTx interface {
	InsertUser(ctx context.Context, u *domain.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
	DeleteUser(ctx context.Context, id int64) error

	InsertCar(ctx context.Context, c *domain.Car) (int64, error)
	GetCarByID(ctx context.Context, id int64) (*domain.Car, error)
	UpdateCar(ctx context.Context, c *domain.Car) error
	DeleteCar(ctx context.Context, id int64) error

	InsertSale(ctx context.Context, s *domain.SalesTransaction) (int64, error)
	GetSaleByID(ctx context.Context, id int64) (*domain.SalesTransaction, error)
	UpdateSale(ctx context.Context, s *domain.SalesTransaction) error
	DeleteSale(ctx context.Context, id int64) error

	InsertLog(ctx context.Context, entry *domain.SystemLog) error
}

// Store provides transactional units of work over the entity tables.
type Store interface {
	// WithinTx opens a transaction, runs fn against it, and commits when fn
	// returns nil. Any error from fn — or from commit itself — rolls the
	// whole unit of work back; partial states are never observable.
	WithinTx(ctx context.Context, fn func(tx EntityTx) error) error
}

// PasswordHasher abstracts credential hashing so the mutation path never
// depends on a concrete algorithm.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// TokenRevoker is the server-side denylist consulted for issued tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttlSeconds int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
