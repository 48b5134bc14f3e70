package ports

import (
	"context"

	"github.com/driveline/dealership-system/internal/core/domain"
)

// UserFilter carries the query parameters for listing users. Search is a
// case-insensitive substring OR-matched over firstname, middlename,
// lastname, and email.
type UserFilter struct {
	Type   string
	Status string
	Search string
	Offset int
	Limit  int
}

// CarFilter carries the query parameters for listing cars. Search is
// OR-matched over make, model, color, and the year rendered as text.
type CarFilter struct {
	Transmission string
	Fuel         string
	Status       string
	Year         int
	Search       string
	Offset       int
	Limit        int
}

// SaleFilter paginates the sales listing; no other filters are supported.
type SaleFilter struct {
	Offset int
	Limit  int
}

// LogFilter carries the query parameters for the audit log. Search matches
// the action description; results are returned newest first.
type LogFilter struct {
	Search string
	Offset int
	Limit  int
}

// QueryStore is the read-only side of persistence. Reads run outside any
// unit of work, straight off the connection pool.
type QueryStore interface {
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int64, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	ListCars(ctx context.Context, f CarFilter) ([]domain.Car, int64, error)
	GetCar(ctx context.Context, id int64) (*domain.Car, error)
	GetCarByVIN(ctx context.Context, vin string) (*domain.Car, error)

	ListSales(ctx context.Context, f SaleFilter) ([]domain.SaleDetail, int64, error)
	GetSale(ctx context.Context, id int64) (*domain.SaleDetail, error)

	ListLogs(ctx context.Context, f LogFilter) ([]domain.SystemLog, int64, error)
}
