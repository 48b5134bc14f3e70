package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// QueryService serves the read path. Reads never pass through the mutation
// coordinator and never open a unit of work.
//
// Pagination contract: page is zero-indexed and offset = page * page_size.
// page_size defaults to 10 and is capped at 100.
type QueryService struct {
	store  ports.QueryStore
	logger zerolog.Logger
}

func NewQueryService(store ports.QueryStore, logger zerolog.Logger) *QueryService {
	return &QueryService{store: store, logger: logger}
}

// clampPage normalizes raw page/size values to the pagination contract.
func clampPage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (s *QueryService) Users(ctx context.Context, f ports.UserFilter, page, size int) (*ports.Page[domain.User], error) {
	page, size = clampPage(page, size)
	f.Offset = page * size
	f.Limit = size

	users, total, err := s.store.ListUsers(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.Page[domain.User]{Items: users, Total: total, Page: page, Size: size}, nil
}

func (s *QueryService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.store.GetUser(ctx, id)
}

func (s *QueryService) Cars(ctx context.Context, f ports.CarFilter, page, size int) (*ports.Page[domain.Car], error) {
	page, size = clampPage(page, size)
	f.Offset = page * size
	f.Limit = size

	cars, total, err := s.store.ListCars(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.Page[domain.Car]{Items: cars, Total: total, Page: page, Size: size}, nil
}

func (s *QueryService) CarByID(ctx context.Context, id int64) (*domain.Car, error) {
	return s.store.GetCar(ctx, id)
}

func (s *QueryService) Sales(ctx context.Context, page, size int) (*ports.Page[domain.SaleDetail], error) {
	page, size = clampPage(page, size)
	f := ports.SaleFilter{Offset: page * size, Limit: size}

	sales, total, err := s.store.ListSales(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.Page[domain.SaleDetail]{Items: sales, Total: total, Page: page, Size: size}, nil
}

func (s *QueryService) SaleByID(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	return s.store.GetSale(ctx, id)
}

func (s *QueryService) Logs(ctx context.Context, search string, page, size int) (*ports.Page[domain.SystemLog], error) {
	page, size = clampPage(page, size)
	f := ports.LogFilter{Search: search, Offset: page * size, Limit: size}

	logs, total, err := s.store.ListLogs(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ports.Page[domain.SystemLog]{Items: logs, Total: total, Page: page, Size: size}, nil
}
