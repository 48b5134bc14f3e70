package handler

import (
	"context"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

type stubMutationService struct {
	performFn func(ctx context.Context, change domain.Change, principal domain.Principal) (*domain.MutationResult, error)
}

func (s *stubMutationService) Perform(ctx context.Context, change domain.Change, principal domain.Principal) (*domain.MutationResult, error) {
	return s.performFn(ctx, change, principal)
}

type stubQueryService struct {
	usersFn func(ctx context.Context, f ports.UserFilter, page, size int) (*ports.Page[domain.User], error)
	userFn  func(ctx context.Context, id int64) (*domain.User, error)
	carsFn  func(ctx context.Context, f ports.CarFilter, page, size int) (*ports.Page[domain.Car], error)
	carFn   func(ctx context.Context, id int64) (*domain.Car, error)
	salesFn func(ctx context.Context, page, size int) (*ports.Page[domain.SaleDetail], error)
	saleFn  func(ctx context.Context, id int64) (*domain.SaleDetail, error)
	logsFn  func(ctx context.Context, search string, page, size int) (*ports.Page[domain.SystemLog], error)
}

func (s *stubQueryService) Users(ctx context.Context, f ports.UserFilter, page, size int) (*ports.Page[domain.User], error) {
	return s.usersFn(ctx, f, page, size)
}

func (s *stubQueryService) UserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.userFn(ctx, id)
}

func (s *stubQueryService) Cars(ctx context.Context, f ports.CarFilter, page, size int) (*ports.Page[domain.Car], error) {
	return s.carsFn(ctx, f, page, size)
}

func (s *stubQueryService) CarByID(ctx context.Context, id int64) (*domain.Car, error) {
	return s.carFn(ctx, id)
}

func (s *stubQueryService) Sales(ctx context.Context, page, size int) (*ports.Page[domain.SaleDetail], error) {
	return s.salesFn(ctx, page, size)
}

func (s *stubQueryService) SaleByID(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	return s.saleFn(ctx, id)
}

func (s *stubQueryService) Logs(ctx context.Context, search string, page, size int) (*ports.Page[domain.SystemLog], error) {
	return s.logsFn(ctx, search, page, size)
}
