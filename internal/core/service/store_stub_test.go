package service

import (
	"context"
	"strings"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

// stubStore is an in-memory ports.Store with real transactional semantics:
// a unit of work stages changes on copies and publishes them only when fn
// returns nil, so atomicity can be observed from the outside.
type stubStore struct {
	users map[int64]*domain.User
	cars  map[int64]*domain.Car
	sales map[int64]*domain.SalesTransaction
	logs  []domain.SystemLog

	nextUserID int64
	nextCarID  int64
	nextSaleID int64

	insertLogErr error // injected failure for the audit write
}

func newStubStore() *stubStore {
	return &stubStore{
		users: make(map[int64]*domain.User),
		cars:  make(map[int64]*domain.Car),
		sales: make(map[int64]*domain.SalesTransaction),
	}
}

func (s *stubStore) WithinTx(_ context.Context, fn func(tx ports.EntityTx) error) error {
	tx := &stubTx{
		store: s,
		users: cloneMap(s.users),
		cars:  cloneMap(s.cars),
		sales: cloneMap(s.sales),
		logs:  append([]domain.SystemLog(nil), s.logs...),
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.users = tx.users
	s.cars = tx.cars
	s.sales = tx.sales
	s.logs = tx.logs
	return nil
}

// GetUserByEmail satisfies the read side used by AuthService.
func (s *stubStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) ListUsers(_ context.Context, _ ports.UserFilter) ([]domain.User, int64, error) {
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (s *stubStore) GetCar(_ context.Context, id int64) (*domain.Car, error) {
	c, ok := s.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *stubStore) GetCarByVIN(_ context.Context, vin string) (*domain.Car, error) {
	for _, c := range s.cars {
		if c.VIN == vin {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCarNotFound
}

func (s *stubStore) ListCars(_ context.Context, _ ports.CarFilter) ([]domain.Car, int64, error) {
	out := make([]domain.Car, 0, len(s.cars))
	for _, c := range s.cars {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (s *stubStore) GetSale(_ context.Context, id int64) (*domain.SaleDetail, error) {
	sale, ok := s.sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	return &domain.SaleDetail{SalesTransaction: *sale}, nil
}

func (s *stubStore) ListSales(_ context.Context, _ ports.SaleFilter) ([]domain.SaleDetail, int64, error) {
	out := make([]domain.SaleDetail, 0, len(s.sales))
	for _, sale := range s.sales {
		out = append(out, domain.SaleDetail{SalesTransaction: *sale})
	}
	return out, int64(len(out)), nil
}

func (s *stubStore) ListLogs(_ context.Context, _ ports.LogFilter) ([]domain.SystemLog, int64, error) {
	return append([]domain.SystemLog(nil), s.logs...), int64(len(s.logs)), nil
}

var (
	_ ports.Store      = (*stubStore)(nil)
	_ ports.QueryStore = (*stubStore)(nil)
)

func cloneMap[T any](src map[int64]*T) map[int64]*T {
	dst := make(map[int64]*T, len(src))
	for k, v := range src {
		clone := *v
		dst[k] = &clone
	}
	return dst
}

type stubTx struct {
	store *stubStore
	users map[int64]*domain.User
	cars  map[int64]*domain.Car
	sales map[int64]*domain.SalesTransaction
	logs  []domain.SystemLog
}

func (t *stubTx) InsertUser(_ context.Context, u *domain.User) (int64, error) {
	for _, existing := range t.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return 0, domain.ErrConstraint
		}
	}
	t.store.nextUserID++
	clone := *u
	clone.ID = t.store.nextUserID
	t.users[clone.ID] = &clone
	return clone.ID, nil
}

func (t *stubTx) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := t.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (t *stubTx) UpdateUser(_ context.Context, u *domain.User) error {
	if _, ok := t.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *u
	t.users[u.ID] = &clone
	return nil
}

func (t *stubTx) DeleteUser(_ context.Context, id int64) error {
	if _, ok := t.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, entry := range t.logs {
		if entry.UserID == id {
			return domain.ErrConstraint
		}
	}
	delete(t.users, id)
	return nil
}

func (t *stubTx) InsertCar(_ context.Context, c *domain.Car) (int64, error) {
	t.store.nextCarID++
	clone := *c
	clone.ID = t.store.nextCarID
	t.cars[clone.ID] = &clone
	return clone.ID, nil
}

func (t *stubTx) GetCarByID(_ context.Context, id int64) (*domain.Car, error) {
	c, ok := t.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	clone := *c
	return &clone, nil
}

func (t *stubTx) UpdateCar(_ context.Context, c *domain.Car) error {
	if _, ok := t.cars[c.ID]; !ok {
		return domain.ErrCarNotFound
	}
	clone := *c
	t.cars[c.ID] = &clone
	return nil
}

func (t *stubTx) DeleteCar(_ context.Context, id int64) error {
	if _, ok := t.cars[id]; !ok {
		return domain.ErrCarNotFound
	}
	delete(t.cars, id)
	for saleID, sale := range t.sales {
		if sale.CarID == id {
			delete(t.sales, saleID)
		}
	}
	return nil
}

func (t *stubTx) InsertSale(_ context.Context, s *domain.SalesTransaction) (int64, error) {
	if _, ok := t.cars[s.CarID]; !ok {
		return 0, domain.ErrConstraint
	}
	if _, ok := t.users[s.CustomerID]; !ok {
		return 0, domain.ErrConstraint
	}
	if _, ok := t.users[s.AgentID]; !ok {
		return 0, domain.ErrConstraint
	}
	for _, existing := range t.sales {
		if existing.CarID == s.CarID {
			return 0, domain.ErrConstraint
		}
	}
	t.store.nextSaleID++
	clone := *s
	clone.ID = t.store.nextSaleID
	t.sales[clone.ID] = &clone
	return clone.ID, nil
}

func (t *stubTx) GetSaleByID(_ context.Context, id int64) (*domain.SalesTransaction, error) {
	s, ok := t.sales[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	clone := *s
	return &clone, nil
}

func (t *stubTx) UpdateSale(_ context.Context, s *domain.SalesTransaction) error {
	if _, ok := t.sales[s.ID]; !ok {
		return domain.ErrSaleNotFound
	}
	clone := *s
	t.sales[s.ID] = &clone
	return nil
}

func (t *stubTx) DeleteSale(_ context.Context, id int64) error {
	if _, ok := t.sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(t.sales, id)
	return nil
}

func (t *stubTx) InsertLog(_ context.Context, entry *domain.SystemLog) error {
	if t.store.insertLogErr != nil {
		return t.store.insertLogErr
	}
	clone := *entry
	clone.ID = int64(len(t.logs) + 1)
	t.logs = append(t.logs, clone)
	return nil
}
