package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithinTx_CommitsEntityAndAuditTogether(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO system_logs (user_id, action)")).
		WithArgs(int64(1), "admin@dealer.test created Car VIN 2021 HONDA CIVIC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectCommit()

	entry := domain.SystemLog{UserID: 1, Action: "admin@dealer.test created Car VIN 2021 HONDA CIVIC"}
	err := store.WithinTx(context.Background(), func(tx ports.EntityTx) error {
		return tx.InsertLog(context.Background(), &entry)
	})
	if err != nil {
		t.Fatalf("WithinTx returned error: %v", err)
	}
	if entry.ID != 5 {
		t.Fatalf("entry id = %d, want 5", entry.ID)
	}
	expectationsMet(t, mock)
}

func TestWithinTx_RollsBackOnFnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("audit insert failed")
	err := store.WithinTx(context.Background(), func(ports.EntityTx) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestWithinTx_CommitErrorClassified(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{
		Code:   "23503",
		Detail: "insert or update violates foreign key constraint",
	})
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(ports.EntityTx) error {
		return nil
	})
	if !errors.Is(err, domain.ErrConstraint) {
		t.Fatalf("expected ErrConstraint from deferred commit failure, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic to propagate")
		}
		expectationsMet(t, mock)
	}()
	_ = store.WithinTx(context.Background(), func(ports.EntityTx) error {
		panic("boom")
	})
}

func TestInsertUser_DuplicateEmailBecomesConstraint(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{
			Code:   "23505",
			Detail: "Key (lower(email))=(dup@dealer.test) already exists.",
		})
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx ports.EntityTx) error {
		_, err := tx.InsertUser(context.Background(), &domain.User{
			Email: "dup@dealer.test", PasswordHash: "h", Firstname: "A", Lastname: "B",
			Type: domain.RoleClient, Status: domain.StatusActive,
		})
		return err
	})
	if !errors.Is(err, domain.ErrConstraint) {
		t.Fatalf("expected ErrConstraint, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUpdateUser_MissingRowIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx ports.EntityTx) error {
		return tx.UpdateUser(context.Background(), &domain.User{ID: 99, Email: "x@y.z"})
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestDeleteCar_MissingRowIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cars WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx ports.EntityTx) error {
		return tx.DeleteCar(context.Background(), 7)
	})
	if !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func userRows(total int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password", "firstname", "middlename", "lastname",
		"contact_num", "type", "status", "created_at", "updated_at",
		"created_by", "updated_by", "count",
	}).AddRow(
		int64(1), "jane@dealer.test", "hash", "JANE", nil, "DOE",
		nil, "AGENT", "ACTIVE", now, now, "admin@dealer.test", "admin@dealer.test", total,
	)
}

func TestGetUserByEmail_CaseInsensitiveLookup(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "email", "password", "firstname", "middlename", "lastname",
		"contact_num", "type", "status", "created_at", "updated_at",
		"created_by", "updated_by",
	}).AddRow(
		int64(1), "jane@dealer.test", "hash", "JANE", nil, "DOE",
		nil, "AGENT", "ACTIVE", now, now, nil, nil,
	)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(email) = lower($1)")).
		WithArgs("JANE@dealer.test").
		WillReturnRows(rows)

	u, err := store.GetUserByEmail(context.Background(), "JANE@dealer.test")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u.Email != "jane@dealer.test" || u.Type != "AGENT" {
		t.Fatalf("unexpected user: %+v", u)
	}
	expectationsMet(t, mock)
}

func TestGetUser_NoRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetUser(context.Background(), 404)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestListUsers_SearchAndPagination(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .+ FROM users WHERE type = \\$1 AND \\(firstname ILIKE \\$2 OR middlename ILIKE \\$2 OR lastname ILIKE \\$2 OR email ILIKE \\$2\\) ORDER BY id LIMIT \\$3 OFFSET \\$4").
		WithArgs("AGENT", "%doe%", 10, 20).
		WillReturnRows(userRows(37))

	users, total, err := store.ListUsers(context.Background(), ports.UserFilter{
		Type:   "AGENT",
		Search: "doe",
		Limit:  10,
		Offset: 20,
	})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Firstname != "JANE" {
		t.Fatalf("unexpected users: %+v", users)
	}
	if total != 37 {
		t.Fatalf("total = %d, want 37", total)
	}
	expectationsMet(t, mock)
}

func carRows(total int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "vin", "year", "make", "model", "color", "mileage", "price",
		"transmission_type", "fuel_type", "status", "created_at", "updated_at",
		"created_by", "updated_by", "count",
	}).AddRow(
		int64(3), "4T1BE32K25U056789", 2021, "TOYOTA", "CAMRY", "SILVER", 12000, int64(2150000),
		"AUTOMATIC", "PETROL", "AVAILABLE", now, now, "admin@dealer.test", "admin@dealer.test", total,
	)
}

func TestListCars_StatusAndSearch(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .+ FROM cars WHERE status = \\$1 AND \\(make ILIKE \\$2 OR model ILIKE \\$2 OR color ILIKE \\$2 OR year::text ILIKE \\$2\\) ORDER BY id LIMIT \\$3 OFFSET \\$4").
		WithArgs("AVAILABLE", "%toyota%", 10, 0).
		WillReturnRows(carRows(4))

	cars, total, err := store.ListCars(context.Background(), ports.CarFilter{
		Status: "AVAILABLE",
		Search: "toyota",
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(cars) != 1 || cars[0].Make != "TOYOTA" || cars[0].Status != domain.CarAvailable {
		t.Fatalf("unexpected cars: %+v", cars)
	}
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}
	expectationsMet(t, mock)
}

func TestListCars_EmptyPageIsEmptySlice(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT .+ FROM cars ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "vin", "year", "make", "model", "color", "mileage", "price",
			"transmission_type", "fuel_type", "status", "created_at", "updated_at",
			"created_by", "updated_by", "count",
		}))

	cars, total, err := store.ListCars(context.Background(), ports.CarFilter{Limit: 10, Offset: 50})
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if cars == nil || len(cars) != 0 {
		t.Fatalf("empty page must be a non-nil empty slice, got %#v", cars)
	}
	if total != 0 {
		t.Fatalf("total = %d, want 0", total)
	}
	expectationsMet(t, mock)
}

func TestGetCarByVIN_OldestRowWins(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "vin", "year", "make", "model", "color", "mileage", "price",
		"transmission_type", "fuel_type", "status", "created_at", "updated_at",
		"created_by", "updated_by",
	}).AddRow(
		int64(3), "4T1BE32K25U056789", 2021, "TOYOTA", "CAMRY", "SILVER", 12000, int64(2150000),
		"AUTOMATIC", "PETROL", "AVAILABLE", now, now, nil, nil,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE vin = $1 ORDER BY id LIMIT 1")).
		WithArgs("4T1BE32K25U056789").
		WillReturnRows(rows)

	c, err := store.GetCarByVIN(context.Background(), "4T1BE32K25U056789")
	if err != nil {
		t.Fatalf("GetCarByVIN: %v", err)
	}
	if c.ID != 3 || c.Model != "CAMRY" {
		t.Fatalf("unexpected car: %+v", c)
	}
	expectationsMet(t, mock)
}

func TestGetCarByVIN_NoRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cars WHERE vin = $1 ORDER BY id LIMIT 1")).
		WithArgs("MISSING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.GetCarByVIN(context.Background(), "MISSING")
	if !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestListSales_EagerLoadsRelations(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM sales_transactions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "car_id", "customer_id", "agent_id", "comments", "created_at", "updated_at", "created_by", "updated_by",
		"vin", "year", "make", "model", "color", "mileage", "price", "transmission_type", "fuel_type", "status",
		"cu_email", "cu_firstname", "cu_lastname", "cu_type", "cu_status",
		"ag_email", "ag_firstname", "ag_lastname", "ag_type", "ag_status",
	}).AddRow(
		int64(8), int64(3), int64(5), int64(2), "cash deal", now, now, "agent@dealer.test", "agent@dealer.test",
		"4T1BE32K25U056789", 2021, "TOYOTA", "CAMRY", "SILVER", 12000, int64(2150000), "AUTOMATIC", "PETROL", "SOLD",
		"buyer@mail.test", "JOHN", "SMITH", "CLIENT", "ACTIVE",
		"agent@dealer.test", "JANE", "DOE", "AGENT", "ACTIVE",
	)
	mock.ExpectQuery("FROM sales_transactions s JOIN cars c ON c.id = s.car_id JOIN users cu ON cu.id = s.customer_id JOIN users ag ON ag.id = s.agent_id ORDER BY s.id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 0).
		WillReturnRows(rows)

	sales, total, err := store.ListSales(context.Background(), ports.SaleFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if total != 12 {
		t.Fatalf("total = %d, want 12", total)
	}
	if len(sales) != 1 {
		t.Fatalf("unexpected sales: %+v", sales)
	}
	d := sales[0]
	if d.Car == nil || d.Car.ID != d.CarID || d.Car.VIN != "4T1BE32K25U056789" {
		t.Fatalf("car relation not loaded: %+v", d.Car)
	}
	if d.Customer == nil || d.Customer.ID != d.CustomerID || d.Customer.Email != "buyer@mail.test" {
		t.Fatalf("customer relation not loaded: %+v", d.Customer)
	}
	if d.Agent == nil || d.Agent.ID != d.AgentID || d.Agent.Type != "AGENT" {
		t.Fatalf("agent relation not loaded: %+v", d.Agent)
	}
	if d.Customer.PasswordHash != "" || d.Agent.PasswordHash != "" {
		t.Fatalf("sale detail must not carry password hashes")
	}
	expectationsMet(t, mock)
}

func TestListLogs_NewestFirstWithSearch(t *testing.T) {
	store, mock := newMockStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "created_at", "updated_at", "count"}).
		AddRow(int64(9), int64(1), "admin@dealer.test created Car VIN 2021 HONDA CIVIC", now, now, int64(2)).
		AddRow(int64(3), int64(1), "admin@dealer.test created User jane@dealer.test", now, now, int64(2))

	mock.ExpectQuery("FROM system_logs WHERE action ILIKE \\$1 ORDER BY id DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs("%created%", 10, 0).
		WillReturnRows(rows)

	logs, total, err := store.ListLogs(context.Background(), ports.LogFilter{
		Search: "created",
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 2 || logs[0].ID != 9 {
		t.Fatalf("unexpected ordering: %+v", logs)
	}
	if total != 2 {
		t.Fatalf("total = %d, want 2", total)
	}
	expectationsMet(t, mock)
}

func TestClassify_PassesThroughUnrelatedErrors(t *testing.T) {
	plain := errors.New("connection reset")
	if got := classify(plain); got != plain {
		t.Fatalf("classify rewrote unrelated error: %v", got)
	}
	if classify(nil) != nil {
		t.Fatalf("classify(nil) must be nil")
	}

	notNull := &pgconn.PgError{Code: "23502", Message: "null value in column"}
	if !errors.Is(classify(notNull), domain.ErrConstraint) {
		t.Fatalf("not-null violation should classify as constraint")
	}

	syntax := &pgconn.PgError{Code: "42601", Message: "syntax error"}
	if errors.Is(classify(syntax), domain.ErrConstraint) {
		t.Fatalf("syntax error must not classify as constraint")
	}
}
