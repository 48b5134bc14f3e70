package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

const saleColumns = `id, car_id, customer_id, agent_id, comments, created_at, updated_at, created_by, updated_by`

const (
	insertSaleQuery = `
		INSERT INTO sales_transactions (car_id, customer_id, agent_id, comments, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	getSaleByIDQuery = `SELECT ` + saleColumns + ` FROM sales_transactions WHERE id = $1`
	updateSaleQuery  = `
		UPDATE sales_transactions
		SET car_id = $1,
			customer_id = $2,
			agent_id = $3,
			comments = $4,
			updated_at = now(),
			updated_by = $5
		WHERE id = $6
	`
	deleteSaleQuery = `DELETE FROM sales_transactions WHERE id = $1`

	// saleDetailQuery eager-loads the related car, customer, and agent rows.
	// Password columns are deliberately not selected.
	saleDetailQuery = `
		SELECT s.id, s.car_id, s.customer_id, s.agent_id, s.comments, s.created_at, s.updated_at, s.created_by, s.updated_by,
		       c.vin, c.year, c.make, c.model, c.color, c.mileage, c.price, c.transmission_type, c.fuel_type, c.status,
		       cu.email, cu.firstname, cu.lastname, cu.type, cu.status,
		       ag.email, ag.firstname, ag.lastname, ag.type, ag.status
		FROM sales_transactions s
		JOIN cars c ON c.id = s.car_id
		JOIN users cu ON cu.id = s.customer_id
		JOIN users ag ON ag.id = s.agent_id
	`
)

func scanSale(row userScanner) (*domain.SalesTransaction, error) {
	var s domain.SalesTransaction
	var comments, createdBy, updatedBy sql.NullString
	err := row.Scan(
		&s.ID,
		&s.CarID,
		&s.CustomerID,
		&s.AgentID,
		&comments,
		&s.CreatedAt,
		&s.UpdatedAt,
		&createdBy,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	s.Comments = comments.String
	s.CreatedBy = createdBy.String
	s.UpdatedBy = updatedBy.String
	return &s, nil
}

func scanSaleDetail(row userScanner) (*domain.SaleDetail, error) {
	var d domain.SaleDetail
	var comments, createdBy, updatedBy sql.NullString
	car := &domain.Car{}
	customer := &domain.User{}
	agent := &domain.User{}

	err := row.Scan(
		&d.ID, &d.CarID, &d.CustomerID, &d.AgentID, &comments, &d.CreatedAt, &d.UpdatedAt, &createdBy, &updatedBy,
		&car.VIN, &car.Year, &car.Make, &car.Model, &car.Color, &car.Mileage, &car.Price, &car.Transmission, &car.Fuel, &car.Status,
		&customer.Email, &customer.Firstname, &customer.Lastname, &customer.Type, &customer.Status,
		&agent.Email, &agent.Firstname, &agent.Lastname, &agent.Type, &agent.Status,
	)
	if err != nil {
		return nil, err
	}
	d.Comments = comments.String
	d.CreatedBy = createdBy.String
	d.UpdatedBy = updatedBy.String

	car.ID = d.CarID
	customer.ID = d.CustomerID
	agent.ID = d.AgentID
	d.Car = car
	d.Customer = customer
	d.Agent = agent
	return &d, nil
}

// --- Unit-of-work writes ---

func (t *entityTx) InsertSale(ctx context.Context, s *domain.SalesTransaction) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, insertSaleQuery,
		s.CarID, s.CustomerID, s.AgentID, nullable(s.Comments), s.CreatedBy, s.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", classify(err))
	}
	s.ID = id
	return id, nil
}

func (t *entityTx) GetSaleByID(ctx context.Context, id int64) (*domain.SalesTransaction, error) {
	s, err := scanSale(t.tx.QueryRowContext(ctx, getSaleByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (t *entityTx) UpdateSale(ctx context.Context, s *domain.SalesTransaction) error {
	res, err := t.tx.ExecContext(ctx, updateSaleQuery,
		s.CarID, s.CustomerID, s.AgentID, nullable(s.Comments), s.UpdatedBy, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

func (t *entityTx) DeleteSale(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, deleteSaleQuery, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}

// --- Pool reads ---

func (s *Store) GetSale(ctx context.Context, id int64) (*domain.SaleDetail, error) {
	d, err := scanSaleDetail(s.db.QueryRowContext(ctx, saleDetailQuery+` WHERE s.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSaleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return d, nil
}

// ListSales supports pagination only; every row eager-loads its relations.
func (s *Store) ListSales(ctx context.Context, f ports.SaleFilter) ([]domain.SaleDetail, int64, error) {
	countRow := s.db.QueryRowContext(ctx, `SELECT count(*) FROM sales_transactions`)
	var total int64
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, saleDetailQuery+` ORDER BY s.id LIMIT $1 OFFSET $2`, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	out := []domain.SaleDetail{}
	for rows.Next() {
		d, err := scanSaleDetail(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, *d)
	}
	return out, total, rows.Err()
}
