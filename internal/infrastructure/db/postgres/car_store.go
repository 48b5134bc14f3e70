package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

const carColumns = `id, vin, year, make, model, color, mileage, price, transmission_type, fuel_type, status, created_at, updated_at, created_by, updated_by`

const (
	insertCarQuery = `
		INSERT INTO cars (vin, year, make, model, color, mileage, price, transmission_type, fuel_type, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	getCarByIDQuery  = `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	getCarByVINQuery = `SELECT ` + carColumns + ` FROM cars WHERE vin = $1 ORDER BY id LIMIT 1`
	updateCarQuery   = `
		UPDATE cars
		SET vin = $1,
			year = $2,
			make = $3,
			model = $4,
			color = $5,
			mileage = $6,
			price = $7,
			transmission_type = $8,
			fuel_type = $9,
			status = $10,
			updated_at = now(),
			updated_by = $11
		WHERE id = $12
	`
	deleteCarQuery = `DELETE FROM cars WHERE id = $1`
)

func scanCar(row userScanner) (*domain.Car, error) {
	var c domain.Car
	var createdBy, updatedBy sql.NullString
	err := row.Scan(
		&c.ID,
		&c.VIN,
		&c.Year,
		&c.Make,
		&c.Model,
		&c.Color,
		&c.Mileage,
		&c.Price,
		&c.Transmission,
		&c.Fuel,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
		&createdBy,
		&updatedBy,
	)
	if err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.String
	c.UpdatedBy = updatedBy.String
	return &c, nil
}

// --- Unit-of-work writes ---

func (t *entityTx) InsertCar(ctx context.Context, c *domain.Car) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx, insertCarQuery,
		c.VIN, c.Year, c.Make, c.Model, c.Color, c.Mileage, c.Price,
		c.Transmission, c.Fuel, c.Status, c.CreatedBy, c.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert car: %w", classify(err))
	}
	c.ID = id
	return id, nil
}

func (t *entityTx) GetCarByID(ctx context.Context, id int64) (*domain.Car, error) {
	c, err := scanCar(t.tx.QueryRowContext(ctx, getCarByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}
	return c, nil
}

func (t *entityTx) UpdateCar(ctx context.Context, c *domain.Car) error {
	res, err := t.tx.ExecContext(ctx, updateCarQuery,
		c.VIN, c.Year, c.Make, c.Model, c.Color, c.Mileage, c.Price,
		c.Transmission, c.Fuel, c.Status, c.UpdatedBy, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update car: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

// DeleteCar removes the row; the schema cascades the delete to any sale
// transaction referencing the car.
func (t *entityTx) DeleteCar(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, deleteCarQuery, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", classify(err))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrCarNotFound
	}
	return nil
}

// --- Pool reads ---

func (s *Store) GetCar(ctx context.Context, id int64) (*domain.Car, error) {
	c, err := scanCar(s.db.QueryRowContext(ctx, getCarByIDQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get car: %w", err)
	}
	return c, nil
}

// GetCarByVIN returns the first car with the given VIN. VINs are not unique
// at the schema level; ties resolve to the oldest row.
func (s *Store) GetCarByVIN(ctx context.Context, vin string) (*domain.Car, error) {
	c, err := scanCar(s.db.QueryRowContext(ctx, getCarByVINQuery, vin))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get car by vin: %w", err)
	}
	return c, nil
}

// ListCars applies the discrete filters with AND and the search term with
// ILIKE OR-combined across make, model, color, and the year cast to text.
func (s *Store) ListCars(ctx context.Context, f ports.CarFilter) ([]domain.Car, int64, error) {
	query := `SELECT ` + carColumns + `, count(*) OVER () FROM cars`
	var conds []string
	var args []any

	if f.Transmission != "" {
		args = append(args, f.Transmission)
		conds = append(conds, fmt.Sprintf("transmission_type = $%d", len(args)))
	}
	if f.Fuel != "" {
		args = append(args, f.Fuel)
		conds = append(conds, fmt.Sprintf("fuel_type = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Year > 0 {
		args = append(args, f.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(make ILIKE $%d OR model ILIKE $%d OR color ILIKE $%d OR year::text ILIKE $%d)", n, n, n, n))
	}
	query += whereClause(conds)
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars: %w", err)
	}
	defer rows.Close()

	// Non-nil so empty pages serialize as [] rather than null.
	out := []domain.Car{}
	var total int64
	for rows.Next() {
		var c domain.Car
		var createdBy, updatedBy sql.NullString
		if err := rows.Scan(
			&c.ID, &c.VIN, &c.Year, &c.Make, &c.Model, &c.Color, &c.Mileage, &c.Price,
			&c.Transmission, &c.Fuel, &c.Status, &c.CreatedAt, &c.UpdatedAt, &createdBy, &updatedBy,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan car: %w", err)
		}
		c.CreatedBy = createdBy.String
		c.UpdatedBy = updatedBy.String
		out = append(out, c)
	}
	return out, total, rows.Err()
}
