package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/driveline/dealership-system/internal/api/metrics"
	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

// MutationService is the transactional mutation coordinator. Every domain
// write — create, update, or delete of a user, car, or sale — runs through
// Perform, which stages the entity change and exactly one audit entry in a
// single unit of work. Either both commit or neither does.
type MutationService struct {
	store    ports.Store
	recorder AuditRecorder
	hasher   ports.PasswordHasher
	roles    domain.RoleSet
	logger   zerolog.Logger
}

func NewMutationService(store ports.Store, hasher ports.PasswordHasher, roles domain.RoleSet, logger zerolog.Logger) *MutationService {
	return &MutationService{
		store:  store,
		hasher: hasher,
		roles:  roles,
		logger: logger,
	}
}

// Perform applies one change on behalf of principal. It fails closed
// when no principal is supplied; authorization beyond that is the caller's
// concern. No retries are attempted and creates are not deduplicated.
func (s *MutationService) Perform(ctx context.Context, change domain.Change, principal domain.Principal) (*domain.MutationResult, error) {
	if principal.IsZero() {
		return nil, fmt.Errorf("%w: mutation without principal", domain.ErrForbidden)
	}

	start := time.Now()
	result, err := s.perform(ctx, change, principal)
	metrics.MutationDuration.WithLabelValues(string(change.Entity)).Observe(time.Since(start).Seconds())
	metrics.MutationsTotal.WithLabelValues(string(change.Entity), string(change.Op), outcome(err)).Inc()

	if err != nil {
		s.logger.Error().Err(err).
			Str("entity", string(change.Entity)).
			Str("operation", string(change.Op)).
			Int64("principal_id", principal.ID).
			Msg("mutation rolled back")
		return nil, err
	}

	metrics.AuditEntriesTotal.WithLabelValues(string(change.Entity)).Inc()
	s.logger.Info().
		Str("entity", string(change.Entity)).
		Str("operation", string(change.Op)).
		Str("key", result.Key).
		Str("principal", principal.Email).
		Msg("mutation committed")
	return result, nil
}

func (s *MutationService) perform(ctx context.Context, change domain.Change, principal domain.Principal) (*domain.MutationResult, error) {
	var key string

	err := s.store.WithinTx(ctx, func(tx ports.EntityTx) error {
		var err error
		switch change.Entity {
		case domain.EntityUser:
			key, err = s.applyUser(ctx, tx, change, principal)
		case domain.EntityCar:
			key, err = s.applyCar(ctx, tx, change, principal)
		case domain.EntitySale:
			key, err = s.applySale(ctx, tx, change, principal)
		default:
			return fmt.Errorf("%w: unknown entity kind %q", domain.ErrInvalidInput, change.Entity)
		}
		if err != nil {
			return err
		}

		entry := s.recorder.Entry(principal, change.Op, change.Entity, key)
		return tx.InsertLog(ctx, &entry)
	})
	if err != nil {
		return nil, err
	}

	return &domain.MutationResult{
		Op:     change.Op,
		Entity: change.Entity,
		Key:    key,
		Detail: fmt.Sprintf("%s successfully %s.", change.Entity, change.Op.Verb()),
	}, nil
}

// --- Users ---

func (s *MutationService) applyUser(ctx context.Context, tx ports.EntityTx, change domain.Change, principal domain.Principal) (string, error) {
	switch change.Op {
	case domain.OpCreate:
		f := change.User
		if f == nil || f.Email == "" || f.Password == "" || f.Firstname == "" || f.Lastname == "" {
			return "", fmt.Errorf("%w: email, password, firstname and lastname are required", domain.ErrInvalidInput)
		}
		user, err := s.buildUser(&domain.User{}, f, principal, true)
		if err != nil {
			return "", err
		}
		user.CreatedBy = principal.Email
		if _, err := tx.InsertUser(ctx, user); err != nil {
			return "", err
		}
		return user.Email, nil

	case domain.OpUpdate:
		existing, err := tx.GetUserByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		user, err := s.buildUser(existing, change.User, principal, false)
		if err != nil {
			return "", err
		}
		if err := tx.UpdateUser(ctx, user); err != nil {
			return "", err
		}
		return user.Email, nil

	case domain.OpDelete:
		// Load first so the audit message names the deleted account.
		existing, err := tx.GetUserByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		if err := tx.DeleteUser(ctx, change.ID); err != nil {
			return "", err
		}
		return existing.Email, nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidInput, change.Op)
}

// buildUser merges field values onto base, normalizing names and validating
// the enumerated fields. The password is hashed when present; on update an
// empty password keeps the stored credential.
func (s *MutationService) buildUser(base *domain.User, f *domain.UserFields, principal domain.Principal, create bool) (*domain.User, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: missing user fields", domain.ErrInvalidInput)
	}

	accountType := f.Type
	if accountType == "" && create {
		accountType = domain.RoleClient
	}
	if accountType != "" && !s.roles.Valid(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", domain.ErrInvalidInput, f.Type)
	}

	status := base.Status
	if f.Status != "" {
		parsed, ok := domain.ParseAccountStatus(f.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown account status %q", domain.ErrInvalidInput, f.Status)
		}
		status = parsed
	} else if create {
		status = domain.StatusActive
	}

	u := *base
	u.Email = f.Email
	u.Firstname = domain.NormalizeName(f.Firstname)
	u.Middlename = domain.NormalizeName(f.Middlename)
	u.Lastname = domain.NormalizeName(f.Lastname)
	u.ContactNum = f.ContactNum
	if accountType != "" {
		u.Type = accountType
	}
	u.Status = status
	u.UpdatedBy = principal.Email

	if f.Password != "" {
		hash, err := s.hasher.Hash(f.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	} else if create {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}

	return &u, nil
}

// --- Cars ---

func (s *MutationService) applyCar(ctx context.Context, tx ports.EntityTx, change domain.Change, principal domain.Principal) (string, error) {
	switch change.Op {
	case domain.OpCreate:
		car, err := buildCar(&domain.Car{Status: domain.CarAvailable}, change.Car, principal)
		if err != nil {
			return "", err
		}
		car.CreatedBy = principal.Email
		if _, err := tx.InsertCar(ctx, car); err != nil {
			return "", err
		}
		return car.NaturalKey(), nil

	case domain.OpUpdate:
		existing, err := tx.GetCarByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		car, err := buildCar(existing, change.Car, principal)
		if err != nil {
			return "", err
		}
		if err := tx.UpdateCar(ctx, car); err != nil {
			return "", err
		}
		return car.NaturalKey(), nil

	case domain.OpDelete:
		existing, err := tx.GetCarByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		// Deleting a car cascades to its sale transaction, if any.
		if err := tx.DeleteCar(ctx, change.ID); err != nil {
			return "", err
		}
		return existing.NaturalKey(), nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidInput, change.Op)
}

func buildCar(base *domain.Car, f *domain.CarFields, principal domain.Principal) (*domain.Car, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: missing car fields", domain.ErrInvalidInput)
	}
	if f.VIN == "" || f.Make == "" || f.Model == "" || f.Year <= 0 {
		return nil, fmt.Errorf("%w: vin, make, model and year are required", domain.ErrInvalidInput)
	}

	transmission, ok := domain.ParseTransmissionType(f.Transmission)
	if !ok {
		return nil, fmt.Errorf("%w: unknown transmission type %q", domain.ErrInvalidInput, f.Transmission)
	}
	fuel, ok := domain.ParseFuelType(f.Fuel)
	if !ok {
		return nil, fmt.Errorf("%w: unknown fuel type %q", domain.ErrInvalidInput, f.Fuel)
	}

	status := base.Status
	if f.Status != "" {
		parsed, ok := domain.ParseCarStatus(f.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown car status %q", domain.ErrInvalidInput, f.Status)
		}
		status = parsed
	}

	c := *base
	c.VIN = f.VIN
	c.Year = f.Year
	c.Make = domain.NormalizeName(f.Make)
	c.Model = domain.NormalizeName(f.Model)
	c.Color = domain.NormalizeName(f.Color)
	c.Mileage = f.Mileage
	c.Price = f.Price
	c.Transmission = transmission
	c.Fuel = fuel
	c.Status = status
	c.UpdatedBy = principal.Email
	return &c, nil
}

// --- Sales ---

func (s *MutationService) applySale(ctx context.Context, tx ports.EntityTx, change domain.Change, principal domain.Principal) (string, error) {
	switch change.Op {
	case domain.OpCreate:
		f := change.Sale
		if f == nil || f.CarID <= 0 || f.CustomerID <= 0 || f.AgentID <= 0 {
			return "", fmt.Errorf("%w: car_id, customer_id and agent_id are required", domain.ErrInvalidInput)
		}
		sale := &domain.SalesTransaction{
			CarID:      f.CarID,
			CustomerID: f.CustomerID,
			AgentID:    f.AgentID,
			Comments:   f.Comments,
			CreatedBy:  principal.Email,
			UpdatedBy:  principal.Email,
		}
		// Referential integrity (car/customer/agent must exist, one sale per
		// car) is enforced by the store's constraints and surfaces as
		// ErrConstraint.
		id, err := tx.InsertSale(ctx, sale)
		if err != nil {
			return "", err
		}
		sale.ID = id
		return sale.NaturalKey(), nil

	case domain.OpUpdate:
		existing, err := tx.GetSaleByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		f := change.Sale
		if f == nil {
			return "", fmt.Errorf("%w: missing sale fields", domain.ErrInvalidInput)
		}
		sale := *existing
		sale.CarID = f.CarID
		sale.CustomerID = f.CustomerID
		sale.AgentID = f.AgentID
		sale.Comments = f.Comments
		sale.UpdatedBy = principal.Email
		if err := tx.UpdateSale(ctx, &sale); err != nil {
			return "", err
		}
		return sale.NaturalKey(), nil

	case domain.OpDelete:
		existing, err := tx.GetSaleByID(ctx, change.ID)
		if err != nil {
			return "", err
		}
		if err := tx.DeleteSale(ctx, change.ID); err != nil {
			return "", err
		}
		return existing.NaturalKey(), nil
	}
	return "", fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidInput, change.Op)
}

// outcome buckets an error into the metric label values.
func outcome(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, domain.ErrConstraint), errors.Is(err, domain.ErrInvalidInput):
		return "validation_failure"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCarNotFound),
		errors.Is(err, domain.ErrSaleNotFound):
		return "not_found"
	default:
		return "error"
	}
}
