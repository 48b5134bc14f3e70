package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/driveline/dealership-system/internal/api/metrics"
	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

// BcryptHasher implements ports.PasswordHasher with bcrypt.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	return string(out), err
}

func (h BcryptHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// AuthService implements login, self-service registration, and logout.
// It is the only component that touches credentials or tokens; the rest of
// the system receives a resolved domain.Principal.
type AuthService struct {
	query     ports.QueryStore
	store     ports.Store
	hasher    ports.PasswordHasher
	revoker   ports.TokenRevoker // nil when no denylist is configured
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(query ports.QueryStore, store ports.Store, hasher ports.PasswordHasher, revoker ports.TokenRevoker, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		query:     query,
		store:     store,
		hasher:    hasher,
		revoker:   revoker,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login authenticates by email (compared case-insensitively) and password.
// INACTIVE accounts cannot log in. A missing user and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.query.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}
	if user.Status != domain.StatusActive {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return "", nil, domain.ErrInactiveAccount
	}

	token, err := s.generateToken(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	// The login trail is informational, not a domain mutation; failure to
	// record it does not fail the login.
	entry := domain.SystemLog{UserID: user.ID, Action: fmt.Sprintf("%s logged in", user.Email)}
	if err := s.store.WithinTx(ctx, func(tx ports.EntityTx) error {
		return tx.InsertLog(ctx, &entry)
	}); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to record login")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user, nil
}

// Register creates a self-service CLIENT account. The user row and its
// audit entry — attributed to the account being created — commit in one
// unit of work.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.Firstname == "" || in.Lastname == "" {
		return nil, fmt.Errorf("%w: email, password, firstname and lastname are required", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Firstname:    domain.NormalizeName(in.Firstname),
		Middlename:   domain.NormalizeName(in.Middlename),
		Lastname:     domain.NormalizeName(in.Lastname),
		ContactNum:   in.ContactNum,
		Type:         domain.RoleClient,
		Status:       domain.StatusActive,
		CreatedBy:    in.Email,
		UpdatedBy:    in.Email,
	}

	err = s.store.WithinTx(ctx, func(tx ports.EntityTx) error {
		id, err := tx.InsertUser(ctx, user)
		if err != nil {
			return err
		}
		user.ID = id
		entry := domain.SystemLog{UserID: id, Action: fmt.Sprintf("%s registered", user.Email)}
		return tx.InsertLog(ctx, &entry)
	})
	if err != nil {
		if errors.Is(err, domain.ErrConstraint) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("user registered")
	return user, nil
}

// Logout revokes the presented token until its natural expiry. Without a
// configured denylist this is a no-op; the token simply ages out.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.revoker == nil {
		return nil
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return domain.ErrInvalidCredentials
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return domain.ErrInvalidCredentials
	}
	ttl := int64(time.Until(exp.Time).Seconds())
	if ttl <= 0 {
		return nil // already expired
	}
	return s.revoker.Revoke(ctx, token, ttl)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"uid":  user.ID,
		"role": user.Type,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
