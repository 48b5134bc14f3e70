package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextKeyPrincipal = "principal"
	ContextKeyRole      = "role"
	ContextKeyToken     = "token"
)

// Auth validates the Bearer token, rejects revoked tokens, and injects the
// resolved principal into the request context. revoker may be nil when no
// denylist is configured.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), parts[1])
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "token verification unavailable")
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			principal, ok := principalFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			c.Set(ContextKeyPrincipal, principal)
			c.Set(ContextKeyRole, principal.Role)
			c.Set(ContextKeyToken, parts[1])

			return next(c)
		}
	}
}

// principalFromClaims builds the acting principal from verified claims.
// Claims: sub = email, uid = user id, role = account type.
func principalFromClaims(claims jwt.MapClaims) (domain.Principal, bool) {
	email, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	// JSON numbers decode as float64.
	uid, _ := claims["uid"].(float64)

	p := domain.Principal{ID: int64(uid), Email: email, Role: role}
	if p.IsZero() || role == "" {
		return domain.Principal{}, false
	}
	return p, true
}
