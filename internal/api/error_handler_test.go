package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/driveline/dealership-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"car not found", domain.ErrCarNotFound, http.StatusNotFound, "car not found"},
		{"sale not found", domain.ErrSaleNotFound, http.StatusNotFound, "sale not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"inactive account", domain.ErrInactiveAccount, http.StatusForbidden, "account is inactive"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.wantCode {
				t.Fatalf("code = %d, want %d", code, tc.wantCode)
			}
			if msg != tc.wantMsg {
				t.Fatalf("msg = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedErrorsResolve(t *testing.T) {
	wrapped := fmt.Errorf("perform mutation: %w", domain.ErrCarNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped error code = %d, want 404", code)
	}

	constraint := fmt.Errorf("%w: duplicate key", domain.ErrConstraint)
	code, msg := renderError(t, constraint)
	if code != http.StatusBadRequest {
		t.Fatalf("constraint code = %d, want 400", code)
	}
	if msg == "" {
		t.Fatalf("constraint message should be preserved")
	}
}

func TestHTTPErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing token"))
	if code != http.StatusUnauthorized || msg != "missing token" {
		t.Fatalf("got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnknownErrorsAreOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("pq: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}
