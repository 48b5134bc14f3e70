package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/api/middleware"
	"github.com/driveline/dealership-system/internal/core/domain"
)

// ctxPrincipal extracts the principal resolved by the Auth middleware.
// Its presence proves the middleware ran; mutations must not proceed
// without it, so absence is a 401, never a silent pass-through.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, _ := c.Get(middleware.ContextKeyPrincipal).(domain.Principal)
	if principal.IsZero() {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pageParams parses the zero-indexed page and page_size query parameters.
// Out-of-range values are clamped by the query service.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	return page, size
}
