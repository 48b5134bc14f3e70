package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/ports"
)

// SystemLogHandler exposes the audit trail read-only. Log entries are only
// ever written inside the same transaction as the mutation they describe.
type SystemLogHandler struct {
	queries ports.QueryService
}

func NewSystemLogHandler(queries ports.QueryService) *SystemLogHandler {
	return &SystemLogHandler{queries: queries}
}

// List returns paginated audit entries, newest first, optionally filtered
// by a case-insensitive substring of the action description.
func (h *SystemLogHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	result, err := h.queries.Logs(c.Request().Context(), c.QueryParam("search"), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
