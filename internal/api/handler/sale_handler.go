package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

type SaleHandler struct {
	mutations ports.MutationService
	queries   ports.QueryService
}

func NewSaleHandler(mutations ports.MutationService, queries ports.QueryService) *SaleHandler {
	return &SaleHandler{mutations: mutations, queries: queries}
}

// List returns paginated sales with the joined car, customer, and agent.
func (h *SaleHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	result, err := h.queries.Sales(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SaleHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	sale, err := h.queries.SaleByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpCreate,
		Entity: domain.EntitySale,
		Sale:   saleFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *SaleHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpUpdate,
		Entity: domain.EntitySale,
		ID:     id,
		Sale:   saleFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *SaleHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpDelete,
		Entity: domain.EntitySale,
		ID:     id,
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func saleFields(req saleRequest) *domain.SaleFields {
	return &domain.SaleFields{
		CarID:      req.CarID,
		CustomerID: req.CustomerID,
		AgentID:    req.AgentID,
		Comments:   req.Comments,
	}
}
