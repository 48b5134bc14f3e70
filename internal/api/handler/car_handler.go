package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

type CarHandler struct {
	mutations ports.MutationService
	queries   ports.QueryService
}

func NewCarHandler(mutations ports.MutationService, queries ports.QueryService) *CarHandler {
	return &CarHandler{mutations: mutations, queries: queries}
}

// List returns a paginated inventory listing, optionally filtered by
// transmission, fuel, status, year, and a free-text search.
func (h *CarHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	year, _ := strconv.Atoi(c.QueryParam("year"))
	filter := ports.CarFilter{
		Transmission: c.QueryParam("transmission_type"),
		Fuel:         c.QueryParam("fuel_type"),
		Status:       c.QueryParam("status"),
		Year:         year,
		Search:       c.QueryParam("search"),
	}

	result, err := h.queries.Cars(c.Request().Context(), filter, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CarHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	car, err := h.queries.CarByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, car)
}

func (h *CarHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req carRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpCreate,
		Entity: domain.EntityCar,
		Car:    carFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *CarHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req carRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpUpdate,
		Entity: domain.EntityCar,
		ID:     id,
		Car:    carFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *CarHandler) Delete(c echo.Context) error {
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
		Entity: domain.EntityCar,
		ID:     id,
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func carFields(req carRequest) *domain.CarFields {
	return &domain.CarFields{
		VIN:          req.VIN,
		Year:         req.Year,
		Make:         req.Make,
		Model:        req.Model,
		Color:        req.Color,
		Mileage:      req.Mileage,
		Price:        req.Price,
		Transmission: req.Transmission,
		Fuel:         req.Fuel,
		Status:       req.Status,
	}
}
