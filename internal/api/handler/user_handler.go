package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driveline/dealership-system/internal/core/domain"
	"github.com/driveline/dealership-system/internal/core/ports"
)

type UserHandler struct {
	mutations ports.MutationService
	queries   ports.QueryService
}

func NewUserHandler(mutations ports.MutationService, queries ports.QueryService) *UserHandler {
	return &UserHandler{mutations: mutations, queries: queries}
}

// List returns a paginated user listing, optionally filtered by account
// type, status, and a free-text search.
func (h *UserHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	filter := ports.UserFilter{
		Type:   c.QueryParam("type"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	result, err := h.queries.Users(c.Request().Context(), filter, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.queries.UserByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpCreate,
		Entity: domain.EntityUser,
		User:   userFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.mutations.Perform(c.Request().Context(), domain.Change{
		Op:     domain.OpUpdate,
		Entity: domain.EntityUser,
		ID:     id,
		User:   userFields(req),
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Delete(c echo.Context) error {
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
		Entity: domain.EntityUser,
		ID:     id,
	}, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func userFields(req userRequest) *domain.UserFields {
	return &domain.UserFields{
		Email:      req.Email,
		Password:   req.Password,
		Firstname:  req.Firstname,
		Middlename: req.Middlename,
		Lastname:   req.Lastname,
		ContactNum: req.ContactNum,
		Type:       req.Type,
		Status:     req.Status,
	}
}
