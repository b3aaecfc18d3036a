package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/repository"
	"github.com/thuwalaco/thuwala-site/internal/seed"
)

// AdminServiceHandler manages the services table from the back office.
type AdminServiceHandler struct {
	Services *repository.ServiceRepo
	Validate *validator.Validate
}

func NewAdminServiceHandler(s *repository.ServiceRepo) *AdminServiceHandler {
	return &AdminServiceHandler{Services: s, Validate: validator.New()}
}

type serviceReq struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon" validate:"omitempty,max=50"`
	Details     string `json:"details"`
	Category    string `json:"category"`
}

// List returns all services plus the taxonomy for the category picker.
func (h *AdminServiceHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	sp := make([]servicePart, 0, len(services))
	for _, s := range services {
		sp = append(sp, toServicePart(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"services": sp, "categories": seed.Categories})
}

// Add creates a service. A missing category is derived from the title
// with the same keyword rules the seeder uses.
func (h *AdminServiceHandler) Add(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = seed.Classify(req.Title)
	} else if !seed.ValidCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Service{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Details:     req.Details,
		Category:    category,
	}
	if err := h.Services.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrTitleExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "a service with this title already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"service": toServicePart(s)})
}

// Edit updates an existing service.
func (h *AdminServiceHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}
	category := strings.TrimSpace(req.Category)
	if category != "" && !seed.ValidCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Service{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Details:     req.Details,
		Category:    category,
	}
	if err := h.Services.Update(ctx, &s); err != nil {
		switch {
		case errors.Is(err, repository.ErrTitleExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "a service with this title already exists"})
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"service": toServicePart(s)})
}

// Delete removes a service.
func (h *AdminServiceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Services.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "service deleted"})
}
