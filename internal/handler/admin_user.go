package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/config"
	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/repository"
)

// AdminUserHandler manages admin accounts.
type AdminUserHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Validate *validator.Validate
}

func NewAdminUserHandler(cfg config.Config, u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Cfg: cfg, Users: u, Validate: validator.New()}
}

type addUserReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8"`
}

type adminUserPart struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toAdminUserPart(u model.User) adminUserPart {
	return adminUserPart{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

// List returns every admin account.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	up := make([]adminUserPart, 0, len(users))
	for _, u := range users {
		up = append(up, toAdminUserPart(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": up})
}

// Add creates a new admin account. Username and email must both be
// unique; the unique indexes back this up under concurrent requests.
func (h *AdminUserHandler) Add(c echo.Context) error {
	var req addUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, valid email and a password of at least 8 characters are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": adminUserPart{ID: id, Username: req.Username, Email: req.Email, CreatedAt: time.Now().UTC()}})
}
