package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/repository"
)

// AdminMessageHandler serves the back office dashboard and the contact
// message inbox.
type AdminMessageHandler struct {
	Messages  *repository.ContactRepo
	Services  *repository.ServiceRepo
	Portfolio *repository.PortfolioRepo
	Ads       *repository.AdRepo
}

func NewAdminMessageHandler(m *repository.ContactRepo, s *repository.ServiceRepo, p *repository.PortfolioRepo, a *repository.AdRepo) *AdminMessageHandler {
	return &AdminMessageHandler{Messages: m, Services: s, Portfolio: p, Ads: a}
}

type messagePart struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func toMessagePart(m model.ContactMessage) messagePart {
	return messagePart{
		ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone,
		Subject: m.Subject, Message: m.Message, IsRead: m.IsRead,
		CreatedAt: m.CreatedAt,
	}
}

// Dashboard returns the entity counters and the five most recent
// messages for the back office landing page.
func (h *AdminMessageHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	unread, err := h.Messages.CountUnread(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	totalMessages, err := h.Messages.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	serviceCount, err := h.Services.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	portfolioCount, err := h.Portfolio.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	adCount, err := h.Ads.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	recent, err := h.Messages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}
	rp := make([]messagePart, 0, len(recent))
	for _, m := range recent {
		rp = append(rp, toMessagePart(m))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"unread_messages": unread,
		"total_messages":  totalMessages,
		"services":        serviceCount,
		"portfolio_items": portfolioCount,
		"advertisements":  adCount,
		"recent_messages": rp,
	})
}

// List returns the full inbox, newest first.
func (h *AdminMessageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msgs, err := h.Messages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	mp := make([]messagePart, 0, len(msgs))
	for _, m := range msgs {
		mp = append(mp, toMessagePart(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": mp})
}

// View returns one message and marks it read. Viewing is what flips
// the unread flag, like an email client.
func (h *AdminMessageHandler) View(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !m.IsRead {
		if err := h.Messages.MarkRead(ctx, id); err == nil {
			m.IsRead = true
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": toMessagePart(m)})
}

// MarkRead flips the unread flag without returning the body.
func (h *AdminMessageHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.MarkRead(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "message not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "marked as read"})
}
