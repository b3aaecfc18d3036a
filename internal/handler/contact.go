package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/config"
	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/queue"
	"github.com/thuwalaco/thuwala-site/internal/repository"
	queue_publisher "github.com/thuwalaco/thuwala-site/internal/service"
)

// ContactHandler serves the public contact page and form submission.
type ContactHandler struct {
	Cfg      config.Config
	Messages *repository.ContactRepo
	Validate *validator.Validate
}

func NewContactHandler(cfg config.Config, m *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Cfg: cfg, Messages: m, Validate: validator.New()}
}

type contactReq struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=120"`
	Phone   string `json:"phone" validate:"omitempty,max=30"`
	Subject string `json:"subject" validate:"required,min=2,max=200"`
	Message string `json:"message" validate:"required,min=5,max=5000"`
}

// Info returns the contact channels, including the WhatsApp shortcut
// when a number is configured.
func (h *ContactHandler) Info(c echo.Context) error {
	resp := echo.Map{
		"email": h.Cfg.Mail.AdminTo,
	}
	if n := strings.TrimSpace(h.Cfg.WhatsAppNumber); n != "" {
		resp["whatsapp_number"] = n
		resp["whatsapp_url"] = "https://wa.me/" + strings.TrimPrefix(n, "+")
	}
	return c.JSON(http.StatusOK, resp)
}

// Submit validates and stores a contact form submission, then publishes
// a contact.received event. The publish is best-effort: broker failures
// never fail the request.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := h.Validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "please fill in all required fields correctly"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	msg := model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   strings.TrimSpace(req.Phone),
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Messages.Create(ctx, &msg); err != nil {
		log.Printf("contact: store message failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not save your message, please try again"})
	}

	ev := queue.ContactReceivedEvent{
		MessageID:  msg.ID,
		Name:       msg.Name,
		Email:      msg.Email,
		Subject:    msg.Subject,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishContactReceived(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{"message": "thank you for contacting us, we will get back to you soon"})
}
