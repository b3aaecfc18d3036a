package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/repository"
	"github.com/thuwalaco/thuwala-site/internal/storage"
)

// AdminAdHandler manages homepage advertisements, including the
// move-up/move-down ordering.
type AdminAdHandler struct {
	Ads     *repository.AdRepo
	Uploads *storage.Uploader
}

func NewAdminAdHandler(a *repository.AdRepo, u *storage.Uploader) *AdminAdHandler {
	return &AdminAdHandler{Ads: a, Uploads: u}
}

const dateOnly = "2006-01-02"

// adFromForm reads the multipart form fields shared by Add and Edit.
// Dates arrive as yyyy-mm-dd; empty means no bound.
func adFromForm(c echo.Context) (model.Advertisement, error) {
	a := model.Advertisement{
		Title:           strings.TrimSpace(c.FormValue("title")),
		Description:     c.FormValue("description"),
		CTAText:         strings.TrimSpace(c.FormValue("cta_text")),
		CTALink:         strings.TrimSpace(c.FormValue("cta_link")),
		BackgroundColor: strings.TrimSpace(c.FormValue("background_color")),
		TextColor:       strings.TrimSpace(c.FormValue("text_color")),
		IsActive:        c.FormValue("is_active") != "false" && c.FormValue("is_active") != "0",
	}
	if a.CTAText == "" {
		a.CTAText = "Learn More"
	}
	if a.BackgroundColor == "" {
		a.BackgroundColor = "#1a73e8"
	}
	if a.TextColor == "" {
		a.TextColor = "#ffffff"
	}
	if v := strings.TrimSpace(c.FormValue("start_date")); v != "" {
		t, err := time.Parse(dateOnly, v)
		if err != nil {
			return a, errors.New("start_date must be yyyy-mm-dd")
		}
		a.StartDate = &t
	}
	if v := strings.TrimSpace(c.FormValue("end_date")); v != "" {
		t, err := time.Parse(dateOnly, v)
		if err != nil {
			return a, errors.New("end_date must be yyyy-mm-dd")
		}
		a.EndDate = &t
	}
	if a.StartDate != nil && a.EndDate != nil && a.EndDate.Before(*a.StartDate) {
		return a, errors.New("end_date must not be before start_date")
	}
	return a, nil
}

// List returns ads filtered by ?filter= plus the counter block.
func (h *AdminAdHandler) List(c echo.Context) error {
	filter := repository.AdFilter(strings.ToLower(strings.TrimSpace(c.QueryParam("filter"))))
	switch filter {
	case repository.AdFilterActive, repository.AdFilterInactive,
		repository.AdFilterExpired, repository.AdFilterUpcoming:
	default:
		filter = repository.AdFilterAll
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	ads, err := h.Ads.List(ctx, filter, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	stats, err := h.Ads.Stats(ctx, now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	ap := make([]adPart, 0, len(ads))
	for _, a := range ads {
		ap = append(ap, toAdPart(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"advertisements": ap, "stats": stats, "filter": string(filter)})
}

// Add creates an ad at the end of the display order.
func (h *AdminAdHandler) Add(c echo.Context) error {
	a, err := adFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if a.Title == "" || a.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}

	imageURL, err := h.saveUpload(c)
	if err != nil {
		if errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only png, jpg, jpeg, gif and webp images are allowed"})
		}
		log.Printf("ads: upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	a.ImageURL = imageURL

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	max, err := h.Ads.MaxDisplayOrder(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	a.DisplayOrder = max + 1

	if err := h.Ads.Create(ctx, &a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"advertisement": toAdPart(a)})
}

// Edit updates an ad; the display order is kept.
func (h *AdminAdHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Ads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "advertisement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	a, err := adFromForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if a.Title == "" || a.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}
	a.ID = id
	a.DisplayOrder = current.DisplayOrder
	a.ImageURL = current.ImageURL

	imageURL, err := h.saveUpload(c)
	if err != nil {
		if errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only png, jpg, jpeg, gif and webp images are allowed"})
		}
		log.Printf("ads: upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	if imageURL != "" {
		a.ImageURL = imageURL
	}

	if err := h.Ads.Update(ctx, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "advertisement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"advertisement": toAdPart(a)})
}

// Toggle flips is_active and returns the new state.
func (h *AdminAdHandler) Toggle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	active, err := h.Ads.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "advertisement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"is_active": active})
}

// MoveUp swaps the ad with its closest predecessor in display order.
// Already-first is a successful no-op.
func (h *AdminAdHandler) MoveUp(c echo.Context) error {
	return h.move(c, h.Ads.MoveUp)
}

// MoveDown swaps the ad with its closest successor in display order.
// Already-last is a successful no-op.
func (h *AdminAdHandler) MoveDown(c echo.Context) error {
	return h.move(c, h.Ads.MoveDown)
}

func (h *AdminAdHandler) move(c echo.Context, op func(context.Context, uint64) (bool, error)) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	moved, err := op(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "advertisement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reorder failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"moved": moved})
}

// Delete removes an ad and best-effort removes its stored image.
func (h *AdminAdHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Ads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "advertisement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Ads.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if a.ImageURL != "" && h.Uploads != nil {
		if err := h.Uploads.DeleteImage(ctx, a.ImageURL); err != nil {
			log.Printf("ads: delete image failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "advertisement deleted"})
}

func (h *AdminAdHandler) saveUpload(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil // no file in the form
	}
	if h.Uploads == nil {
		return "", errors.New("uploads are not configured")
	}
	if !storage.AllowedFile(fh.Filename) {
		return "", storage.ErrBadExtension
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	return h.Uploads.SaveImage(ctx, "ads", fh.Filename, src, fh.Size)
}
