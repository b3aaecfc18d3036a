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

// AdminPortfolioHandler manages portfolio items, including the image
// upload that goes with them. Add and Edit accept multipart forms so
// the image travels with the fields.
type AdminPortfolioHandler struct {
	Portfolio *repository.PortfolioRepo
	Uploads   *storage.Uploader
}

func NewAdminPortfolioHandler(p *repository.PortfolioRepo, u *storage.Uploader) *AdminPortfolioHandler {
	return &AdminPortfolioHandler{Portfolio: p, Uploads: u}
}

// saveUpload stores the optional "image" form file and returns its
// public URL. Returns "" when no file was sent.
func (h *AdminPortfolioHandler) saveUpload(c echo.Context, subdir string) (string, error) {
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
	return h.Uploads.SaveImage(ctx, subdir, fh.Filename, src, fh.Size)
}

func portfolioFromForm(c echo.Context) model.PortfolioItem {
	return model.PortfolioItem{
		Title:        strings.TrimSpace(c.FormValue("title")),
		Client:       strings.TrimSpace(c.FormValue("client")),
		Description:  c.FormValue("description"),
		Category:     strings.TrimSpace(c.FormValue("category")),
		ProjectURL:   strings.TrimSpace(c.FormValue("project_url")),
		Technologies: c.FormValue("technologies"),
		Testimonial:  c.FormValue("testimonial"),
		ClientName:   strings.TrimSpace(c.FormValue("client_name")),
		ClientRole:   strings.TrimSpace(c.FormValue("client_role")),
		Featured:     c.FormValue("featured") == "true" || c.FormValue("featured") == "on" || c.FormValue("featured") == "1",
	}
}

// List returns all items for the back office table.
func (h *AdminPortfolioHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Portfolio.List(ctx, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	pp := make([]portfolioPart, 0, len(items))
	for _, p := range items {
		pp = append(pp, toPortfolioPart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": pp})
}

// Add creates an item from a multipart form with an optional image.
func (h *AdminPortfolioHandler) Add(c echo.Context) error {
	p := portfolioFromForm(c)
	if p.Title == "" || p.Description == "" || p.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, description and category are required"})
	}

	imageURL, err := h.saveUpload(c, "portfolio")
	if err != nil {
		if errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only png, jpg, jpeg, gif and webp images are allowed"})
		}
		log.Printf("portfolio: upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	p.ImageURL = imageURL

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Portfolio.Create(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toPortfolioPart(p)})
}

// Edit updates an item; a new image replaces the stored URL, no image
// keeps the current one.
func (h *AdminPortfolioHandler) Edit(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Portfolio.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	p := portfolioFromForm(c)
	p.ID = id
	p.ImageURL = current.ImageURL
	if p.Title == "" || p.Description == "" || p.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, description and category are required"})
	}

	imageURL, err := h.saveUpload(c, "portfolio")
	if err != nil {
		if errors.Is(err, storage.ErrBadExtension) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "only png, jpg, jpeg, gif and webp images are allowed"})
		}
		log.Printf("portfolio: upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image upload failed"})
	}
	if imageURL != "" {
		p.ImageURL = imageURL
	}

	if err := h.Portfolio.Update(ctx, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toPortfolioPart(p)})
}

// Delete removes an item and best-effort removes its stored image.
func (h *AdminPortfolioHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Portfolio.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "portfolio item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Portfolio.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if p.ImageURL != "" && h.Uploads != nil {
		if err := h.Uploads.DeleteImage(ctx, p.ImageURL); err != nil {
			log.Printf("portfolio: delete image failed: %v", err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "portfolio item deleted"})
}
