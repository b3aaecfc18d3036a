package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/thuwalaco/thuwala-site/internal/model"
	"github.com/thuwalaco/thuwala-site/internal/repository"
)

// PublicHandler serves the unauthenticated site pages.
type PublicHandler struct {
	Services  *repository.ServiceRepo
	Portfolio *repository.PortfolioRepo
	Ads       *repository.AdRepo
}

func NewPublicHandler(s *repository.ServiceRepo, p *repository.PortfolioRepo, a *repository.AdRepo) *PublicHandler {
	return &PublicHandler{Services: s, Portfolio: p, Ads: a}
}

// ----- DTOs -----

type servicePart struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Details     string `json:"details"`
	Category    string `json:"category,omitempty"`
}

type adPart struct {
	ID              uint64     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	CTAText         string     `json:"cta_text"`
	CTALink         string     `json:"cta_link"`
	ImageURL        string     `json:"image_url,omitempty"`
	BackgroundColor string     `json:"background_color"`
	TextColor       string     `json:"text_color"`
	IsActive        bool       `json:"is_active"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	DisplayOrder    int        `json:"display_order"`
}

type portfolioPart struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Client       string    `json:"client,omitempty"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	ImageURL     string    `json:"image_url,omitempty"`
	ProjectURL   string    `json:"project_url,omitempty"`
	Technologies string    `json:"technologies,omitempty"`
	Testimonial  string    `json:"testimonial,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	ClientRole   string    `json:"client_role,omitempty"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"created_at"`
}

func toServicePart(s model.Service) servicePart {
	return servicePart{ID: s.ID, Title: s.Title, Description: s.Description, Icon: s.Icon, Details: s.Details, Category: s.Category}
}

func toAdPart(a model.Advertisement) adPart {
	return adPart{
		ID: a.ID, Title: a.Title, Description: a.Description,
		CTAText: a.CTAText, CTALink: a.CTALink, ImageURL: a.ImageURL,
		BackgroundColor: a.BackgroundColor, TextColor: a.TextColor,
		IsActive: a.IsActive, StartDate: a.StartDate, EndDate: a.EndDate,
		DisplayOrder: a.DisplayOrder,
	}
}

func toPortfolioPart(p model.PortfolioItem) portfolioPart {
	return portfolioPart{
		ID: p.ID, Title: p.Title, Client: p.Client, Description: p.Description,
		Category: p.Category, ImageURL: p.ImageURL, ProjectURL: p.ProjectURL,
		Technologies: p.Technologies, Testimonial: p.Testimonial,
		ClientName: p.ClientName, ClientRole: p.ClientRole,
		Featured: p.Featured, CreatedAt: p.CreatedAt,
	}
}

// Home returns the homepage payload: up to six services plus up to
// five active ads in rendering order.
func (h *PublicHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	services, err := h.Services.ListLimit(ctx, 6)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	ads, err := h.Ads.ListActive(ctx, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	sp := make([]servicePart, 0, len(services))
	for _, s := range services {
		sp = append(sp, toServicePart(s))
	}
	ap := make([]adPart, 0, len(ads))
	for _, a := range ads {
		ap = append(ap, toAdPart(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"services": sp, "advertisements": ap})
}

// About returns the company profile for the about page. The copy is
// static; it does not live in the database.
func (h *PublicHandler) About(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"company":     "Thuwala Co.",
		"description": "A services company helping organizations run their administrative and digital operations.",
	})
}

// ServiceList returns every service ordered by id.
func (h *PublicHandler) ServiceList(c echo.Context) error {
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
	return c.JSON(http.StatusOK, echo.Map{"services": sp})
}

// PortfolioList returns portfolio items, optionally filtered by
// ?category=, with the distinct category list for the filter bar.
// Featured items sort first, then most recent.
func (h *PublicHandler) PortfolioList(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))
	if strings.EqualFold(category, "all") {
		category = ""
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Portfolio.List(ctx, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	categories, err := h.Portfolio.DistinctCategories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	pp := make([]portfolioPart, 0, len(items))
	for _, p := range items {
		pp = append(pp, toPortfolioPart(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": pp, "categories": categories})
}
