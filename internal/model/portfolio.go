package model

import "time"

// PortfolioItem represents a completed project shown on the portfolio
// page. Featured items sort before non-featured ones; ties break by
// creation timestamp, most recent first.
//
// Fields:
//  ID           – primary key identifier.
//  Title        – project title.
//  Client       – client organisation name.
//  Description  – project description.
//  Category     – taxonomy value used for page filtering.
//  ImageURL     – public reference of the showcase image.
//  ProjectURL   – optional link to the live project.
//  Technologies – free-text list of tools used.
//  Testimonial  – quote text from the client.
//  ClientName   – attributed name for the testimonial.
//  ClientRole   – attributed role for the testimonial.
//  Featured     – whether the item is highlighted.
//  CreatedAt    – timestamp of creation.
type PortfolioItem struct {
	ID           uint64    // portfolio_items.id
	Title        string    // portfolio_items.title
	Client       string    // portfolio_items.client
	Description  string    // portfolio_items.description
	Category     string    // portfolio_items.category
	ImageURL     string    // portfolio_items.image_url
	ProjectURL   string    // portfolio_items.project_url
	Technologies string    // portfolio_items.technologies
	Testimonial  string    // portfolio_items.testimonial
	ClientName   string    // portfolio_items.client_name
	ClientRole   string    // portfolio_items.client_role
	Featured     bool      // portfolio_items.featured
	CreatedAt    time.Time // portfolio_items.created_at
}
