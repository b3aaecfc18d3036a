package model

import "time"

// Advertisement represents a promotional banner on the homepage.
// DisplayOrder values define a strict total order among all rows; they
// need not be contiguous. Move-up/move-down swaps neighbouring order
// values inside one transaction so the total order is never broken.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – banner headline.
//  Description     – banner body text.
//  CTAText         – call-to-action label (defaults to "Learn More").
//  CTALink         – call-to-action target URL or path.
//  ImageURL        – optional banner image reference.
//  BackgroundColor – hex background colour for rendering.
//  TextColor       – hex text colour for rendering.
//  IsActive        – whether the banner is currently shown.
//  StartDate       – optional start of the validity window.
//  EndDate         – optional end of the validity window.
//  DisplayOrder    – integer position in the rendering sequence.
//  CreatedAt       – timestamp of creation.
type Advertisement struct {
	ID              uint64     // advertisements.id
	Title           string     // advertisements.title
	Description     string     // advertisements.description
	CTAText         string     // advertisements.cta_text
	CTALink         string     // advertisements.cta_link
	ImageURL        string     // advertisements.image_url
	BackgroundColor string     // advertisements.background_color
	TextColor       string     // advertisements.text_color
	IsActive        bool       // advertisements.is_active
	StartDate       *time.Time // advertisements.start_date (nullable)
	EndDate         *time.Time // advertisements.end_date (nullable)
	DisplayOrder    int        // advertisements.display_order
	CreatedAt       time.Time  // advertisements.created_at
}
