package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/gotravel/gotravel-backend/internal/errs"
)

// Destination represents a travel destination in the catalog. Read-mostly;
// mutated only by admin actions.
type Destination struct {
	ID               string         `json:"id" db:"id"`
	Name             string         `json:"name" db:"name"`
	Slug             string         `json:"slug" db:"slug"`
	State            string         `json:"state" db:"state"`
	Country          string         `json:"country" db:"country"`
	HeroImage        string         `json:"hero_image" db:"hero_image"`
	Gallery          pq.StringArray `json:"gallery" db:"gallery"`
	ShortDescription string         `json:"short_description" db:"short_description"`
	LongDescription  string         `json:"long_description" db:"long_description"`
	BasePrice        float64        `json:"base_price" db:"base_price"`
	Duration         int            `json:"duration" db:"duration"`
	Tags             pq.StringArray `json:"tags" db:"tags"`
	IsFeatured       bool           `json:"is_featured" db:"is_featured"`
	IsActive         bool           `json:"is_active" db:"is_active"`
	Rating           float64        `json:"rating" db:"rating"`
	ReviewCount      int            `json:"review_count" db:"review_count"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// DestinationInput is the admin create/update payload.
type DestinationInput struct {
	Name             string   `json:"name" binding:"required"`
	State            string   `json:"state" binding:"required"`
	Country          string   `json:"country"`
	HeroImage        string   `json:"hero_image" binding:"required"`
	Gallery          []string `json:"gallery"`
	ShortDescription string   `json:"short_description" binding:"required"`
	LongDescription  string   `json:"long_description" binding:"required"`
	BasePrice        float64  `json:"base_price" binding:"required"`
	Duration         int      `json:"duration" binding:"required"`
	Tags             []string `json:"tags"`
	IsFeatured       bool     `json:"is_featured"`
	IsActive         *bool    `json:"is_active"`
}

// Validate checks price and duration sanity.
func (d *DestinationInput) Validate() error {
	if d.BasePrice <= 0 {
		return errs.Validation("base price must be positive")
	}
	if d.Duration <= 0 {
		return errs.Validation("duration must be positive")
	}
	return nil
}
