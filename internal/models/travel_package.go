package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/gotravel/gotravel-backend/internal/errs"
)

// PackageType represents the travel style of a package
type PackageType string

const (
	PackageTypeGroup     PackageType = "group"
	PackageTypeFIT       PackageType = "fit"
	PackageTypeHoneymoon PackageType = "honeymoon"
	PackageTypeFamily    PackageType = "family"
)

// PackageStatus represents the availability of a package
type PackageStatus string

const (
	PackageStatusActive   PackageStatus = "active"
	PackageStatusInactive PackageStatus = "inactive"
	PackageStatusSoldOut  PackageStatus = "soldout"
)

// ItineraryDay is one day of a package itinerary template.
type ItineraryDay struct {
	Day           int      `json:"day"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Activities    []string `json:"activities,omitempty"`
	Meals         []string `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
	Transport     string   `json:"transport,omitempty"`
}

// TravelPackage is an admin-defined, priced travel product tied to a
// destination. Immutable from the booking flow's perspective.
type TravelPackage struct {
	ID              string           `json:"id" db:"id"`
	DestinationID   string           `json:"destination_id" db:"destination_id"`
	Title           string           `json:"title" db:"title"`
	Type            PackageType      `json:"type" db:"type"`
	Duration        int              `json:"duration" db:"duration"`
	Nights          int              `json:"nights" db:"nights"`
	BasePrice       float64          `json:"base_price" db:"base_price"`
	DiscountedPrice *float64         `json:"discounted_price,omitempty" db:"discounted_price"`
	Inclusions      pq.StringArray   `json:"inclusions" db:"inclusions"`
	Exclusions      pq.StringArray   `json:"exclusions" db:"exclusions"`
	Itinerary       ItineraryDayList `json:"itinerary" db:"itinerary"`
	Status          PackageStatus    `json:"status" db:"status"`
	MinGroupSize    int              `json:"min_group_size" db:"min_group_size"`
	MaxGroupSize    int              `json:"max_group_size" db:"max_group_size"`
	Highlights      pq.StringArray   `json:"highlights" db:"highlights"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" db:"updated_at"`
}

// UnitPrice returns the per-traveler price, preferring the discounted price
// when one is set.
func (p *TravelPackage) UnitPrice() float64 {
	if p.DiscountedPrice != nil && *p.DiscountedPrice > 0 {
		return *p.DiscountedPrice
	}
	return p.BasePrice
}

// PackageInput is the admin create/update payload.
type PackageInput struct {
	DestinationID   string         `json:"destination_id" binding:"required"`
	Title           string         `json:"title" binding:"required"`
	Type            PackageType    `json:"type"`
	Duration        int            `json:"duration" binding:"required"`
	Nights          int            `json:"nights"`
	BasePrice       float64        `json:"base_price" binding:"required"`
	DiscountedPrice *float64       `json:"discounted_price,omitempty"`
	Inclusions      []string       `json:"inclusions"`
	Exclusions      []string       `json:"exclusions"`
	Itinerary       []ItineraryDay `json:"itinerary"`
	Status          PackageStatus  `json:"status"`
	MinGroupSize    int            `json:"min_group_size"`
	MaxGroupSize    int            `json:"max_group_size"`
	Highlights      []string       `json:"highlights"`
}

// Validate checks enum values and price sanity.
func (p *PackageInput) Validate() error {
	if p.BasePrice <= 0 {
		return errs.Validation("base price must be positive")
	}
	if p.DiscountedPrice != nil && *p.DiscountedPrice > p.BasePrice {
		return errs.Validation("discounted price cannot exceed base price")
	}
	switch p.Type {
	case "", PackageTypeGroup, PackageTypeFIT, PackageTypeHoneymoon, PackageTypeFamily:
	default:
		return errs.Validation("invalid package type")
	}
	switch p.Status {
	case "", PackageStatusActive, PackageStatusInactive, PackageStatusSoldOut:
	default:
		return errs.Validation("invalid package status")
	}
	return nil
}
