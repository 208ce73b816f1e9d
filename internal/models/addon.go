package models

import "time"

// AddOnCategory represents the experience category of a FIT add-on
type AddOnCategory string

const (
	AddOnCategoryAdventure   AddOnCategory = "adventure"
	AddOnCategoryFood        AddOnCategory = "food"
	AddOnCategoryCulture     AddOnCategory = "culture"
	AddOnCategoryRelaxation  AddOnCategory = "relaxation"
	AddOnCategoryTransport   AddOnCategory = "transport"
	AddOnCategoryStay        AddOnCategory = "stay"
	AddOnCategoryPhotography AddOnCategory = "photography"
)

// FITAddOn is an optional per-person experience attachable to a booking.
type FITAddOn struct {
	ID             string        `json:"id" db:"id"`
	DestinationID  string        `json:"destination_id" db:"destination_id"`
	Name           string        `json:"name" db:"name"`
	Description    string        `json:"description" db:"description"`
	Category       AddOnCategory `json:"category" db:"category"`
	PricePerPerson float64       `json:"price_per_person" db:"price_per_person"`
	DurationHours  int           `json:"duration_hours" db:"duration_hours"`
	IsAvailable    bool          `json:"is_available" db:"is_available"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}
