package models

import (
	"time"

	"github.com/gotravel/gotravel-backend/internal/errs"
)

// LeadStatus represents the sales pipeline state of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusLost      LeadStatus = "lost"
)

// Lead is a prospective customer's inquiry. Independent of any booking
// unless later converted.
type Lead struct {
	ID                 string         `json:"id" db:"id"`
	UserID             *string        `json:"user_id,omitempty" db:"user_id"`
	DestinationID      string         `json:"destination_id" db:"destination_id"`
	PackageID          *string        `json:"package_id,omitempty" db:"package_id"`
	ContactDetails     ContactDetails `json:"contact_details" db:"contact_details"`
	PreferredDates     *string        `json:"preferred_dates,omitempty" db:"preferred_dates"`
	GroupSize          int            `json:"group_size" db:"group_size"`
	Budget             *string        `json:"budget,omitempty" db:"budget"`
	Message            *string        `json:"message,omitempty" db:"message"`
	Status             LeadStatus     `json:"status" db:"status"`
	NotifiedAdmin      bool           `json:"notified_admin" db:"notified_admin"`
	Source             string         `json:"source" db:"source"`
	UTMSource          *string        `json:"utm_source,omitempty" db:"utm_source"`
	UTMMedium          *string        `json:"utm_medium,omitempty" db:"utm_medium"`
	UTMCampaign        *string        `json:"utm_campaign,omitempty" db:"utm_campaign"`
	AdminNotes         *string        `json:"admin_notes,omitempty" db:"admin_notes"`
	FollowUpDate       *time.Time     `json:"follow_up_date,omitempty" db:"follow_up_date"`
	ConvertedBookingID *string        `json:"converted_booking_id,omitempty" db:"converted_booking_id"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateLeadRequest represents a public inquiry form submission
type CreateLeadRequest struct {
	DestinationID  string         `json:"destination_id" binding:"required"`
	PackageID      *string        `json:"package_id,omitempty"`
	ContactDetails ContactDetails `json:"contact_details" binding:"required"`
	PreferredDates *string        `json:"preferred_dates,omitempty"`
	GroupSize      int            `json:"group_size"`
	Budget         *string        `json:"budget,omitempty"`
	Message        *string        `json:"message,omitempty"`
	Source         string         `json:"source"`
	UTMSource      *string        `json:"utm_source,omitempty"`
	UTMMedium      *string        `json:"utm_medium,omitempty"`
	UTMCampaign    *string        `json:"utm_campaign,omitempty"`
}

// Validate validates the inquiry form fields.
func (r *CreateLeadRequest) Validate() error {
	if r.ContactDetails.Name == "" || r.ContactDetails.Email == "" || r.ContactDetails.Phone == "" {
		return errs.Validation("contact name, email and phone are required")
	}
	if r.GroupSize < 0 {
		return errs.Validation("group size cannot be negative")
	}
	return nil
}

// UpdateLeadStatusRequest represents an admin pipeline update
type UpdateLeadStatusRequest struct {
	Status       LeadStatus `json:"status" binding:"required"`
	AdminNotes   *string    `json:"admin_notes,omitempty"`
	FollowUpDate *time.Time `json:"follow_up_date,omitempty"`
}

// Validate checks the status value against the closed enumeration.
func (r *UpdateLeadStatusRequest) Validate() error {
	switch r.Status {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted, LeadStatusLost:
		return nil
	}
	return errs.Validation("invalid lead status")
}

// LeadFilter narrows admin lead lists.
type LeadFilter struct {
	Status        LeadStatus
	DestinationID string
	Page          int
	Limit         int
}
