package models

import (
	"time"

	"github.com/gotravel/gotravel-backend/internal/errs"
)

// PaymentStatus represents the payment status of a booking
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// BookingStatus represents the trip lifecycle status of a booking,
// independent of the payment status.
type BookingStatus string

const (
	BookingStatusEnquiry   BookingStatus = "enquiry"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeparted  BookingStatus = "departed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Gender values accepted for travelers.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// IDProofType values accepted for traveler identity documents.
const (
	IDProofAadhar         = "aadhar"
	IDProofPassport       = "passport"
	IDProofDrivingLicense = "drivinglicense"
)

// Traveler is a value object embedded in a booking. It has no lifecycle of
// its own.
type Traveler struct {
	Name          string `json:"name" binding:"required"`
	Age           int    `json:"age" binding:"required"`
	Gender        string `json:"gender"`
	IDProofType   string `json:"id_proof_type"`
	IDProofNumber string `json:"id_proof_number"`
}

// AddOnSelection is a selected FIT add-on with the price snapshot taken at
// booking time.
type AddOnSelection struct {
	AddOnID        string  `json:"addon_id"`
	Name           string  `json:"name"`
	PricePerPerson float64 `json:"price_per_person"`
	Quantity       int     `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
}

// Booking is the central aggregate: a customer's purchase of a travel
// package. The four cost fields are computed once at creation and never
// recomputed, so the amount charged always matches the amount verified.
type Booking struct {
	ID            string             `json:"id" db:"id"`
	BookingRef    string             `json:"booking_ref" db:"booking_ref"`
	UserID        string             `json:"user_id" db:"user_id"`
	PackageID     string             `json:"package_id" db:"package_id"`
	DestinationID string             `json:"destination_id" db:"destination_id"`
	Travelers     TravelerList       `json:"travelers" db:"travelers"`
	FITAddOns     AddOnSelectionList `json:"fit_addons" db:"fit_addons"`

	TotalTravelers  int     `json:"total_travelers" db:"total_travelers"`
	TotalDays       int     `json:"total_days" db:"total_days"`
	BasePackageCost float64 `json:"base_package_cost" db:"base_package_cost"`
	AddOnsCost      float64 `json:"addons_cost" db:"addons_cost"`
	Taxes           float64 `json:"taxes" db:"taxes"`
	TotalCost       float64 `json:"total_cost" db:"total_cost"`

	PaymentStatus    PaymentStatus `json:"payment_status" db:"payment_status"`
	GatewayOrderID   *string       `json:"gateway_order_id,omitempty" db:"gateway_order_id"`
	PaymentID        *string       `json:"payment_id,omitempty" db:"payment_id"`
	PaymentSignature *string       `json:"payment_signature,omitempty" db:"payment_signature"`
	PaidAt           *time.Time    `json:"paid_at,omitempty" db:"paid_at"`

	Status          BookingStatus  `json:"status" db:"status"`
	TravelDate      time.Time      `json:"travel_date" db:"travel_date"`
	ReturnDate      *time.Time     `json:"return_date,omitempty" db:"return_date"`
	ContactDetails  ContactDetails `json:"contact_details" db:"contact_details"`
	SpecialRequests *string        `json:"special_requests,omitempty" db:"special_requests"`
	InternalNotes   *string        `json:"internal_notes,omitempty" db:"internal_notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsPaid checks if the booking is paid
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// CreateBookingRequest represents the request to create a booking
type CreateBookingRequest struct {
	PackageID       string              `json:"package_id" binding:"required"`
	DestinationID   string              `json:"destination_id"`
	Travelers       []Traveler          `json:"travelers" binding:"required"`
	FITAddOns       []AddOnSelectionReq `json:"fit_addons"`
	TravelDate      time.Time           `json:"travel_date" binding:"required"`
	ContactDetails  ContactDetails      `json:"contact_details" binding:"required"`
	SpecialRequests *string             `json:"special_requests,omitempty"`
}

// AddOnSelectionReq is a client-side add-on selection before the price
// snapshot is taken.
type AddOnSelectionReq struct {
	AddOnID        string  `json:"addon_id"`
	Name           string  `json:"name"`
	PricePerPerson float64 `json:"price_per_person"`
	Quantity       int     `json:"quantity"`
}

// Validate validates the create booking request.
// Travel dates in the past and traveler counts outside the package group
// size bounds are accepted; the booking flow has always allowed both.
func (r *CreateBookingRequest) Validate() error {
	if len(r.Travelers) == 0 {
		return errs.Validation("at least one traveler is required")
	}
	for _, t := range r.Travelers {
		if t.Name == "" {
			return errs.Validation("traveler name is required")
		}
		if t.Age <= 0 {
			return errs.Validation("traveler age must be positive")
		}
	}
	for _, a := range r.FITAddOns {
		if a.PricePerPerson < 0 {
			return errs.Validation("add-on price cannot be negative")
		}
		if a.Quantity < 0 {
			return errs.Validation("add-on quantity cannot be negative")
		}
	}
	if r.ContactDetails.Name == "" || r.ContactDetails.Email == "" || r.ContactDetails.Phone == "" {
		return errs.Validation("contact name, email and phone are required")
	}
	return nil
}

// VerifyPaymentRequest represents the client-reported payment confirmation
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature        string `json:"razorpay_signature" binding:"required"`
}

// UpdateBookingStatusRequest represents an admin lifecycle status edit
type UpdateBookingStatusRequest struct {
	Status        BookingStatus `json:"status" binding:"required"`
	InternalNotes *string       `json:"internal_notes,omitempty"`
}

// Validate checks the status value against the closed enumeration.
func (r *UpdateBookingStatusRequest) Validate() error {
	switch r.Status {
	case BookingStatusEnquiry, BookingStatusConfirmed, BookingStatusDeparted,
		BookingStatusCompleted, BookingStatusCancelled:
		return nil
	}
	return errs.Validation("invalid booking status")
}

// BookingFilter narrows admin booking lists.
type BookingFilter struct {
	Status        BookingStatus
	PaymentStatus PaymentStatus
	DestinationID string
	Page          int
	Limit         int
}
