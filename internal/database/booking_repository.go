package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const bookingColumns = `id, booking_ref, user_id, package_id, destination_id,
	   travelers, fit_addons, total_travelers, total_days,
	   base_package_cost, addons_cost, taxes, total_cost,
	   payment_status, gateway_order_id, payment_id, payment_signature, paid_at,
	   status, travel_date, return_date, contact_details,
	   special_requests, internal_notes, created_at, updated_at`

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create persists a new booking. The cost fields on the model are final at
// this point and are never written again.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_ref, user_id, package_id, destination_id,
			travelers, fit_addons, total_travelers, total_days,
			base_package_cost, addons_cost, taxes, total_cost,
			payment_status, gateway_order_id, status, travel_date,
			contact_details, special_requests
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.BookingRef, booking.UserID, booking.PackageID, booking.DestinationID,
		booking.Travelers, booking.FITAddOns, booking.TotalTravelers, booking.TotalDays,
		booking.BasePackageCost, booking.AddOnsCost, booking.Taxes, booking.TotalCost,
		booking.PaymentStatus, booking.GatewayOrderID, booking.Status, booking.TravelDate,
		booking.ContactDetails, booking.SpecialRequests,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetByReference retrieves a booking by its human-readable reference code
func (r *BookingRepository) GetByReference(reference string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_ref = $1`
	return r.scanBooking(r.db.QueryRow(query, reference))
}

// GetByUserID retrieves all bookings for a user, newest first
func (r *BookingRepository) GetByUserID(userID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List retrieves bookings matching the filter, newest first, with the total
// count for pagination.
func (r *BookingRepository) List(filter models.BookingFilter) ([]models.Booking, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		where += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if filter.DestinationID != "" {
		args = append(args, filter.DestinationID)
		where += fmt.Sprintf(" AND destination_id = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM bookings "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf("SELECT %s FROM bookings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		bookingColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// MarkPaid atomically flips a booking to paid+confirmed and records the
// verified payment details. The payment status guard makes concurrent
// confirmations safe: only one caller observes applied=true, every later
// call is a no-op.
func (r *BookingRepository) MarkPaid(bookingID, paymentID, signature string) (bool, error) {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', status = 'confirmed',
			payment_id = $2, payment_signature = $3,
			paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND payment_status <> 'paid'
	`

	result, err := r.db.Exec(query, bookingID, paymentID, signature)
	if err != nil {
		return false, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// UpdateStatus updates the lifecycle status and internal notes (admin edits)
func (r *BookingRepository) UpdateStatus(bookingID string, status models.BookingStatus, internalNotes *string) error {
	query := `
		UPDATE bookings
		SET status = $2,
			internal_notes = COALESCE($3, internal_notes),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status, internalNotes)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("booking")
	}

	return nil
}

// scanBooking scans a single booking
func (r *BookingRepository) scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var gatewayOrderID sql.NullString
	var paymentID sql.NullString
	var paymentSignature sql.NullString
	var paidAt sql.NullTime
	var returnDate sql.NullTime
	var specialRequests sql.NullString
	var internalNotes sql.NullString

	err := row.Scan(
		&booking.ID, &booking.BookingRef, &booking.UserID, &booking.PackageID, &booking.DestinationID,
		&booking.Travelers, &booking.FITAddOns, &booking.TotalTravelers, &booking.TotalDays,
		&booking.BasePackageCost, &booking.AddOnsCost, &booking.Taxes, &booking.TotalCost,
		&booking.PaymentStatus, &gatewayOrderID, &paymentID, &paymentSignature, &paidAt,
		&booking.Status, &booking.TravelDate, &returnDate, &booking.ContactDetails,
		&specialRequests, &internalNotes, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("booking")
	}
	if err != nil {
		return nil, err
	}

	if gatewayOrderID.Valid {
		booking.GatewayOrderID = &gatewayOrderID.String
	}
	if paymentID.Valid {
		booking.PaymentID = &paymentID.String
	}
	if paymentSignature.Valid {
		booking.PaymentSignature = &paymentSignature.String
	}
	if paidAt.Valid {
		booking.PaidAt = &paidAt.Time
	}
	if returnDate.Valid {
		booking.ReturnDate = &returnDate.Time
	}
	if specialRequests.Valid {
		booking.SpecialRequests = &specialRequests.String
	}
	if internalNotes.Valid {
		booking.InternalNotes = &internalNotes.String
	}

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func (r *BookingRepository) scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}

	return bookings, rows.Err()
}
