package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const leadColumns = `id, user_id, destination_id, package_id, contact_details,
	   preferred_dates, group_size, budget, message, status, notified_admin,
	   source, utm_source, utm_medium, utm_campaign, admin_notes,
	   follow_up_date, converted_booking_id, created_at, updated_at`

// LeadRepository handles database operations for the leads table
type LeadRepository struct {
	db DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create persists a new lead with status "new"
func (r *LeadRepository) Create(lead *models.Lead) error {
	query := `
		INSERT INTO leads (
			id, user_id, destination_id, package_id, contact_details,
			preferred_dates, group_size, budget, message, status, source,
			utm_source, utm_medium, utm_campaign
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`

	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusNew
	}
	if lead.Source == "" {
		lead.Source = "website"
	}

	err := r.db.QueryRow(
		query,
		lead.ID, lead.UserID, lead.DestinationID, lead.PackageID, lead.ContactDetails,
		lead.PreferredDates, lead.GroupSize, lead.Budget, lead.Message, lead.Status,
		lead.Source, lead.UTMSource, lead.UTMMedium, lead.UTMCampaign,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(leadID string) (*models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanLead(r.db.QueryRow(query, leadID))
}

// MarkNotified flips the informational notified_admin flag after the admin
// alert was delivered.
func (r *LeadRepository) MarkNotified(leadID string) error {
	query := `UPDATE leads SET notified_admin = true, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(query, leadID)
	return err
}

// ListUnnotified retrieves recent leads whose admin alert has not been
// delivered yet, oldest first, for the retry job.
func (r *LeadRepository) ListUnnotified(limit int) ([]models.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE notified_admin = false AND created_at > NOW() - INTERVAL '24 hours'
		ORDER BY created_at ASC
		LIMIT $1`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanLeads(rows)
}

// UpdateStatus updates the pipeline status and admin fields
func (r *LeadRepository) UpdateStatus(leadID string, req *models.UpdateLeadStatusRequest) (*models.Lead, error) {
	query := `
		UPDATE leads
		SET status = $2,
			admin_notes = COALESCE($3, admin_notes),
			follow_up_date = COALESCE($4, follow_up_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + leadColumns

	return r.scanLead(r.db.QueryRow(query, leadID, req.Status, req.AdminNotes, req.FollowUpDate))
}

// List retrieves leads matching the filter, newest first, with the total count
func (r *LeadRepository) List(filter models.LeadFilter) ([]models.Lead, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.DestinationID != "" {
		args = append(args, filter.DestinationID)
		where += fmt.Sprintf(" AND destination_id = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM leads "+where, args...).Scan(&total); err != nil {
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
	query := fmt.Sprintf("SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		leadColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads, err := r.scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// scanLead scans a single lead
func (r *LeadRepository) scanLead(row scanner) (*models.Lead, error) {
	lead := &models.Lead{}
	var userID sql.NullString
	var packageID sql.NullString
	var preferredDates sql.NullString
	var budget sql.NullString
	var message sql.NullString
	var utmSource sql.NullString
	var utmMedium sql.NullString
	var utmCampaign sql.NullString
	var adminNotes sql.NullString
	var followUpDate sql.NullTime
	var convertedBookingID sql.NullString

	err := row.Scan(
		&lead.ID, &userID, &lead.DestinationID, &packageID, &lead.ContactDetails,
		&preferredDates, &lead.GroupSize, &budget, &message, &lead.Status, &lead.NotifiedAdmin,
		&lead.Source, &utmSource, &utmMedium, &utmCampaign, &adminNotes,
		&followUpDate, &convertedBookingID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("lead")
	}
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		lead.UserID = &userID.String
	}
	if packageID.Valid {
		lead.PackageID = &packageID.String
	}
	if preferredDates.Valid {
		lead.PreferredDates = &preferredDates.String
	}
	if budget.Valid {
		lead.Budget = &budget.String
	}
	if message.Valid {
		lead.Message = &message.String
	}
	if utmSource.Valid {
		lead.UTMSource = &utmSource.String
	}
	if utmMedium.Valid {
		lead.UTMMedium = &utmMedium.String
	}
	if utmCampaign.Valid {
		lead.UTMCampaign = &utmCampaign.String
	}
	if adminNotes.Valid {
		lead.AdminNotes = &adminNotes.String
	}
	if followUpDate.Valid {
		lead.FollowUpDate = &followUpDate.Time
	}
	if convertedBookingID.Valid {
		lead.ConvertedBookingID = &convertedBookingID.String
	}

	return lead, nil
}

// scanLeads scans multiple leads from rows
func (r *LeadRepository) scanLeads(rows *sql.Rows) ([]models.Lead, error) {
	leads := []models.Lead{}

	for rows.Next() {
		lead, err := r.scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}

	return leads, rows.Err()
}
