package database

import (
	"database/sql"
	"fmt"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const addonColumns = `id, destination_id, name, description, category,
	   price_per_person, duration_hours, is_available, created_at, updated_at`

// AddOnRepository handles database operations for the fit_addons table
type AddOnRepository struct {
	db DB
}

// NewAddOnRepository creates a new AddOnRepository
func NewAddOnRepository(db DB) *AddOnRepository {
	return &AddOnRepository{db: db}
}

// GetByID retrieves an add-on by ID
func (r *AddOnRepository) GetByID(id string) (*models.FITAddOn, error) {
	query := `SELECT ` + addonColumns + ` FROM fit_addons WHERE id = $1`
	return r.scanAddOn(r.db.QueryRow(query, id))
}

// ListByDestination retrieves available add-ons for a destination
func (r *AddOnRepository) ListByDestination(destinationID string) ([]models.FITAddOn, error) {
	query := `SELECT ` + addonColumns + ` FROM fit_addons
		WHERE destination_id = $1 AND is_available = true
		ORDER BY category, name`

	rows, err := r.db.Query(query, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list add-ons: %w", err)
	}
	defer rows.Close()

	addons := []models.FITAddOn{}
	for rows.Next() {
		a, err := r.scanAddOn(rows)
		if err != nil {
			return nil, err
		}
		addons = append(addons, *a)
	}

	return addons, rows.Err()
}

// scanAddOn scans a single add-on
func (r *AddOnRepository) scanAddOn(row scanner) (*models.FITAddOn, error) {
	a := &models.FITAddOn{}

	err := row.Scan(
		&a.ID, &a.DestinationID, &a.Name, &a.Description, &a.Category,
		&a.PricePerPerson, &a.DurationHours, &a.IsAvailable, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("add-on")
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}
