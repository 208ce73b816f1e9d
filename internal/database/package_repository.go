package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const packageColumns = `id, destination_id, title, type, duration, nights,
	   base_price, discounted_price, inclusions, exclusions, itinerary,
	   status, min_group_size, max_group_size, highlights, created_at, updated_at`

// PackageRepository handles database operations for the packages table
type PackageRepository struct {
	db DB
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// Create persists a new package
func (r *PackageRepository) Create(input *models.PackageInput) (*models.TravelPackage, error) {
	query := `
		INSERT INTO packages (
			id, destination_id, title, type, duration, nights,
			base_price, discounted_price, inclusions, exclusions, itinerary,
			status, min_group_size, max_group_size, highlights
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + packageColumns

	pkgType := input.Type
	if pkgType == "" {
		pkgType = models.PackageTypeGroup
	}
	status := input.Status
	if status == "" {
		status = models.PackageStatusActive
	}
	minSize := input.MinGroupSize
	if minSize <= 0 {
		minSize = 1
	}
	maxSize := input.MaxGroupSize
	if maxSize <= 0 {
		maxSize = 20
	}

	return r.scanPackage(r.db.QueryRow(
		query,
		uuid.New().String(), input.DestinationID, input.Title, pkgType, input.Duration, input.Nights,
		input.BasePrice, input.DiscountedPrice, pq.StringArray(input.Inclusions),
		pq.StringArray(input.Exclusions), models.ItineraryDayList(input.Itinerary),
		status, minSize, maxSize, pq.StringArray(input.Highlights),
	))
}

// Update replaces the mutable fields of a package
func (r *PackageRepository) Update(id string, input *models.PackageInput) (*models.TravelPackage, error) {
	query := `
		UPDATE packages
		SET title = $2, type = COALESCE(NULLIF($3, ''), type), duration = $4, nights = $5,
			base_price = $6, discounted_price = $7, inclusions = $8, exclusions = $9,
			itinerary = $10, status = COALESCE(NULLIF($11, ''), status),
			min_group_size = $12, max_group_size = $13, highlights = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + packageColumns

	return r.scanPackage(r.db.QueryRow(
		query,
		id, input.Title, string(input.Type), input.Duration, input.Nights,
		input.BasePrice, input.DiscountedPrice, pq.StringArray(input.Inclusions),
		pq.StringArray(input.Exclusions), models.ItineraryDayList(input.Itinerary),
		string(input.Status), input.MinGroupSize, input.MaxGroupSize,
		pq.StringArray(input.Highlights),
	))
}

// GetByID retrieves a package by ID
func (r *PackageRepository) GetByID(id string) (*models.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	return r.scanPackage(r.db.QueryRow(query, id))
}

// ListByDestination retrieves active packages for a destination
func (r *PackageRepository) ListByDestination(destinationID string) ([]models.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages
		WHERE destination_id = $1 AND status = 'active'
		ORDER BY base_price ASC`

	rows, err := r.db.Query(query, destinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	return r.scanPackages(rows)
}

// ListActive retrieves all active packages
func (r *PackageRepository) ListActive() ([]models.TravelPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE status = 'active' ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	return r.scanPackages(rows)
}

// scanPackage scans a single package
func (r *PackageRepository) scanPackage(row scanner) (*models.TravelPackage, error) {
	p := &models.TravelPackage{}
	var discountedPrice sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.DestinationID, &p.Title, &p.Type, &p.Duration, &p.Nights,
		&p.BasePrice, &discountedPrice, &p.Inclusions, &p.Exclusions, &p.Itinerary,
		&p.Status, &p.MinGroupSize, &p.MaxGroupSize, &p.Highlights, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("package")
	}
	if err != nil {
		return nil, err
	}

	if discountedPrice.Valid {
		p.DiscountedPrice = &discountedPrice.Float64
	}

	return p, nil
}

// scanPackages scans multiple packages from rows
func (r *PackageRepository) scanPackages(rows *sql.Rows) ([]models.TravelPackage, error) {
	packages := []models.TravelPackage{}

	for rows.Next() {
		p, err := r.scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, *p)
	}

	return packages, rows.Err()
}
