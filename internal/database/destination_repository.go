package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const destinationColumns = `id, name, slug, state, country, hero_image, gallery,
	   short_description, long_description, base_price, duration, tags,
	   is_featured, is_active, rating, review_count, created_at, updated_at`

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify produces a URL-safe slug from a destination name.
func Slugify(name string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// DestinationRepository handles database operations for the destinations table
type DestinationRepository struct {
	db DB
}

// NewDestinationRepository creates a new DestinationRepository
func NewDestinationRepository(db DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// Create persists a new destination
func (r *DestinationRepository) Create(input *models.DestinationInput) (*models.Destination, error) {
	query := `
		INSERT INTO destinations (
			id, name, slug, state, country, hero_image, gallery,
			short_description, long_description, base_price, duration, tags,
			is_featured, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + destinationColumns

	country := input.Country
	if country == "" {
		country = "India"
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	return r.scanDestination(r.db.QueryRow(
		query,
		uuid.New().String(), input.Name, Slugify(input.Name), input.State, country,
		input.HeroImage, pq.StringArray(input.Gallery),
		input.ShortDescription, input.LongDescription, input.BasePrice, input.Duration,
		pq.StringArray(input.Tags), input.IsFeatured, active,
	))
}

// Update replaces the mutable fields of a destination
func (r *DestinationRepository) Update(id string, input *models.DestinationInput) (*models.Destination, error) {
	query := `
		UPDATE destinations
		SET name = $2, slug = $3, state = $4, hero_image = $5, gallery = $6,
			short_description = $7, long_description = $8, base_price = $9,
			duration = $10, tags = $11, is_featured = $12,
			is_active = COALESCE($13, is_active), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + destinationColumns

	return r.scanDestination(r.db.QueryRow(
		query,
		id, input.Name, Slugify(input.Name), input.State, input.HeroImage,
		pq.StringArray(input.Gallery), input.ShortDescription, input.LongDescription,
		input.BasePrice, input.Duration, pq.StringArray(input.Tags),
		input.IsFeatured, input.IsActive,
	))
}

// GetByID retrieves a destination by ID
func (r *DestinationRepository) GetByID(id string) (*models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	return r.scanDestination(r.db.QueryRow(query, id))
}

// GetBySlug retrieves a destination by slug
func (r *DestinationRepository) GetBySlug(slug string) (*models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE slug = $1`
	return r.scanDestination(r.db.QueryRow(query, slug))
}

// ListActive retrieves all active destinations, featured first
func (r *DestinationRepository) ListActive() ([]models.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations
		WHERE is_active = true
		ORDER BY is_featured DESC, name ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}
	defer rows.Close()

	destinations := []models.Destination{}
	for rows.Next() {
		d, err := r.scanDestination(rows)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, *d)
	}

	return destinations, rows.Err()
}

// scanDestination scans a single destination
func (r *DestinationRepository) scanDestination(row scanner) (*models.Destination, error) {
	d := &models.Destination{}

	err := row.Scan(
		&d.ID, &d.Name, &d.Slug, &d.State, &d.Country, &d.HeroImage, &d.Gallery,
		&d.ShortDescription, &d.LongDescription, &d.BasePrice, &d.Duration, &d.Tags,
		&d.IsFeatured, &d.IsActive, &d.Rating, &d.ReviewCount, &d.CreatedAt, &d.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("destination")
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}
