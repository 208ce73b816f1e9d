package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const userColumns = `id, name, email, phone, password_hash, role, is_verified, is_blocked,
	   city, total_bookings, total_spent, last_login, last_device, created_at, updated_at`

// UserRepository handles database operations for the users table
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persists a new user. Email uniqueness is enforced by the schema.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	err := r.db.QueryRow(
		query,
		user.ID, user.Name, strings.ToLower(user.Email), user.Phone, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errs.Validation("email is already registered")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(query, userID))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(query, strings.ToLower(email)))
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(userID string, req *models.UpdateProfileRequest) error {
	query := `
		UPDATE users
		SET name = COALESCE($2, name),
			phone = COALESCE($3, phone),
			city = COALESCE($4, city),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, userID, req.Name, req.Phone, req.City)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("user")
	}

	return nil
}

// RecordLogin stamps the last login time and device description
func (r *UserRepository) RecordLogin(userID, device string) error {
	query := `UPDATE users SET last_login = NOW(), last_device = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(query, userID, device)
	return err
}

// IncrementBookingStats bumps the denormalized booking counters after a
// verified payment. Called exactly once per confirmation.
func (r *UserRepository) IncrementBookingStats(userID string, amount float64) error {
	query := `
		UPDATE users
		SET total_bookings = total_bookings + 1,
			total_spent = total_spent + $2,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to increment booking stats: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errs.NotFound("user")
	}

	return nil
}

// SetBlocked flips the blocked flag (admin action)
func (r *UserRepository) SetBlocked(userID string, blocked bool) (*models.User, error) {
	query := `
		UPDATE users SET is_blocked = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	return r.scanUser(r.db.QueryRow(query, userID, blocked))
}

// List retrieves users matching the filter, newest first, with the total count
func (r *UserRepository) List(filter models.UserFilter) ([]models.User, int, error) {
	role := filter.Role
	if role == "" {
		role = models.RoleUser
	}

	where := "WHERE role = $1"
	args := []interface{}{role}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n)
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users "+where, args...).Scan(&total); err != nil {
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
	query := fmt.Sprintf("SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}

	return users, total, rows.Err()
}

// scanUser scans a single user
func (r *UserRepository) scanUser(row scanner) (*models.User, error) {
	user := &models.User{}
	var phone sql.NullString
	var city sql.NullString
	var lastLogin sql.NullTime
	var lastDevice sql.NullString

	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &phone, &user.PasswordHash, &user.Role,
		&user.IsVerified, &user.IsBlocked, &city, &user.TotalBookings, &user.TotalSpent,
		&lastLogin, &lastDevice, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errs.NotFound("user")
	}
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		user.Phone = &phone.String
	}
	if city.Valid {
		user.City = &city.String
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	if lastDevice.Valid {
		user.LastDevice = &lastDevice.String
	}

	return user, nil
}
