package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

func TestUserCreateLowercasesEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "Asha", "asha@example.com", nil, "hash", models.RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &models.User{Name: "Asha", Email: "Asha@Example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(&models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "hash"})
	assert.True(t, errs.IsValidation(err))
}

func TestIncrementBookingStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users").
		WithArgs("user-1", 21000.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementBookingStats("user-1", 21000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBookingStatsUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users").
		WithArgs("missing", 100.0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementBookingStats("missing", 100)
	assert.True(t, errs.IsNotFound(err))
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID("missing")
	assert.True(t, errs.IsNotFound(err))
}
