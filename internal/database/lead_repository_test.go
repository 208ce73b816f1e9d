package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotravel/gotravel-backend/internal/models"
)

func leadRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "user_id", "destination_id", "package_id", "contact_details",
		"preferred_dates", "group_size", "budget", "message", "status", "notified_admin",
		"source", "utm_source", "utm_medium", "utm_campaign", "admin_notes",
		"follow_up_date", "converted_booking_id", "created_at", "updated_at",
	}).AddRow(
		"lead-1", nil, "dest-1", nil, []byte(`{"name":"Ravi","email":"r@example.com","phone":"x"}`),
		nil, 4, nil, nil, "new", false,
		"website", nil, nil, nil, nil,
		nil, nil, now, now,
	)
}

func TestLeadCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO leads").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	lead := &models.Lead{
		DestinationID:  "dest-1",
		ContactDetails: models.ContactDetails{Name: "Ravi", Email: "r@example.com", Phone: "x"},
		GroupSize:      4,
	}
	require.NoError(t, repo.Create(lead))

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, models.LeadStatusNew, lead.Status)
	assert.Equal(t, "website", lead.Source)
}

func TestLeadListUnnotified(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM leads").
		WithArgs(50).
		WillReturnRows(leadRows())

	leads, err := repo.ListUnnotified(50)
	require.NoError(t, err)

	require.Len(t, leads, 1)
	assert.False(t, leads[0].NotifiedAdmin)
	assert.Equal(t, "Ravi", leads[0].ContactDetails.Name)
}

func TestLeadMarkNotified(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLeadRepository(db)

	mock.ExpectExec("UPDATE leads SET notified_admin").
		WithArgs("lead-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkNotified("lead-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
