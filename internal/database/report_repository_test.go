package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{
			"total", "confirmed", "leads", "new_leads", "users", "revenue", "today", "month",
		}).AddRow(42, 30, 15, 5, 100, 875000.0, 3, 120000.0))

	mock.ExpectQuery("SELECT (.+) FROM bookings b").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"destination_id", "name", "bookings", "revenue"}).
			AddRow("dest-1", "Goa", 20, 400000.0).
			AddRow("dest-2", "Kerala", 12, 300000.0))

	stats, err := repo.GetDashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 42, stats.TotalBookings)
	assert.Equal(t, 30, stats.ConfirmedBookings)
	assert.Equal(t, 875000.0, stats.TotalRevenue)
	assert.Equal(t, 120000.0, stats.MonthRevenue)
	require.Len(t, stats.TopDestinations, 2)
	assert.Equal(t, "Goa", stats.TopDestinations[0].Name)
	assert.Equal(t, 20, stats.TopDestinations[0].Bookings)
}

func TestGetRevenueSeries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT to_char").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"date", "revenue", "bookings"}).
			AddRow("2026-08-22", 42000.0, 2).
			AddRow("2026-08-25", 21000.0, 1))

	series, err := repo.GetRevenueSeries(7)
	require.NoError(t, err)

	require.Len(t, series, 2)
	assert.Equal(t, "2026-08-22", series[0].Date)
	assert.Equal(t, 42000.0, series[0].Revenue)
	assert.Equal(t, 2, series[0].Bookings)
}

func TestGetRevenueSeriesDefaultsWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	mock.ExpectQuery("SELECT to_char").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"date", "revenue", "bookings"}))

	series, err := repo.GetRevenueSeries(0)
	require.NoError(t, err)
	assert.Empty(t, series)
	assert.NoError(t, mock.ExpectationsWereMet())
}
