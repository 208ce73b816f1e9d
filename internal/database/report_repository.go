package database

import (
	"fmt"

	"github.com/gotravel/gotravel-backend/internal/models"
)

// ReportRepository produces read-only aggregates over bookings, leads and
// users for the admin dashboard. Pure projections of committed state; no
// side effects.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GetDashboardStats computes the dashboard overview rollup.
func (r *ReportRepository) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings),
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed'),
			(SELECT COUNT(*) FROM leads),
			(SELECT COUNT(*) FROM leads WHERE status = 'new'),
			(SELECT COUNT(*) FROM users WHERE role = 'user'),
			(SELECT COALESCE(SUM(total_cost), 0) FROM bookings WHERE payment_status = 'paid'),
			(SELECT COUNT(*) FROM bookings WHERE created_at >= date_trunc('day', NOW())),
			(SELECT COALESCE(SUM(total_cost), 0) FROM bookings
				WHERE payment_status = 'paid' AND created_at >= date_trunc('month', NOW()))
	`

	err := r.db.QueryRow(query).Scan(
		&stats.TotalBookings, &stats.ConfirmedBookings,
		&stats.TotalLeads, &stats.NewLeads, &stats.TotalUsers,
		&stats.TotalRevenue, &stats.TodayBookings, &stats.MonthRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	topDestinations, err := r.getTopDestinations(5)
	if err != nil {
		return nil, err
	}
	stats.TopDestinations = topDestinations

	return stats, nil
}

// getTopDestinations ranks destinations by booking count.
func (r *ReportRepository) getTopDestinations(limit int) ([]models.DestinationAgg, error) {
	query := `
		SELECT b.destination_id, d.name, COUNT(*) AS bookings, COALESCE(SUM(b.total_cost), 0) AS revenue
		FROM bookings b
		JOIN destinations d ON d.id = b.destination_id
		GROUP BY b.destination_id, d.name
		ORDER BY bookings DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top destinations: %w", err)
	}
	defer rows.Close()

	result := []models.DestinationAgg{}
	for rows.Next() {
		var agg models.DestinationAgg
		if err := rows.Scan(&agg.DestinationID, &agg.Name, &agg.Bookings, &agg.Revenue); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}

	return result, rows.Err()
}

// GetRevenueSeries returns a day-bucketed series of paid revenue and booking
// counts over the trailing window. Bucket key is the calendar date in the
// database's reporting timezone, formatted YYYY-MM-DD. Days with no paid
// bookings are absent from the series.
func (r *ReportRepository) GetRevenueSeries(days int) ([]models.RevenuePoint, error) {
	if days <= 0 {
		days = 30
	}

	query := `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS date,
			   COALESCE(SUM(total_cost), 0) AS revenue,
			   COUNT(*) AS bookings
		FROM bookings
		WHERE payment_status = 'paid'
		  AND created_at >= date_trunc('day', NOW()) - ($1 * INTERVAL '1 day')
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := r.db.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to load revenue series: %w", err)
	}
	defer rows.Close()

	series := []models.RevenuePoint{}
	for rows.Next() {
		var point models.RevenuePoint
		if err := rows.Scan(&point.Date, &point.Revenue, &point.Bookings); err != nil {
			return nil, err
		}
		series = append(series, point)
	}

	return series, rows.Err()
}
