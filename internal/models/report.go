package models

// DashboardStats is the admin dashboard overview rollup.
type DashboardStats struct {
	TotalBookings     int              `json:"total_bookings"`
	ConfirmedBookings int              `json:"confirmed_bookings"`
	TotalLeads        int              `json:"total_leads"`
	NewLeads          int              `json:"new_leads"`
	TotalUsers        int              `json:"total_users"`
	TotalRevenue      float64          `json:"total_revenue"`
	TodayBookings     int              `json:"today_bookings"`
	MonthRevenue      float64          `json:"month_revenue"`
	TopDestinations   []DestinationAgg `json:"top_destinations"`
}

// DestinationAgg is a per-destination booking rollup.
type DestinationAgg struct {
	DestinationID string  `json:"destination_id" db:"destination_id"`
	Name          string  `json:"name" db:"name"`
	Bookings      int     `json:"bookings" db:"bookings"`
	Revenue       float64 `json:"revenue" db:"revenue"`
}

// RevenuePoint is one day bucket of the trailing revenue series.
// Date is the calendar date in the reporting timezone, formatted YYYY-MM-DD.
type RevenuePoint struct {
	Date     string  `json:"date" db:"date"`
	Revenue  float64 `json:"revenue" db:"revenue"`
	Bookings int     `json:"bookings" db:"bookings"`
}

// Pagination is the list-response page envelope.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination computes the page count for a list response.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
