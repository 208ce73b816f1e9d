package services

import (
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/models"
)

// ReportStore is the aggregate query surface for the admin dashboard.
type ReportStore interface {
	GetDashboardStats() (*models.DashboardStats, error)
	GetRevenueSeries(days int) ([]models.RevenuePoint, error)
}

// AdminUserStore is the user management surface for the admin panel.
type AdminUserStore interface {
	GetByID(userID string) (*models.User, error)
	List(filter models.UserFilter) ([]models.User, int, error)
	SetBlocked(userID string, blocked bool) (*models.User, error)
}

// ReportService serves the admin dashboard and user management views
type ReportService struct {
	reports ReportStore
	users   AdminUserStore
	logger  *logrus.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reports ReportStore, users AdminUserStore, logger *logrus.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		users:   users,
		logger:  logger,
	}
}

// GetDashboard retrieves the overview rollup
func (s *ReportService) GetDashboard() (*models.DashboardStats, error) {
	return s.reports.GetDashboardStats()
}

// GetRevenueSeries retrieves the day-bucketed paid revenue series for the
// trailing window. days defaults to 30 when not positive.
func (s *ReportService) GetRevenueSeries(days int) ([]models.RevenuePoint, error) {
	return s.reports.GetRevenueSeries(days)
}

// ListUsers retrieves users for the admin panel with pagination
func (s *ReportService) ListUsers(filter models.UserFilter) ([]models.User, int, error) {
	return s.users.List(filter)
}

// GetUser retrieves a single user for the admin panel
func (s *ReportService) GetUser(userID string) (*models.User, error) {
	return s.users.GetByID(userID)
}

// SetUserBlocked flips a user's blocked flag
func (s *ReportService) SetUserBlocked(userID string, blocked bool) (*models.User, error) {
	user, err := s.users.SetBlocked(userID, blocked)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"blocked": blocked,
	}).Info("User blocked flag updated")

	return user, nil
}
