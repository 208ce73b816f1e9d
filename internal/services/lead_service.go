package services

import (
	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/models"
)

// LeadStore is the persistence surface the lead flow needs.
type LeadStore interface {
	Create(lead *models.Lead) error
	GetByID(leadID string) (*models.Lead, error)
	MarkNotified(leadID string) error
	ListUnnotified(limit int) ([]models.Lead, error)
	UpdateStatus(leadID string, req *models.UpdateLeadStatusRequest) (*models.Lead, error)
	List(filter models.LeadFilter) ([]models.Lead, int, error)
}

// DestinationStore provides destination lookups.
type DestinationStore interface {
	GetByID(id string) (*models.Destination, error)
}

// LeadService handles inquiry intake and the admin lead pipeline
type LeadService struct {
	leads        LeadStore
	destinations DestinationStore
	notifier     Notifier
	logger       *logrus.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(leads LeadStore, destinations DestinationStore, notifier Notifier, logger *logrus.Logger) *LeadService {
	return &LeadService{
		leads:        leads,
		destinations: destinations,
		notifier:     notifier,
		logger:       logger,
	}
}

// CreateLead validates and persists an inquiry, then alerts the admin in the
// background. The lead is saved regardless of whether the alert goes out;
// notified_admin records delivery so the retry job can pick up the rest.
func (s *LeadService) CreateLead(userID *string, req *models.CreateLeadRequest) (*models.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	destination, err := s.destinations.GetByID(req.DestinationID)
	if err != nil {
		return nil, err
	}

	lead := &models.Lead{
		UserID:         userID,
		DestinationID:  destination.ID,
		PackageID:      req.PackageID,
		ContactDetails: req.ContactDetails,
		PreferredDates: req.PreferredDates,
		GroupSize:      req.GroupSize,
		Budget:         req.Budget,
		Message:        req.Message,
		Source:         req.Source,
		UTMSource:      req.UTMSource,
		UTMMedium:      req.UTMMedium,
		UTMCampaign:    req.UTMCampaign,
	}

	if err := s.leads.Create(lead); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"lead_id":     lead.ID,
		"destination": destination.Name,
		"group_size":  lead.GroupSize,
	}).Info("Lead created")

	go s.sendAdminAlert(lead, destination)

	return lead, nil
}

// sendAdminAlert delivers the admin alert and records delivery. Failures are
// logged only; the retry job re-sends undelivered alerts.
func (s *LeadService) sendAdminAlert(lead *models.Lead, destination *models.Destination) {
	if err := s.notifier.NotifyLeadCreated(lead, destination); err != nil {
		s.logger.WithError(err).WithField("lead_id", lead.ID).Error("Failed to send lead alert")
		return
	}
	if err := s.leads.MarkNotified(lead.ID); err != nil {
		s.logger.WithError(err).WithField("lead_id", lead.ID).Error("Failed to mark lead as notified")
	}
}

// RetryPendingAlerts re-sends admin alerts for recent leads whose first
// delivery attempt failed. Runs on a schedule.
func (s *LeadService) RetryPendingAlerts() {
	leads, err := s.leads.ListUnnotified(50)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load leads pending notification")
		return
	}
	if len(leads) == 0 {
		return
	}

	s.logger.WithField("count", len(leads)).Info("Retrying lead alerts")

	for i := range leads {
		lead := &leads[i]
		destination, err := s.destinations.GetByID(lead.DestinationID)
		if err != nil {
			s.logger.WithError(err).WithField("lead_id", lead.ID).Error("Failed to load destination for lead alert retry")
			continue
		}
		s.sendAdminAlert(lead, destination)
	}
}

// GetLead retrieves a lead for the admin view
func (s *LeadService) GetLead(leadID string) (*models.Lead, error) {
	return s.leads.GetByID(leadID)
}

// ListLeads retrieves leads for the admin view with pagination
func (s *LeadService) ListLeads(filter models.LeadFilter) ([]models.Lead, int, error) {
	return s.leads.List(filter)
}

// UpdateStatus applies an admin pipeline status change
func (s *LeadService) UpdateStatus(leadID string, req *models.UpdateLeadStatusRequest) (*models.Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lead, err := s.leads.UpdateStatus(leadID, req)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"lead_id": leadID,
		"status":  req.Status,
	}).Info("Lead status updated")

	return lead, nil
}
