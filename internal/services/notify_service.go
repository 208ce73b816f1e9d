package services

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/config"
	"github.com/gotravel/gotravel-backend/internal/models"
)

// Mailer is the outbound email surface
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// NotifyService renders and dispatches the transactional emails. It holds no
// state beyond configuration; every send is independent.
type NotifyService struct {
	mailer      Mailer
	adminEmail  string
	adminURL    string
	frontendURL string
	logger      *logrus.Logger
}

// NewNotifyService creates a new NotifyService
func NewNotifyService(mailer Mailer, cfg *config.MailConfig, logger *logrus.Logger) *NotifyService {
	return &NotifyService{
		mailer:      mailer,
		adminEmail:  cfg.AdminEmail,
		adminURL:    cfg.AdminURL,
		frontendURL: cfg.FrontendURL,
		logger:      logger,
	}
}

// NotifyBookingConfirmed emails the customer their confirmation and copies
// the admin inbox.
func (s *NotifyService) NotifyBookingConfirmed(booking *models.Booking, user *models.User) error {
	subject := fmt.Sprintf("Booking Confirmed - %s", booking.BookingRef)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Your booking %s is confirmed!</h2>", booking.BookingRef))
	b.WriteString(fmt.Sprintf("<p>Hi %s,</p>", user.Name))
	b.WriteString(fmt.Sprintf("<p>Payment of INR %.2f received for %d traveler(s), departing %s.</p>",
		booking.TotalCost, booking.TotalTravelers, booking.TravelDate.Format("02 Jan 2006")))
	if len(booking.FITAddOns) > 0 {
		b.WriteString("<p>Add-ons:</p><ul>")
		for _, a := range booking.FITAddOns {
			b.WriteString(fmt.Sprintf("<li>%s x%d - INR %.2f</li>", a.Name, a.Quantity, a.Subtotal))
		}
		b.WriteString("</ul>")
	}
	b.WriteString(fmt.Sprintf("<p>View your booking: %s/bookings/%s</p>", s.frontendURL, booking.ID))

	if err := s.mailer.Send(booking.ContactDetails.Email, subject, b.String()); err != nil {
		return fmt.Errorf("customer confirmation for %s: %w", booking.BookingRef, err)
	}

	adminBody := fmt.Sprintf(
		"<p>Booking %s paid: INR %.2f, %d traveler(s).</p><p>%s/bookings/%s</p>",
		booking.BookingRef, booking.TotalCost, booking.TotalTravelers, s.adminURL, booking.ID,
	)
	if err := s.mailer.Send(s.adminEmail, "Payment received - "+booking.BookingRef, adminBody); err != nil {
		s.logger.WithError(err).WithField("booking_ref", booking.BookingRef).Warn("Admin copy of booking confirmation failed")
	}

	return nil
}

// NotifyLeadCreated alerts the admin inbox about a new enquiry.
func (s *NotifyService) NotifyLeadCreated(lead *models.Lead, destination *models.Destination) error {
	subject := fmt.Sprintf("New Lead - %s", destination.Name)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>New enquiry for %s</h2>", destination.Name))
	b.WriteString(fmt.Sprintf("<p>From: %s (%s, %s)</p>",
		lead.ContactDetails.Name, lead.ContactDetails.Email, lead.ContactDetails.Phone))
	b.WriteString(fmt.Sprintf("<p>Group size: %d</p>", lead.GroupSize))
	if lead.PreferredDates != nil {
		b.WriteString(fmt.Sprintf("<p>Preferred dates: %s</p>", *lead.PreferredDates))
	}
	if lead.Budget != nil {
		b.WriteString(fmt.Sprintf("<p>Budget: %s</p>", *lead.Budget))
	}
	if lead.Message != nil {
		b.WriteString(fmt.Sprintf("<p>Message: %s</p>", *lead.Message))
	}
	b.WriteString(fmt.Sprintf("<p>Manage: %s/leads/%s</p>", s.adminURL, lead.ID))

	if err := s.mailer.Send(s.adminEmail, subject, b.String()); err != nil {
		return fmt.Errorf("admin alert for lead %s: %w", lead.ID, err)
	}

	return nil
}
