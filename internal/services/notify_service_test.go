package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotravel/gotravel-backend/internal/config"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

type recordedMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []recordedMail
	failFor map[string]error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if err := m.failFor[to]; err != nil {
		return err
	}
	m.sent = append(m.sent, recordedMail{to: to, subject: subject, body: body})
	return nil
}

func mailConfig() *config.MailConfig {
	return &config.MailConfig{
		AdminEmail:  "ops@gotravel.in",
		AdminURL:    "https://admin.gotravel.in",
		FrontendURL: "https://gotravel.in",
	}
}

func TestNotifyBookingConfirmed(t *testing.T) {
	mailer := &fakeMailer{}
	svc := services.NewNotifyService(mailer, mailConfig(), testLogger())

	booking := &models.Booking{
		ID:             "bk-1",
		BookingRef:     "GTABC1234",
		TotalCost:      21000,
		TotalTravelers: 2,
		TravelDate:     time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
		ContactDetails: models.ContactDetails{Name: "Asha", Email: "asha@example.com", Phone: "x"},
	}
	user := &models.User{ID: "user-1", Name: "Asha"}

	require.NoError(t, svc.NotifyBookingConfirmed(booking, user))

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "asha@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "GTABC1234")
	assert.Contains(t, mailer.sent[0].body, "21000.00")
	assert.Equal(t, "ops@gotravel.in", mailer.sent[1].to)
}

func TestNotifyBookingConfirmedAdminCopyFailureTolerated(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]error{"ops@gotravel.in": errors.New("mailbox full")}}
	svc := services.NewNotifyService(mailer, mailConfig(), testLogger())

	booking := &models.Booking{
		BookingRef:     "GTABC1234",
		TravelDate:     time.Now(),
		ContactDetails: models.ContactDetails{Name: "Asha", Email: "asha@example.com", Phone: "x"},
	}

	// the customer mail went out, so the notification counts as delivered
	require.NoError(t, svc.NotifyBookingConfirmed(booking, &models.User{Name: "Asha"}))
	require.Len(t, mailer.sent, 1)
}

func TestNotifyLeadCreated(t *testing.T) {
	mailer := &fakeMailer{}
	svc := services.NewNotifyService(mailer, mailConfig(), testLogger())

	dates := "Oct 2026"
	lead := &models.Lead{
		ID:             "lead-1",
		DestinationID:  "dest-1",
		GroupSize:      4,
		PreferredDates: &dates,
		ContactDetails: models.ContactDetails{Name: "Ravi", Email: "r@example.com", Phone: "+9198"},
	}

	require.NoError(t, svc.NotifyLeadCreated(lead, &models.Destination{ID: "dest-1", Name: "Kerala"}))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ops@gotravel.in", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Kerala")
	assert.Contains(t, mailer.sent[0].body, "Ravi")
	assert.Contains(t, mailer.sent[0].body, "Oct 2026")
}

func TestNotifyLeadCreatedFailure(t *testing.T) {
	mailer := &fakeMailer{failFor: map[string]error{"ops@gotravel.in": errors.New("provider down")}}
	svc := services.NewNotifyService(mailer, mailConfig(), testLogger())

	lead := &models.Lead{ID: "lead-1", ContactDetails: models.ContactDetails{Name: "Ravi"}}
	err := svc.NotifyLeadCreated(lead, &models.Destination{Name: "Kerala"})
	assert.Error(t, err)
}
