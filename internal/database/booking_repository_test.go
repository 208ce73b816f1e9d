package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	return &PostgresDB{DB: sqlx.NewDb(mockDb, "sqlmock")}, mock
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	orderID := "order_1"
	booking := &models.Booking{
		BookingRef:     "GTABC1234",
		UserID:         "user-1",
		PackageID:      "pkg-1",
		DestinationID:  "dest-1",
		Travelers:      models.TravelerList{{Name: "Asha", Age: 30}},
		TotalTravelers: 1,
		TotalCost:      21000,
		PaymentStatus:  models.PaymentStatusPending,
		GatewayOrderID: &orderID,
		Status:         models.BookingStatusEnquiry,
		TravelDate:     now.AddDate(0, 1, 0),
		ContactDetails: models.ContactDetails{Name: "Asha", Email: "a@example.com", Phone: "x"},
	}

	require.NoError(t, repo.Create(booking))
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, now, booking.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingMarkPaidApplied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("bk-1", "pay_1", "sig_1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.MarkPaid("bk-1", "pay_1", "sig_1")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingMarkPaidAlreadyPaid(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	// guard clause matches no rows when the booking is already paid
	mock.ExpectExec("UPDATE bookings").
		WithArgs("bk-1", "pay_2", "sig_2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.MarkPaid("bk-1", "pay_2", "sig_2")
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestBookingGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID("missing")
	assert.True(t, errs.IsNotFound(err))
}

func TestBookingUpdateStatusNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("UPDATE bookings").
		WithArgs("missing", models.BookingStatusCancelled, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus("missing", models.BookingStatusCancelled, nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestBookingList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.PaymentStatusPaid).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "booking_ref", "user_id", "package_id", "destination_id",
		"travelers", "fit_addons", "total_travelers", "total_days",
		"base_package_cost", "addons_cost", "taxes", "total_cost",
		"payment_status", "gateway_order_id", "payment_id", "payment_signature", "paid_at",
		"status", "travel_date", "return_date", "contact_details",
		"special_requests", "internal_notes", "created_at", "updated_at",
	}).AddRow(
		"bk-1", "GTABC1234", "user-1", "pkg-1", "dest-1",
		[]byte(`[{"name":"Asha","age":30}]`), []byte(`[]`), 1, 5,
		10000.0, 0.0, 500.0, 10500.0,
		"paid", "order_1", "pay_1", "sig_1", now,
		"confirmed", now, nil, []byte(`{"name":"Asha","email":"a@example.com","phone":"x"}`),
		nil, nil, now, now,
	)

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(models.PaymentStatusPaid, 20, 0).
		WillReturnRows(rows)

	bookings, total, err := repo.List(models.BookingFilter{PaymentStatus: models.PaymentStatusPaid})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "GTABC1234", bookings[0].BookingRef)
	assert.Equal(t, models.PaymentStatusPaid, bookings[0].PaymentStatus)
	require.Len(t, bookings[0].Travelers, 1)
	assert.Equal(t, "Asha", bookings[0].Travelers[0].Name)
}
