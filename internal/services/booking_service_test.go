package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
	"github.com/gotravel/gotravel-backend/internal/services"
)

type fakeBookingStore struct {
	booking     *models.Booking
	created     []*models.Booking
	markPaidOK  bool
	markPaidErr error
	calls       []string
}

func (f *fakeBookingStore) Create(b *models.Booking) error {
	f.calls = append(f.calls, "persist")
	b.ID = "bk-1"
	f.created = append(f.created, b)
	f.booking = b
	return nil
}

func (f *fakeBookingStore) GetByID(id string) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, errs.NotFound("booking")
	}
	return f.booking, nil
}

func (f *fakeBookingStore) GetByReference(ref string) (*models.Booking, error) {
	if f.booking == nil || f.booking.BookingRef != ref {
		return nil, errs.NotFound("booking")
	}
	return f.booking, nil
}

func (f *fakeBookingStore) GetByUserID(userID string) ([]models.Booking, error) {
	if f.booking != nil && f.booking.UserID == userID {
		return []models.Booking{*f.booking}, nil
	}
	return []models.Booking{}, nil
}

func (f *fakeBookingStore) List(filter models.BookingFilter) ([]models.Booking, int, error) {
	return []models.Booking{}, 0, nil
}

func (f *fakeBookingStore) MarkPaid(id, paymentID, signature string) (bool, error) {
	f.calls = append(f.calls, "mark_paid")
	if f.markPaidErr != nil {
		return false, f.markPaidErr
	}
	if f.markPaidOK {
		now := time.Now()
		f.booking.PaymentStatus = models.PaymentStatusPaid
		f.booking.Status = models.BookingStatusConfirmed
		f.booking.PaymentID = &paymentID
		f.booking.PaymentSignature = &signature
		f.booking.PaidAt = &now
	}
	return f.markPaidOK, nil
}

func (f *fakeBookingStore) UpdateStatus(id string, status models.BookingStatus, notes *string) error {
	if f.booking == nil || f.booking.ID != id {
		return errs.NotFound("booking")
	}
	f.booking.Status = status
	return nil
}

type fakePackageStore struct {
	pkg *models.TravelPackage
}

func (f *fakePackageStore) GetByID(id string) (*models.TravelPackage, error) {
	if f.pkg == nil || f.pkg.ID != id {
		return nil, errs.NotFound("package")
	}
	return f.pkg, nil
}

type fakeUserStore struct {
	user       *models.User
	increments int
	lastAmount float64
	incrErr    error
}

func (f *fakeUserStore) GetByID(id string) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, errs.NotFound("user")
	}
	return f.user, nil
}

func (f *fakeUserStore) IncrementBookingStats(userID string, amount float64) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	f.increments++
	f.lastAmount = amount
	return nil
}

type stubGateway struct {
	store        *fakeBookingStore
	orderAmounts []float64
	createErr    error
	verifyResult bool
}

func (g *stubGateway) CreateOrder(amount float64, currency, receipt string, notes map[string]string) (*services.GatewayOrder, error) {
	if g.store != nil {
		g.store.calls = append(g.store.calls, "gateway")
	}
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orderAmounts = append(g.orderAmounts, amount)
	return &services.GatewayOrder{
		ID:       "order_test_1",
		Amount:   services.ToMinorUnits(amount),
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.verifyResult
}

func (g *stubGateway) FetchPayment(paymentID string) (*services.GatewayPayment, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) Refund(paymentID string, amount float64) (*services.GatewayRefund, error) {
	return nil, errors.New("not implemented")
}

type fakeNotifier struct {
	bookingConfirmed chan string
	leadCreated      chan string
	err              error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		bookingConfirmed: make(chan string, 4),
		leadCreated:      make(chan string, 4),
	}
}

func (n *fakeNotifier) NotifyBookingConfirmed(b *models.Booking, u *models.User) error {
	if n.err != nil {
		return n.err
	}
	n.bookingConfirmed <- b.ID
	return nil
}

func (n *fakeNotifier) NotifyLeadCreated(l *models.Lead, d *models.Destination) error {
	if n.err != nil {
		return n.err
	}
	n.leadCreated <- l.ID
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func activePackage(basePrice float64, duration int) *models.TravelPackage {
	return &models.TravelPackage{
		ID:            "pkg-1",
		DestinationID: "dest-1",
		Title:         "Goa Getaway",
		BasePrice:     basePrice,
		Duration:      duration,
		Status:        models.PackageStatusActive,
	}
}

func bookingRequest(travelers int, addons []models.AddOnSelectionReq) *models.CreateBookingRequest {
	req := &models.CreateBookingRequest{
		PackageID:  "pkg-1",
		TravelDate: time.Now().AddDate(0, 1, 0),
		ContactDetails: models.ContactDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "+919800000000",
		},
		FITAddOns: addons,
	}
	for i := 0; i < travelers; i++ {
		req.Travelers = append(req.Travelers, models.Traveler{Name: "Traveler", Age: 30})
	}
	return req
}

func newBookingService(store *fakeBookingStore, pkgs *fakePackageStore, users *fakeUserStore, gw *stubGateway, n *fakeNotifier) *services.BookingService {
	return services.NewBookingService(store, pkgs, users, gw, n, "rzp_test_key", testLogger())
}

func TestCreateBookingPricing(t *testing.T) {
	store := &fakeBookingStore{}
	gw := &stubGateway{store: store}
	svc := newBookingService(store, &fakePackageStore{pkg: activePackage(10000, 5)},
		&fakeUserStore{}, gw, newFakeNotifier())

	result, err := svc.CreateBooking("user-1", bookingRequest(2, nil))
	require.NoError(t, err)

	b := result.Booking
	assert.Equal(t, 20000.0, b.BasePackageCost)
	assert.Equal(t, 0.0, b.AddOnsCost)
	assert.Equal(t, 1000.0, b.Taxes)
	assert.Equal(t, 21000.0, b.TotalCost)
	assert.Equal(t, 2, b.TotalTravelers)
	assert.Equal(t, 5, b.TotalDays)
	assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	assert.Equal(t, models.BookingStatusEnquiry, b.Status)

	require.Len(t, gw.orderAmounts, 1)
	assert.Equal(t, 21000.0, gw.orderAmounts[0])
	assert.Equal(t, int64(2100000), result.Amount)
	assert.Equal(t, "order_test_1", result.OrderID)
	require.NotNil(t, b.GatewayOrderID)
	assert.Equal(t, "order_test_1", *b.GatewayOrderID)
}

func TestCreateBookingWithAddOns(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingService(store, &fakePackageStore{pkg: activePackage(9999, 4)},
		&fakeUserStore{}, &stubGateway{store: store}, newFakeNotifier())

	addons := []models.AddOnSelectionReq{
		{AddOnID: "add-1", Name: "Scuba Dive", PricePerPerson: 750, Quantity: 2},
	}

	result, err := svc.CreateBooking("user-1", bookingRequest(1, addons))
	require.NoError(t, err)

	b := result.Booking
	assert.Equal(t, 9999.0, b.BasePackageCost)
	assert.Equal(t, 1500.0, b.AddOnsCost)
	assert.Equal(t, 575.0, b.Taxes)
	assert.Equal(t, 12074.0, b.TotalCost)
	require.Len(t, b.FITAddOns, 1)
	assert.Equal(t, 1500.0, b.FITAddOns[0].Subtotal)
	// 1500 of add-ons stretches the itinerary by one day
	assert.Equal(t, 5, b.TotalDays)
}

func TestCreateBookingUsesDiscountedPrice(t *testing.T) {
	pkg := activePackage(10000, 5)
	discounted := 8000.0
	pkg.DiscountedPrice = &discounted

	store := &fakeBookingStore{}
	svc := newBookingService(store, &fakePackageStore{pkg: pkg},
		&fakeUserStore{}, &stubGateway{store: store}, newFakeNotifier())

	result, err := svc.CreateBooking("user-1", bookingRequest(2, nil))
	require.NoError(t, err)
	assert.Equal(t, 16000.0, result.Booking.BasePackageCost)
	assert.Equal(t, 16800.0, result.Booking.TotalCost)
}

func TestCreateBookingGatewayOrderBeforePersist(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingService(store, &fakePackageStore{pkg: activePackage(10000, 5)},
		&fakeUserStore{}, &stubGateway{store: store}, newFakeNotifier())

	_, err := svc.CreateBooking("user-1", bookingRequest(1, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"gateway", "persist"}, store.calls)
}

func TestCreateBookingGatewayFailureAbortsPersist(t *testing.T) {
	store := &fakeBookingStore{}
	gw := &stubGateway{
		store:     store,
		createErr: &errs.GatewayError{Op: "create_order", StatusCode: 503, Err: errors.New("unavailable")},
	}
	svc := newBookingService(store, &fakePackageStore{pkg: activePackage(10000, 5)},
		&fakeUserStore{}, gw, newFakeNotifier())

	_, err := svc.CreateBooking("user-1", bookingRequest(1, nil))
	require.Error(t, err)

	var gwErr *errs.GatewayError
	assert.ErrorAs(t, err, &gwErr)
	assert.Empty(t, store.created)
}

func TestCreateBookingInactivePackage(t *testing.T) {
	pkg := activePackage(10000, 5)
	pkg.Status = models.PackageStatusInactive

	store := &fakeBookingStore{}
	svc := newBookingService(store, &fakePackageStore{pkg: pkg},
		&fakeUserStore{}, &stubGateway{store: store}, newFakeNotifier())

	_, err := svc.CreateBooking("user-1", bookingRequest(1, nil))
	assert.True(t, errs.IsValidation(err))
	assert.Empty(t, store.created)
}

func TestCreateBookingValidation(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingService(store, &fakePackageStore{pkg: activePackage(10000, 5)},
		&fakeUserStore{}, &stubGateway{store: store}, newFakeNotifier())

	req := bookingRequest(0, nil)
	_, err := svc.CreateBooking("user-1", req)
	assert.True(t, errs.IsValidation(err))
}

func pendingBooking() *models.Booking {
	orderID := "order_test_1"
	return &models.Booking{
		ID:             "bk-1",
		BookingRef:     "GTTEST1234",
		UserID:         "user-1",
		PackageID:      "pkg-1",
		DestinationID:  "dest-1",
		TotalCost:      21000,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.BookingStatusEnquiry,
		GatewayOrderID: &orderID,
		ContactDetails: models.ContactDetails{Name: "Asha", Email: "asha@example.com", Phone: "x"},
	}
}

func verifyRequest() *models.VerifyPaymentRequest {
	return &models.VerifyPaymentRequest{
		GatewayOrderID:   "order_test_1",
		GatewayPaymentID: "pay_test_1",
		Signature:        "sig",
	}
}

func TestConfirmPayment(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: true}
	users := &fakeUserStore{user: &models.User{ID: "user-1", Name: "Asha"}}
	notifier := newFakeNotifier()
	svc := newBookingService(store, &fakePackageStore{}, users, &stubGateway{verifyResult: true}, notifier)

	booking, err := svc.ConfirmPayment("bk-1", "user-1", false, verifyRequest())
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.NotNil(t, booking.PaymentID)
	assert.Equal(t, "pay_test_1", *booking.PaymentID)
	assert.NotNil(t, booking.PaidAt)

	assert.Equal(t, 1, users.increments)
	assert.Equal(t, 21000.0, users.lastAmount)

	select {
	case id := <-notifier.bookingConfirmed:
		assert.Equal(t, "bk-1", id)
	case <-time.After(2 * time.Second):
		t.Fatal("expected confirmation notification")
	}
}

func TestConfirmPaymentIdempotent(t *testing.T) {
	booking := pendingBooking()
	paymentID := "pay_prior"
	booking.PaymentStatus = models.PaymentStatusPaid
	booking.Status = models.BookingStatusConfirmed
	booking.PaymentID = &paymentID

	store := &fakeBookingStore{booking: booking, markPaidOK: true}
	users := &fakeUserStore{user: &models.User{ID: "user-1"}}
	svc := newBookingService(store, &fakePackageStore{}, users, &stubGateway{verifyResult: true}, newFakeNotifier())

	got, err := svc.ConfirmPayment("bk-1", "user-1", false, verifyRequest())
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, "pay_prior", *got.PaymentID)
	assert.NotContains(t, store.calls, "mark_paid")
	assert.Equal(t, 0, users.increments)
}

func TestConfirmPaymentTamperedSignature(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: true}
	users := &fakeUserStore{user: &models.User{ID: "user-1"}}
	svc := newBookingService(store, &fakePackageStore{}, users, &stubGateway{verifyResult: false}, newFakeNotifier())

	_, err := svc.ConfirmPayment("bk-1", "user-1", false, verifyRequest())
	require.ErrorIs(t, err, errs.ErrPaymentVerification)

	assert.Equal(t, models.PaymentStatusPending, store.booking.PaymentStatus)
	assert.Equal(t, models.BookingStatusEnquiry, store.booking.Status)
	assert.NotContains(t, store.calls, "mark_paid")
	assert.Equal(t, 0, users.increments)
}

func TestConfirmPaymentLostRaceSkipsCounters(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: false}
	users := &fakeUserStore{user: &models.User{ID: "user-1"}}
	notifier := newFakeNotifier()
	svc := newBookingService(store, &fakePackageStore{}, users, &stubGateway{verifyResult: true}, notifier)

	_, err := svc.ConfirmPayment("bk-1", "user-1", false, verifyRequest())
	require.NoError(t, err)

	assert.Equal(t, 0, users.increments)
	select {
	case <-notifier.bookingConfirmed:
		t.Fatal("no notification expected when another confirmation already won")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestConfirmPaymentWrongOrder(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: true}
	svc := newBookingService(store, &fakePackageStore{}, &fakeUserStore{}, &stubGateway{verifyResult: true}, newFakeNotifier())

	req := verifyRequest()
	req.GatewayOrderID = "order_someone_else"
	_, err := svc.ConfirmPayment("bk-1", "user-1", false, req)
	assert.True(t, errs.IsValidation(err))
}

func TestConfirmPaymentForbiddenForOtherUser(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: true}
	svc := newBookingService(store, &fakePackageStore{}, &fakeUserStore{}, &stubGateway{verifyResult: true}, newFakeNotifier())

	_, err := svc.ConfirmPayment("bk-1", "user-2", false, verifyRequest())
	assert.ErrorIs(t, err, errs.ErrForbidden)
}

func TestConfirmPaymentCounterFailureDoesNotFailConfirmation(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking(), markPaidOK: true}
	users := &fakeUserStore{user: &models.User{ID: "user-1"}, incrErr: errors.New("db down")}
	svc := newBookingService(store, &fakePackageStore{}, users, &stubGateway{verifyResult: true}, newFakeNotifier())

	booking, err := svc.ConfirmPayment("bk-1", "user-1", false, verifyRequest())
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, booking.PaymentStatus)
}

func TestGetBookingOwnership(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking()}
	svc := newBookingService(store, &fakePackageStore{}, &fakeUserStore{}, &stubGateway{}, newFakeNotifier())

	_, err := svc.GetBooking("bk-1", "user-2", false)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	booking, err := svc.GetBooking("bk-1", "user-2", true)
	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)

	booking, err = svc.GetBooking("bk-1", "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	store := &fakeBookingStore{booking: pendingBooking()}
	svc := newBookingService(store, &fakePackageStore{}, &fakeUserStore{}, &stubGateway{}, newFakeNotifier())

	_, err := svc.UpdateStatus("bk-1", &models.UpdateBookingStatusRequest{Status: "teleported"})
	assert.True(t, errs.IsValidation(err))
}
