package services

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/errs"
	"github.com/gotravel/gotravel-backend/internal/models"
)

// BookingStore is the persistence surface the booking flow needs.
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(bookingID string) (*models.Booking, error)
	GetByReference(reference string) (*models.Booking, error)
	GetByUserID(userID string) ([]models.Booking, error)
	List(filter models.BookingFilter) ([]models.Booking, int, error)
	MarkPaid(bookingID, paymentID, signature string) (bool, error)
	UpdateStatus(bookingID string, status models.BookingStatus, internalNotes *string) error
}

// PackageStore provides package lookups for pricing.
type PackageStore interface {
	GetByID(id string) (*models.TravelPackage, error)
}

// UserStore provides the user lookups and counter updates the booking flow needs.
type UserStore interface {
	GetByID(userID string) (*models.User, error)
	IncrementBookingStats(userID string, amount float64) error
}

// Notifier dispatches customer and admin notifications. Delivery is best
// effort; callers never fail a request on a notification error.
type Notifier interface {
	NotifyBookingConfirmed(booking *models.Booking, user *models.User) error
	NotifyLeadCreated(lead *models.Lead, destination *models.Destination) error
}

// CreateBookingResult pairs the persisted booking with the gateway order the
// client needs to open the checkout.
type CreateBookingResult struct {
	Booking      *models.Booking `json:"booking"`
	OrderID      string          `json:"order_id"`
	Amount       int64           `json:"amount"`
	Currency     string          `json:"currency"`
	GatewayKeyID string          `json:"key_id"`
}

// BookingService orchestrates booking creation and payment confirmation
type BookingService struct {
	bookings     BookingStore
	packages     PackageStore
	users        UserStore
	gateway      PaymentGateway
	notifier     Notifier
	gatewayKeyID string
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookings BookingStore,
	packages PackageStore,
	users UserStore,
	gateway PaymentGateway,
	notifier Notifier,
	gatewayKeyID string,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		packages:     packages,
		users:        users,
		gateway:      gateway,
		notifier:     notifier,
		gatewayKeyID: gatewayKeyID,
		logger:       logger,
	}
}

const taxRate = 0.05

const refCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateBookingRef builds a reference like GT1A2B3C4DXK9F: a GT prefix,
// the creation time in base36 and a 4 character random suffix.
func generateBookingRef() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refCharset))))
		if err != nil {
			suffix[i] = refCharset[time.Now().UnixNano()%int64(len(refCharset))]
			continue
		}
		suffix[i] = refCharset[n.Int64()]
	}

	return "GT" + ts + string(suffix)
}

// CreateBooking prices the request, reserves a gateway order and persists the
// booking as a pending enquiry. The gateway order is created before anything
// is written: if the gateway is down, no booking row exists and the client
// simply retries.
func (s *BookingService) CreateBooking(userID string, req *models.CreateBookingRequest) (*CreateBookingResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.GetByID(req.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg.Status != models.PackageStatusActive {
		return nil, errs.Validation("package is not open for booking")
	}

	destinationID := req.DestinationID
	if destinationID == "" {
		destinationID = pkg.DestinationID
	}

	totalTravelers := len(req.Travelers)
	basePackageCost := pkg.UnitPrice() * float64(totalTravelers)

	addOns := make(models.AddOnSelectionList, 0, len(req.FITAddOns))
	addOnsCost := 0.0
	for _, a := range req.FITAddOns {
		subtotal := a.PricePerPerson * float64(a.Quantity)
		addOnsCost += subtotal
		addOns = append(addOns, models.AddOnSelection{
			AddOnID:        a.AddOnID,
			Name:           a.Name,
			PricePerPerson: a.PricePerPerson,
			Quantity:       a.Quantity,
			Subtotal:       subtotal,
		})
	}

	taxes := math.Round((basePackageCost + addOnsCost) * taxRate)
	totalCost := basePackageCost + addOnsCost + taxes

	extraDays := int(math.Ceil(addOnsCost / 1000 * 0.5))
	totalDays := pkg.Duration + extraDays

	bookingRef := generateBookingRef()
	receipt := fmt.Sprintf("GT-%d", time.Now().Unix())

	order, err := s.gateway.CreateOrder(totalCost, "INR", receipt, map[string]string{
		"booking_ref": bookingRef,
		"package_id":  pkg.ID,
	})
	if err != nil {
		s.logger.WithError(err).WithField("booking_ref", bookingRef).Error("Gateway order creation failed, booking aborted")
		return nil, err
	}

	booking := &models.Booking{
		BookingRef:      bookingRef,
		UserID:          userID,
		PackageID:       pkg.ID,
		DestinationID:   destinationID,
		Travelers:       models.TravelerList(req.Travelers),
		FITAddOns:       addOns,
		TotalTravelers:  totalTravelers,
		TotalDays:       totalDays,
		BasePackageCost: basePackageCost,
		AddOnsCost:      addOnsCost,
		Taxes:           taxes,
		TotalCost:       totalCost,
		PaymentStatus:   models.PaymentStatusPending,
		GatewayOrderID:  &order.ID,
		Status:          models.BookingStatusEnquiry,
		TravelDate:      req.TravelDate,
		ContactDetails:  req.ContactDetails,
		SpecialRequests: req.SpecialRequests,
	}

	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"booking_ref": booking.BookingRef,
		"user_id":     userID,
		"total_cost":  totalCost,
		"order_id":    order.ID,
	}).Info("Booking created")

	return &CreateBookingResult{
		Booking:      booking,
		OrderID:      order.ID,
		Amount:       order.Amount,
		Currency:     order.Currency,
		GatewayKeyID: s.gatewayKeyID,
	}, nil
}

// ConfirmPayment verifies the client-reported payment and flips the booking
// to paid and confirmed in one step. Re-confirming an already paid booking is
// a no-op that returns the current state. A bad signature leaves the booking
// untouched.
func (s *BookingService) ConfirmPayment(bookingID, userID string, isAdmin bool, req *models.VerifyPaymentRequest) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, errs.ErrForbidden
	}

	if booking.GatewayOrderID == nil || *booking.GatewayOrderID != req.GatewayOrderID {
		return nil, errs.Validation("order does not belong to this booking")
	}

	if booking.IsPaid() {
		return booking, nil
	}

	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		s.logger.WithFields(logrus.Fields{
			"booking_id": bookingID,
			"order_id":   req.GatewayOrderID,
			"payment_id": req.GatewayPaymentID,
		}).Warn("Payment signature mismatch")
		return nil, errs.ErrPaymentVerification
	}

	applied, err := s.bookings.MarkPaid(bookingID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		return nil, err
	}

	if applied {
		if err := s.users.IncrementBookingStats(booking.UserID, booking.TotalCost); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id": bookingID,
				"user_id":    booking.UserID,
			}).Error("Failed to update user booking stats")
		}

		s.logger.WithFields(logrus.Fields{
			"booking_id":  bookingID,
			"booking_ref": booking.BookingRef,
			"payment_id":  req.GatewayPaymentID,
			"amount":      booking.TotalCost,
		}).Info("Payment confirmed")

		s.sendConfirmation(bookingID)
	}

	return s.bookings.GetByID(bookingID)
}

// sendConfirmation dispatches the booking confirmation in the background.
// Failures are logged and never surfaced to the payment flow.
func (s *BookingService) sendConfirmation(bookingID string) {
	go func() {
		booking, err := s.bookings.GetByID(bookingID)
		if err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to load booking for confirmation notification")
			return
		}
		user, err := s.users.GetByID(booking.UserID)
		if err != nil {
			s.logger.WithError(err).WithField("booking_id", bookingID).Error("Failed to load user for confirmation notification")
			return
		}
		if err := s.notifier.NotifyBookingConfirmed(booking, user); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"booking_id":  bookingID,
				"booking_ref": booking.BookingRef,
			}).Error("Failed to send booking confirmation")
		}
	}()
}

// GetPaymentOrder returns the gateway order details a client needs to reopen
// checkout for a pending booking.
func (s *BookingService) GetPaymentOrder(bookingID, userID string, isAdmin bool) (*CreateBookingResult, error) {
	booking, err := s.GetBooking(bookingID, userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.IsPaid() {
		return nil, errs.Validation("booking is already paid")
	}
	if booking.GatewayOrderID == nil {
		return nil, errs.Validation("booking has no payment order")
	}

	return &CreateBookingResult{
		Booking:      booking,
		OrderID:      *booking.GatewayOrderID,
		Amount:       ToMinorUnits(booking.TotalCost),
		Currency:     "INR",
		GatewayKeyID: s.gatewayKeyID,
	}, nil
}

// GetBooking retrieves a booking, enforcing that non-admin callers only see
// their own.
func (s *BookingService) GetBooking(bookingID, userID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, errs.ErrForbidden
	}
	return booking, nil
}

// GetBookingByReference retrieves a booking by its reference code with the
// same ownership check.
func (s *BookingService) GetBookingByReference(reference, userID string, isAdmin bool) (*models.Booking, error) {
	booking, err := s.bookings.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if !isAdmin && booking.UserID != userID {
		return nil, errs.ErrForbidden
	}
	return booking, nil
}

// ListUserBookings retrieves the caller's bookings, newest first
func (s *BookingService) ListUserBookings(userID string) ([]models.Booking, error) {
	return s.bookings.GetByUserID(userID)
}

// ListBookings retrieves bookings for the admin view with pagination
func (s *BookingService) ListBookings(filter models.BookingFilter) ([]models.Booking, int, error) {
	return s.bookings.List(filter)
}

// UpdateStatus applies an admin lifecycle status change
func (s *BookingService) UpdateStatus(bookingID string, req *models.UpdateBookingStatusRequest) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.bookings.UpdateStatus(bookingID, req.Status, req.InternalNotes); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"status":     req.Status,
	}).Info("Booking status updated")

	return s.bookings.GetByID(bookingID)
}
