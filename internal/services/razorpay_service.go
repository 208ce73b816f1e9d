package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/config"
	"github.com/gotravel/gotravel-backend/internal/errs"
)

// PaymentGateway is the single point of contact with the payment processor.
// Stateless; every call is independently retryable by the caller.
type PaymentGateway interface {
	CreateOrder(amount float64, currency, receipt string, notes map[string]string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
	FetchPayment(paymentID string) (*GatewayPayment, error)
	Refund(paymentID string, amount float64) (*GatewayRefund, error)
}

// GatewayOrder is the processor-side object representing an amount to be
// collected. Amount is in minor currency units (paise).
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment is a fetched payment record
type GatewayPayment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
}

// GatewayRefund is an initiated refund record
type GatewayRefund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// RazorpayService implements PaymentGateway against the Razorpay REST API
type RazorpayService struct {
	baseURL   string
	keyID     string
	keySecret string
	logger    *logrus.Logger
	client    *http.Client
}

// NewRazorpayService creates a new Razorpay payment service
func NewRazorpayService(cfg *config.PaymentConfig, logger *logrus.Logger) *RazorpayService {
	return &RazorpayService{
		baseURL:   cfg.BaseURL,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		logger:    logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// KeyID returns the public key id the checkout UI needs.
func (s *RazorpayService) KeyID() string {
	return s.keyID
}

// ToMinorUnits converts a rupee amount to paise.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrder requests a payment order from the processor. The decimal
// amount is converted to minor units here. Any transport failure or
// rejection comes back as a *errs.GatewayError; callers must not persist
// anything when that happens.
func (s *RazorpayService) CreateOrder(amount float64, currency, receipt string, notes map[string]string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, &errs.GatewayError{Op: "create_order", Err: fmt.Errorf("amount must be positive")}
	}

	payload := createOrderRequest{
		Amount:   ToMinorUnits(amount),
		Currency: currency,
		Receipt:  receipt,
		Notes:    notes,
	}

	body, err := s.post("/v1/orders", payload)
	if err != nil {
		return nil, err
	}

	var order GatewayOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, &errs.GatewayError{Op: "create_order", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  receipt,
	}).Info("Payment order created")

	return &order, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "orderID|paymentID" with the
// key secret and compares it to the client-supplied signature in constant
// time. A mismatch is a plain false, not an error.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// FetchPayment retrieves a payment record from the processor
func (s *RazorpayService) FetchPayment(paymentID string) (*GatewayPayment, error) {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+"/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, &errs.GatewayError{Op: "fetch_payment", Err: err}
	}
	req.SetBasicAuth(s.keyID, s.keySecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &errs.GatewayError{Op: "fetch_payment", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.GatewayError{Op: "fetch_payment", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &errs.GatewayError{Op: "fetch_payment", StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", body)}
	}

	var payment GatewayPayment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, &errs.GatewayError{Op: "fetch_payment", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	return &payment, nil
}

// Refund initiates a refund for a captured payment
func (s *RazorpayService) Refund(paymentID string, amount float64) (*GatewayRefund, error) {
	payload := map[string]int64{"amount": ToMinorUnits(amount)}

	body, err := s.post("/v1/payments/"+paymentID+"/refund", payload)
	if err != nil {
		return nil, err
	}

	var refund GatewayRefund
	if err := json.Unmarshal(body, &refund); err != nil {
		return nil, &errs.GatewayError{Op: "refund", Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	s.logger.WithFields(logrus.Fields{
		"refund_id":  refund.ID,
		"payment_id": paymentID,
		"amount":     refund.Amount,
	}).Info("Refund initiated")

	return &refund, nil
}

// post sends an authenticated JSON request and returns the raw body, mapping
// every failure mode to a GatewayError.
func (s *RazorpayService) post(path string, payload interface{}) ([]byte, error) {
	op := "create_order"
	if path != "/v1/orders" {
		op = "refund"
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &errs.GatewayError{Op: op, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &errs.GatewayError{Op: op, Err: err}
	}
	req.SetBasicAuth(s.keyID, s.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Payment gateway unreachable")
		return nil, &errs.GatewayError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.GatewayError{Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		s.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(body),
		}).Error("Payment gateway rejected request")
		return nil, &errs.GatewayError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", body)}
	}

	return body, nil
}
