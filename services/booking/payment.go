package booking

import (
	"context"
	"errors"
	"fmt"
	"math"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// ErrPaymentsDisabled is returned when no payment provider is configured.
var ErrPaymentsDisabled = errors.New("payments are not configured")

// IntentInfo is the provider-side state of a payment intent.
type IntentInfo struct {
	ID          string
	Status      string
	BookingID   string
	AmountCents int64
}

func (i IntentInfo) Succeeded() bool {
	return i.Status == string(stripe.PaymentIntentStatusSucceeded)
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, bookingID string) (*models.PaymentIntent, error)
	IntentStatus(ctx context.Context, intentID string) (*IntentInfo, error)
}

// StripeGateway creates USD payment intents. Without a key every call
// returns ErrPaymentsDisabled.
type StripeGateway struct {
	client *paymentintent.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	return NewStripeGatewayWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeGatewayWithBackend uses a caller-supplied API backend.
func NewStripeGatewayWithBackend(secretKey string, backend stripe.Backend) *StripeGateway {
	return &StripeGateway{client: &paymentintent.Client{B: backend, Key: secretKey}}
}

func (g *StripeGateway) Enabled() bool {
	return g != nil && g.client != nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, bookingID string) (*models.PaymentIntent, error) {
	if !g.Enabled() {
		return nil, ErrPaymentsDisabled
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toCents(amount)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if bookingID != "" {
		params.AddMetadata("bookingId", bookingID)
	}

	pi, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentIntent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) IntentStatus(ctx context.Context, intentID string) (*IntentInfo, error) {
	if !g.Enabled() {
		return nil, ErrPaymentsDisabled
	}
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.client.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment intent: %w", err)
	}
	return &IntentInfo{
		ID:          pi.ID,
		Status:      string(pi.Status),
		BookingID:   pi.Metadata["bookingId"],
		AmountCents: pi.Amount,
	}, nil
}

func (s *DefaultBookingService) payments() PaymentGateway {
	if s.Payments == nil {
		return &StripeGateway{}
	}
	return s.Payments
}

func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return nil, newValidationError("amount must be positive")
	}
	if req.BookingID != "" {
		if _, err := s.GetBooking(ctx, req.BookingID); err != nil {
			return nil, err
		}
	}

	intent, err := s.payments().CreateIntent(ctx, req.Amount, req.BookingID)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Payment intent created",
		zap.String("intentId", intent.ID), zap.String("bookingId", req.BookingID), zap.Float64("amount", req.Amount))
	return intent, nil
}

// ConfirmPayment confirms the booking once an intent created for it has
// succeeded for at least the estimated price.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, bookingID, paymentIntentID string) (*models.Booking, error) {
	if paymentIntentID == "" {
		return nil, newValidationError("paymentIntentId is required")
	}
	b, err := s.Repo.GetByID(ctx, bookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newNotFoundError(bookingID)
	}
	if err != nil {
		return nil, err
	}

	info, err := s.payments().IntentStatus(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if info.BookingID != b.ID {
		return nil, newValidationError("payment intent %s was not created for booking %s", paymentIntentID, b.ID)
	}
	if !info.Succeeded() {
		return nil, &BookingError{
			Code:    CodePaymentIncomplete,
			Message: fmt.Sprintf("payment intent %s is %s", paymentIntentID, info.Status),
		}
	}
	if due := toCents(b.EstimatedPrice); info.AmountCents < due {
		return nil, &BookingError{
			Code:    CodePaymentIncomplete,
			Message: fmt.Sprintf("payment intent %s covers %d of %d cents", paymentIntentID, info.AmountCents, due),
		}
	}

	return s.UpdateStatus(ctx, b.ID, models.BookingConfirmed, paymentIntentID)
}
