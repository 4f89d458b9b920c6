package booking

import (
	"context"
	"time"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"
	"rideconnect/services/pricing"
	"rideconnect/services/timeslot"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingService is the customer and admin facing booking flow.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByDate(ctx context.Context, date string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, paymentIntentID string) (*models.Booking, error)
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
	CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, bookingID, paymentIntentID string) (*models.Booking, error)
}

// Quoter prices a ride. *pricing.FareEstimator satisfies it.
type Quoter interface {
	Quote(ctx context.Context, req models.QuoteRequest) pricing.QuoteResult
}

// TaskEnqueuer is the part of *asynq.Client the booking flow needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultBookingService implements BookingService. Tasks may be nil, which
// disables calendar sync.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Slots    timeslot.SlotAvailabilityManager
	Pricing  Quoter
	Payments PaymentGateway
	Tasks    TaskEnqueuer
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultBookingService) now() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	if s.Now == nil {
		return time.Now().In(loc)
	}
	return s.Now().In(loc)
}
