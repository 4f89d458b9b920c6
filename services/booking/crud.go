package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"
	"rideconnect/services/pricing"
	"rideconnect/services/tasks"

	"go.uber.org/zap"
)

// CreateBooking validates the request, prices it and stores it as pending.
// The slot is only taken once the booking is confirmed.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput) (*models.Booking, error) {
	key, err := normalizeInput(&input)
	if err != nil {
		return nil, err
	}

	open, err := s.Slots.IsOpen(ctx, input.Date, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot availability: %w", err)
	}
	if !open {
		return nil, &BookingError{
			Code:    CodeSlotUnavailable,
			Message: fmt.Sprintf("time slot %s on %s is not available", key, input.Date),
		}
	}

	quote := s.Pricing.Quote(ctx, models.QuoteRequest{
		Pickup:         input.PickupLocation,
		Dropoff:        input.DropoffLocation,
		IsAirportRoute: input.IsAirportRoute,
		PassengerCount: input.PassengerCount,
	})
	if quote.Status != pricing.StatusOK {
		s.logger().Info("Booking priced without live route data",
			zap.String("status", string(quote.Status)), zap.Strings("reasons", quote.Reasons))
	}

	booking := models.Booking{
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		PickupLocation:  input.PickupLocation,
		DropoffLocation: input.DropoffLocation,
		Date:            input.Date,
		TimeSlot:        key.String(),
		PassengerCount:  input.PassengerCount,
		IsAirportRoute:  input.IsAirportRoute,
		Notes:           input.Notes,
		EstimatedPrice:  quote.Price(),
		Status:          models.BookingPending,
		CreatedAt:       s.now().UTC(),
	}
	if quote.Quote != nil {
		booking.FareBreakdown = quote.Quote.Breakdown
	}

	created, err := s.Repo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Booking created",
		zap.String("bookingId", created.ID), zap.String("date", created.Date),
		zap.String("timeSlot", created.TimeSlot), zap.Float64("price", created.EstimatedPrice))

	s.enqueueCalendarSync(created.ID, tasks.CalendarActionCreate)
	return created, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newNotFoundError(id)
	}
	return b, err
}

func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultBookingService) ListBookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.Repo.ListByDate(ctx, date)
}
