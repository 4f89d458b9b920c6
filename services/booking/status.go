package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"
	"rideconnect/services/tasks"
	"rideconnect/services/timeslot"

	"go.uber.org/zap"
)

// UpdateStatus moves a booking to status. Confirming takes the slot and fails
// when it is already taken; cancelling a confirmed booking frees it unless
// another confirmed booking holds it, and removes the calendar event.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, paymentIntentID string) (*models.Booking, error) {
	if !status.Valid() {
		return nil, newValidationError("invalid status %q", status)
	}

	prev, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newNotFoundError(id)
	}
	if err != nil {
		return nil, err
	}

	if status == models.BookingConfirmed && prev.Status != models.BookingConfirmed {
		if err := s.requireOpenSlot(ctx, prev); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.UpdateStatus(ctx, id, status, paymentIntentID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, newNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	if prev.Status == status {
		return updated, nil
	}

	switch status {
	case models.BookingConfirmed:
		if err := s.Slots.MarkBooked(ctx, updated.Date, updated.TimeSlot); err != nil {
			s.logger().Error("Failed to mark slot booked",
				zap.String("bookingId", id), zap.String("date", updated.Date),
				zap.String("timeSlot", updated.TimeSlot), zap.Error(err))
		}
	case models.BookingCancelled:
		if prev.Status == models.BookingConfirmed && !s.slotHeldByOther(ctx, updated) {
			if err := s.Slots.ReleaseSlot(ctx, updated.Date, updated.TimeSlot); err != nil {
				s.logger().Error("Failed to release slot",
					zap.String("bookingId", id), zap.String("timeSlot", updated.TimeSlot), zap.Error(err))
			}
		}
		if updated.GoogleEventID != "" {
			s.enqueueCalendarSync(id, tasks.CalendarActionCancel)
		}
	}

	s.logger().Info("Booking status updated",
		zap.String("bookingId", id), zap.String("from", string(prev.Status)), zap.String("to", string(status)))
	return updated, nil
}

func (s *DefaultBookingService) requireOpenSlot(ctx context.Context, b *models.Booking) error {
	key, err := timeslot.ParseSlotKey(b.TimeSlot)
	if err != nil {
		return newValidationError("booking %s has invalid time slot %q", b.ID, b.TimeSlot)
	}
	open, err := s.Slots.IsOpen(ctx, b.Date, key)
	if err != nil {
		return fmt.Errorf("failed to check slot availability: %w", err)
	}
	if !open {
		return &BookingError{
			Code:    CodeSlotUnavailable,
			Message: fmt.Sprintf("time slot %s on %s is no longer available", key, b.Date),
		}
	}
	return nil
}

// slotHeldByOther reports whether a different confirmed booking occupies b's slot.
// Lookup failures count as held so a slot is never freed under a live ride.
func (s *DefaultBookingService) slotHeldByOther(ctx context.Context, b *models.Booking) bool {
	sameDay, err := s.Repo.ListByDate(ctx, b.Date)
	if err != nil {
		s.logger().Error("Failed to check other bookings before releasing slot",
			zap.String("bookingId", b.ID), zap.String("date", b.Date), zap.Error(err))
		return true
	}
	for _, other := range sameDay {
		if other.ID != b.ID && other.TimeSlot == b.TimeSlot && other.Status == models.BookingConfirmed {
			s.logger().Warn("Slot still held by another booking",
				zap.String("bookingId", b.ID), zap.String("heldBy", other.ID), zap.String("timeSlot", b.TimeSlot))
			return true
		}
	}
	return false
}
