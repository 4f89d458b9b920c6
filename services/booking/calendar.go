package booking

import (
	"rideconnect/models"
	"rideconnect/services/tasks"

	"go.uber.org/zap"
)

// enqueueCalendarSync queues a calendar update. Failures never fail the booking.
func (s *DefaultBookingService) enqueueCalendarSync(bookingID, action string) {
	if s.Tasks == nil {
		return
	}
	task, opts, err := tasks.NewCalendarSyncTask(models.CalendarSyncPayload{BookingID: bookingID, Action: action})
	if err != nil {
		s.logger().Error("Failed to build calendar sync task", zap.String("bookingId", bookingID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task, opts...); err != nil {
		s.logger().Warn("Failed to enqueue calendar sync",
			zap.String("bookingId", bookingID), zap.String("action", action), zap.Error(err))
	}
}
