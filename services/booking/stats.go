package booking

import (
	"context"

	"rideconnect/models"
)

// DashboardStats counts today's and this month's confirmed rides in the
// business timezone.
func (s *DefaultBookingService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	now := s.now()
	today := now.Format("2006-01-02")
	monthStart := now.AddDate(0, 0, -now.Day()+1).Format("2006-01-02")
	monthEnd := now.AddDate(0, 1, -now.Day()).Format("2006-01-02")

	stats := &models.DashboardStats{}

	todays, err := s.Repo.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}
	for _, b := range todays {
		if b.Status == models.BookingConfirmed {
			stats.TodayRides++
			stats.TodayRevenue += b.EstimatedPrice
		}
	}

	pending, err := s.Repo.CountByStatus(ctx, models.BookingPending)
	if err != nil {
		return nil, err
	}
	stats.PendingBookings = int(pending)

	monthly, err := s.Repo.ListByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	for _, b := range monthly {
		if b.Status == models.BookingConfirmed {
			stats.MonthlyRides++
		}
	}
	return stats, nil
}
