// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"

	"rideconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, paymentIntentID string) (*models.Booking, error)
	UpdateCalendarInfo(ctx context.Context, id string, info models.CalendarInfo) error
	EnsureIndexes(ctx context.Context) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &mongoBookingRepo{coll: db.Collection("bookings")}
}
