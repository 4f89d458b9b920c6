package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"rideconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List returns all bookings, newest first.
func (r *mongoBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timeSlot", Value: 1}})
	return r.find(ctx, bson.M{"date": date}, opts)
}

// ListByDateRange returns bookings whose date lies in [from, to].
func (r *mongoBookingRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "timeSlot", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoBookingRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *mongoBookingRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
