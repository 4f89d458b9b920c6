package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, paymentIntentID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status}
	if paymentIntentID != "" {
		set["paymentIntentId"] = paymentIntentID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &b, nil
}

func (r *mongoBookingRepo) UpdateCalendarInfo(ctx context.Context, id string, info models.CalendarInfo) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	syncedAt := info.SyncedAt
	if syncedAt.IsZero() {
		syncedAt = time.Now().UTC()
	}
	set := bson.M{
		"googleSyncStatus": info.SyncStatus,
		"googleSyncedAt":   syncedAt,
	}
	if info.EventID != "" {
		set["googleEventId"] = info.EventID
	}
	if info.CalendarID != "" {
		set["googleCalendarId"] = info.CalendarID
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking calendar info: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
