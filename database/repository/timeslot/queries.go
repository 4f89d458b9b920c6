// File: database/repository/timeslot/queries.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindByDate returns every slot on date in chronological order.
func (r *mongoTimeSlotRepo) FindByDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.TimeSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding timeslots: %w", err)
	}
	return slots, nil
}

func (r *mongoTimeSlotRepo) GetByID(ctx context.Context, id string) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.TimeSlot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find error: %w", err)
	}
	return &slot, nil
}
