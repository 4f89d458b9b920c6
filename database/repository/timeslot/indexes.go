// FILE: database/repository/timeslot/indexes.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the timeslots collection.
func (r *mongoTimeSlotRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Two first requests for a new date must not both create a full day of slots.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("date_start_end_unique"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "isAvailable", Value: 1}},
			Options: options.Index().SetName("date_available_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create timeslot indexes: %w", err)
	}
	return nil
}
