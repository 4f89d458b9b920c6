// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rideconnect/models"
)

const duplicateKeyCode = 11000

func (r *mongoTimeSlotRepo) Insert(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert timeslot: %w", err)
	}
	return &slot, nil
}

// InsertMany writes slots unordered and skips any that collide with an
// existing (date, startTime, endTime). It returns how many were written.
func (r *mongoTimeSlotRepo) InsertMany(ctx context.Context, slots []models.TimeSlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(slots))
	for i, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		docs[i] = slot
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return len(slots), nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || bwe.WriteConcernError != nil {
		return 0, fmt.Errorf("failed to insert timeslots: %w", err)
	}
	for _, we := range bwe.WriteErrors {
		if we.Code != duplicateKeyCode {
			return 0, fmt.Errorf("failed to insert timeslots: %w", err)
		}
	}
	return len(slots) - len(bwe.WriteErrors), nil
}

func (r *mongoTimeSlotRepo) Update(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error) {
	if upd.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if upd.Date != nil {
		set["date"] = *upd.Date
	}
	if upd.StartTime != nil {
		set["startTime"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		set["endTime"] = *upd.EndTime
	}
	if upd.IsAvailable != nil {
		set["isAvailable"] = *upd.IsAvailable
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slot models.TimeSlot
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update timeslot: %w", err)
	}
	return &slot, nil
}

func (r *mongoTimeSlotRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete timeslot: %w", err)
	}
	return res.DeletedCount > 0, nil
}
