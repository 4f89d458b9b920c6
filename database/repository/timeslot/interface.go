// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"

	"rideconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no slot matches the given id.
var ErrNotFound = errors.New("timeslot not found")

// ErrDuplicate is returned when a slot with the same date, start and end already exists.
var ErrDuplicate = errors.New("timeslot already exists")

type TimeSlotRepository interface {
	FindByDate(ctx context.Context, date string) ([]models.TimeSlot, error)
	GetByID(ctx context.Context, id string) (*models.TimeSlot, error)
	Insert(ctx context.Context, slot models.TimeSlot) (*models.TimeSlot, error)
	InsertMany(ctx context.Context, slots []models.TimeSlot) (int, error)
	Update(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error)
	Delete(ctx context.Context, id string) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("timeslots"),
	}
}
