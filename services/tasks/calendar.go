package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"rideconnect/models"

	"github.com/hibiken/asynq"
)

const TypeCalendarSync = "calendar:sync"

const (
	CalendarActionCreate = "create"
	CalendarActionCancel = "cancel"
)

func NewCalendarSyncTask(payload models.CalendarSyncPayload) (*asynq.Task, []asynq.Option, error) {
	if payload.BookingID == "" {
		return nil, nil, fmt.Errorf("calendar sync task needs a booking id")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCalendarSync, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParseCalendarSyncPayload decodes and checks a task payload.
func ParseCalendarSyncPayload(task *asynq.Task) (models.CalendarSyncPayload, error) {
	var p models.CalendarSyncPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid calendar sync payload: %w", err)
	}
	switch p.Action {
	case CalendarActionCreate, CalendarActionCancel:
	default:
		return p, fmt.Errorf("unknown calendar sync action %q", p.Action)
	}
	if p.BookingID == "" {
		return p, fmt.Errorf("calendar sync payload missing booking id")
	}
	return p, nil
}
