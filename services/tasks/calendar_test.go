package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rideconnect/models"
)

func TestNewCalendarSyncTask(t *testing.T) {
	task, opts, err := NewCalendarSyncTask(models.CalendarSyncPayload{BookingID: "b-1", Action: CalendarActionCreate})
	require.NoError(t, err)
	assert.Equal(t, TypeCalendarSync, task.Type())
	assert.Len(t, opts, 2)

	p, err := ParseCalendarSyncPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "b-1", p.BookingID)
	assert.Equal(t, CalendarActionCreate, p.Action)
}

func TestNewCalendarSyncTask_RequiresBookingID(t *testing.T) {
	_, _, err := NewCalendarSyncTask(models.CalendarSyncPayload{Action: CalendarActionCancel})
	assert.Error(t, err)
}

func TestParseCalendarSyncPayload_Rejects(t *testing.T) {
	_, err := ParseCalendarSyncPayload(asynq.NewTask(TypeCalendarSync, []byte("{")))
	assert.Error(t, err)

	_, err = ParseCalendarSyncPayload(asynq.NewTask(TypeCalendarSync, []byte(`{"bookingId":"b","action":"update"}`)))
	assert.Error(t, err)
}
