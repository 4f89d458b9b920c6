package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"rideconnect/models"
)

func sampleBooking() models.Booking {
	return models.Booking{
		ID:              "b-1",
		CustomerName:    "Dana Reyes",
		CustomerEmail:   "dana@example.com",
		PickupLocation:  "Bellagio Hotel",
		DropoffLocation: "Harry Reid Airport",
		Date:            "2025-06-12",
		TimeSlot:        "22:45-23:00",
		PassengerCount:  2,
		IsAirportRoute:  true,
		EstimatedPrice:  30,
	}
}

func TestBuildEvent(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	ev, err := BuildEvent(sampleBooking(), la)
	require.NoError(t, err)

	assert.Equal(t, "Ride: Dana Reyes", ev.Summary)
	assert.Equal(t, "2025-06-12T22:45:00-07:00", ev.Start.DateTime)
	assert.Equal(t, "2025-06-12T23:00:00-07:00", ev.End.DateTime)
	assert.Equal(t, "America/Los_Angeles", ev.Start.TimeZone)
	assert.Contains(t, ev.Description, "Airport route")
	assert.Contains(t, ev.Description, "Booking ID: b-1")
}

func TestBuildEvent_BadSlot(t *testing.T) {
	b := sampleBooking()
	b.TimeSlot = "late"
	_, err := BuildEvent(b, time.UTC)
	assert.Error(t, err)
}

func TestGoogleSyncer_CreateAndDelete(t *testing.T) {
	var inserted gcal.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/calendars/rides@example.com/events"):
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&inserted))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"evt-42"}`))
		case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/events/evt-42"):
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	syncer, err := NewGoogleSyncerWithOptions(context.Background(), "rides@example.com", time.UTC,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	assert.Equal(t, "rides@example.com", syncer.CalendarID())

	id, err := syncer.CreateEvent(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.Equal(t, "evt-42", id)
	assert.Equal(t, "Ride: Dana Reyes", inserted.Summary)

	assert.NoError(t, syncer.DeleteEvent(context.Background(), "evt-42"))
	assert.NoError(t, syncer.DeleteEvent(context.Background(), "already-gone"))
}

func TestNewGoogleSyncer_RequiresCalendarID(t *testing.T) {
	_, err := NewGoogleSyncerWithOptions(context.Background(), "", time.UTC, option.WithoutAuthentication())
	assert.Error(t, err)
}
