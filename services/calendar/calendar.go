package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rideconnect/models"
	"rideconnect/services/timeslot"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Syncer mirrors bookings into an external calendar.
type Syncer interface {
	CreateEvent(ctx context.Context, booking models.Booking) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
	CalendarID() string
}

// GoogleSyncer writes bookings to a Google Calendar as a service account.
type GoogleSyncer struct {
	service    *gcal.Service
	calendarID string
	location   *time.Location
}

// NewGoogleSyncer authenticates with a service-account key file.
func NewGoogleSyncer(ctx context.Context, keyPath, calendarID string, loc *time.Location) (*GoogleSyncer, error) {
	return NewGoogleSyncerWithOptions(ctx, calendarID, loc,
		option.WithCredentialsFile(keyPath),
		option.WithScopes(gcal.CalendarScope),
	)
}

func NewGoogleSyncerWithOptions(ctx context.Context, calendarID string, loc *time.Location, opts ...option.ClientOption) (*GoogleSyncer, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("calendar id is required")
	}
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &GoogleSyncer{service: svc, calendarID: calendarID, location: loc}, nil
}

func (g *GoogleSyncer) CalendarID() string {
	return g.calendarID
}

func (g *GoogleSyncer) CreateEvent(ctx context.Context, booking models.Booking) (string, error) {
	ev, err := BuildEvent(booking, g.location)
	if err != nil {
		return "", err
	}
	created, err := g.service.Events.Insert(g.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return created.Id, nil
}

// DeleteEvent removes an event. An event that is already gone counts as deleted.
func (g *GoogleSyncer) DeleteEvent(ctx context.Context, eventID string) error {
	err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if gErr, ok := err.(*googleapi.Error); ok && (gErr.Code == 404 || gErr.Code == 410) {
			return nil
		}
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	return nil
}

// BuildEvent renders a booking as a calendar event in loc.
func BuildEvent(b models.Booking, loc *time.Location) (*gcal.Event, error) {
	key, err := timeslot.ParseSlotKey(b.TimeSlot)
	if err != nil {
		return nil, err
	}
	day, err := time.ParseInLocation("2006-01-02", b.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid booking date %q: %w", b.Date, err)
	}
	start := day.Add(time.Duration(key.Start) * time.Minute)
	end := day.Add(time.Duration(key.End) * time.Minute)

	var desc strings.Builder
	fmt.Fprintf(&desc, "Customer: %s\n", b.CustomerName)
	fmt.Fprintf(&desc, "Email: %s\n", b.CustomerEmail)
	if b.CustomerPhone != "" {
		fmt.Fprintf(&desc, "Phone: %s\n", b.CustomerPhone)
	}
	fmt.Fprintf(&desc, "Pickup: %s\n", b.PickupLocation)
	fmt.Fprintf(&desc, "Dropoff: %s\n", b.DropoffLocation)
	fmt.Fprintf(&desc, "Passengers: %d\n", b.PassengerCount)
	if b.IsAirportRoute {
		desc.WriteString("Airport route\n")
	}
	fmt.Fprintf(&desc, "Estimated price: $%.2f\n", b.EstimatedPrice)
	if b.Notes != "" {
		fmt.Fprintf(&desc, "Notes: %s\n", b.Notes)
	}
	fmt.Fprintf(&desc, "Booking ID: %s", b.ID)

	return &gcal.Event{
		Summary:     fmt.Sprintf("Ride: %s", b.CustomerName),
		Location:    b.PickupLocation,
		Description: desc.String(),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
	}, nil
}
