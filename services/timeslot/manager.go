package timeslot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rideconnect/config"
	timeslotRepo "rideconnect/database/repository/timeslot"
	"rideconnect/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	dateLayout      = "2006-01-02"
	generateTimeout = 15 * time.Second
)

// SlotAvailabilityManager owns the bookable windows for each date.
type SlotAvailabilityManager interface {
	EnsureSlotsForDate(ctx context.Context, date string) ([]models.TimeSlot, error)
	ListAvailable(ctx context.Context, date string) ([]models.TimeSlot, error)
	IsOpen(ctx context.Context, date string, key SlotKey) (bool, error)
	MarkBooked(ctx context.Context, date, timeSlotKey string) error
	ReleaseSlot(ctx context.Context, date, timeSlotKey string) error
	CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.TimeSlot, error)
	UpdateSlot(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error)
	DeleteSlot(ctx context.Context, id string) (bool, error)
	GenerateDefaultSlots(date string) []models.TimeSlot
}

// Config describes the business day.
type Config struct {
	StartHour       int
	EndHour         int // exclusive
	IntervalMinutes int
	Location        *time.Location
	Now             func() time.Time
}

func DefaultConfig() Config {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		loc = time.UTC
	}
	return Config{StartHour: 15, EndHour: 23, IntervalMinutes: 15, Location: loc, Now: time.Now}
}

// ConfigFromApp reads business hours from the loaded application config.
func ConfigFromApp(cfg config.Config) Config {
	c := DefaultConfig()
	c.StartHour = cfg.SlotStartHour
	c.EndHour = cfg.SlotEndHour
	c.IntervalMinutes = cfg.SlotIntervalMinutes
	c.Location = config.BusinessLocation()
	return c
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Location == nil {
		c.Location = d.Location
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.IntervalMinutes <= 0 {
		c.IntervalMinutes = d.IntervalMinutes
	}
	if c.StartHour < 0 || c.StartHour > 23 {
		c.StartHour = d.StartHour
	}
	// Slots never run past midnight.
	if c.EndHour > 24 {
		c.EndHour = 24
	}
	if c.EndHour <= c.StartHour {
		c.EndHour = d.EndHour
	}
	return c
}

// DefaultSlotManager implements SlotAvailabilityManager on a slot store.
type DefaultSlotManager struct {
	Store  timeslotRepo.TimeSlotRepository
	Config Config
	Logger *zap.Logger

	generating singleflight.Group
}

func NewSlotManager(store timeslotRepo.TimeSlotRepository, cfg Config, logger *zap.Logger) *DefaultSlotManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSlotManager{Store: store, Config: cfg.normalized(), Logger: logger}
}

// Today is the current business date.
func (m *DefaultSlotManager) Today() string {
	return m.Config.Now().In(m.Config.Location).Format(dateLayout)
}

func parseDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return newValidationError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", date))
	}
	return nil
}

// GenerateDefaultSlots builds a full day of available slots in chronological order.
func (m *DefaultSlotManager) GenerateDefaultSlots(date string) []models.TimeSlot {
	cfg := m.Config
	first := cfg.StartHour * 60
	last := cfg.EndHour * 60
	if last >= 24*60 {
		last = 24*60 - 1
	}

	var slots []models.TimeSlot
	for t := first; t+cfg.IntervalMinutes <= last; t += cfg.IntervalMinutes {
		key := SlotKey{Start: t, End: t + cfg.IntervalMinutes}
		slots = append(slots, models.TimeSlot{
			Date:        date,
			StartTime:   key.StartTime(),
			EndTime:     key.EndTime(),
			IsAvailable: true,
		})
	}
	return slots
}

// EnsureSlotsForDate returns the slots for date, creating the default day
// the first time a current or future date is asked for. Past dates are never
// generated.
func (m *DefaultSlotManager) EnsureSlotsForDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	if err := parseDate(date); err != nil {
		return nil, err
	}

	slots, err := m.Store.FindByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(slots) > 0 {
		return slots, nil
	}
	if date < m.Today() {
		return []models.TimeSlot{}, nil
	}

	v, err, shared := m.generating.Do(date, func() (interface{}, error) {
		// Waiters share this flight, so one caller going away must not cancel it.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), generateTimeout)
		defer cancel()

		// Another process may have filled the date since the first read.
		existing, err := m.Store.FindByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return existing, nil
		}

		inserted, err := m.Store.InsertMany(ctx, m.GenerateDefaultSlots(date))
		if err != nil {
			return nil, err
		}
		m.Logger.Info("Generated default timeslots", zap.String("date", date), zap.Int("inserted", inserted))
		return m.Store.FindByDate(ctx, date)
	})
	if err != nil {
		return nil, err
	}

	generated := v.([]models.TimeSlot)
	if shared {
		generated = append([]models.TimeSlot(nil), generated...)
	}
	return generated, nil
}

func (m *DefaultSlotManager) ListAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	slots, err := m.EnsureSlotsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	available := make([]models.TimeSlot, 0, len(slots))
	for _, s := range slots {
		if s.IsAvailable {
			available = append(available, s)
		}
	}
	return available, nil
}

// IsOpen reports whether an available slot matching key exists on date.
func (m *DefaultSlotManager) IsOpen(ctx context.Context, date string, key SlotKey) (bool, error) {
	slots, err := m.ListAvailable(ctx, date)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if key.Matches(s) {
			return true, nil
		}
	}
	return false, nil
}

// MarkBooked takes the slot out of availability. A key that matches nothing is
// logged and ignored so a stale slot never blocks a booking.
func (m *DefaultSlotManager) MarkBooked(ctx context.Context, date, timeSlotKey string) error {
	return m.setAvailability(ctx, date, timeSlotKey, false)
}

// ReleaseSlot makes a previously booked slot available again.
func (m *DefaultSlotManager) ReleaseSlot(ctx context.Context, date, timeSlotKey string) error {
	return m.setAvailability(ctx, date, timeSlotKey, true)
}

func (m *DefaultSlotManager) setAvailability(ctx context.Context, date, timeSlotKey string, available bool) error {
	key, err := ParseSlotKey(timeSlotKey)
	if err != nil {
		m.Logger.Warn("Ignoring unparsable time slot key",
			zap.String("date", date), zap.String("timeSlot", timeSlotKey), zap.Error(err))
		return nil
	}

	slots, err := m.Store.FindByDate(ctx, date)
	if err != nil {
		return err
	}
	for _, s := range slots {
		if !key.Matches(s) {
			continue
		}
		if s.IsAvailable == available {
			return nil
		}
		_, err := m.Store.Update(ctx, s.ID, models.SlotUpdate{IsAvailable: &available})
		if errors.Is(err, ErrNotFound) {
			break
		}
		return err
	}

	m.Logger.Warn("No matching time slot found",
		zap.String("date", date), zap.String("timeSlot", key.String()), zap.Bool("available", available))
	return nil
}

func (m *DefaultSlotManager) CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.TimeSlot, error) {
	if err := parseDate(req.Date); err != nil {
		return nil, err
	}
	if err := ValidateSlot(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	return m.Store.Insert(ctx, models.TimeSlot{
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: available,
	})
}

// UpdateSlot merges upd into the slot. Changed times are validated against the
// slot's current values.
func (m *DefaultSlotManager) UpdateSlot(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error) {
	if upd.Date != nil {
		if err := parseDate(*upd.Date); err != nil {
			return nil, err
		}
	}
	if upd.StartTime != nil || upd.EndTime != nil {
		current, err := m.Store.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		start, end := current.StartTime, current.EndTime
		if upd.StartTime != nil {
			start = *upd.StartTime
		}
		if upd.EndTime != nil {
			end = *upd.EndTime
		}
		if err := ValidateSlot(start, end); err != nil {
			return nil, err
		}
	}
	return m.Store.Update(ctx, id, upd)
}

func (m *DefaultSlotManager) DeleteSlot(ctx context.Context, id string) (bool, error) {
	return m.Store.Delete(ctx, id)
}
