package timeslot

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"rideconnect/models"
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// SlotKey identifies a window within a day. Two keys are equal when their
// minute offsets are, so "9:00" and "09:00" name the same start.
type SlotKey struct {
	Start int // minutes since midnight
	End   int
}

// ParseSlotKey reads the "HH:MM-HH:MM" form used by bookings.
func ParseSlotKey(s string) (SlotKey, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return SlotKey{}, newValidationError(fmt.Sprintf("invalid time slot %q: expected HH:MM-HH:MM", s))
	}
	if err := ValidateSlot(start, end); err != nil {
		return SlotKey{}, err
	}
	a, _ := parseClock(start)
	b, _ := parseClock(end)
	return SlotKey{Start: a, End: b}, nil
}

func KeyOf(slot models.TimeSlot) (SlotKey, bool) {
	a, okA := parseClock(slot.StartTime)
	b, okB := parseClock(slot.EndTime)
	if !okA || !okB {
		return SlotKey{}, false
	}
	return SlotKey{Start: a, End: b}, true
}

func (k SlotKey) StartTime() string { return formatClock(k.Start) }
func (k SlotKey) EndTime() string   { return formatClock(k.End) }

func (k SlotKey) String() string {
	return k.StartTime() + "-" + k.EndTime()
}

// Matches reports whether slot covers exactly this window.
func (k SlotKey) Matches(slot models.TimeSlot) bool {
	other, ok := KeyOf(slot)
	return ok && other == k
}

// ValidateSlot checks both times are 24-hour HH:MM and end is after start.
func ValidateSlot(startTime, endTime string) error {
	if !clockPattern.MatchString(startTime) {
		return newValidationError(fmt.Sprintf("invalid start time %q: use 24-hour HH:MM", startTime))
	}
	if !clockPattern.MatchString(endTime) {
		return newValidationError(fmt.Sprintf("invalid end time %q: use 24-hour HH:MM", endTime))
	}
	a, _ := parseClock(startTime)
	b, _ := parseClock(endTime)
	if b <= a {
		return newValidationError("end time must be after start time")
	}
	return nil
}

func parseClock(s string) (int, bool) {
	if !clockPattern.MatchString(s) {
		return 0, false
	}
	h, m, _ := strings.Cut(s, ":")
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	return hh*60 + mm, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
