package booking

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"rideconnect/models"
	"rideconnect/services/pricing"
	"rideconnect/services/timeslot"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minLocationLen = 5
	maxNotesLen    = 500
)

// normalizeInput trims the input, fills defaults and validates it. It returns
// the parsed slot key.
func normalizeInput(in *models.BookingInput) (timeslot.SlotKey, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.PickupLocation = strings.TrimSpace(in.PickupLocation)
	in.DropoffLocation = strings.TrimSpace(in.DropoffLocation)
	in.Notes = strings.TrimSpace(in.Notes)

	if n := utf8.RuneCountInString(in.CustomerName); n < minNameLen || n > maxNameLen {
		return timeslot.SlotKey{}, newValidationError("name must be between %d and %d characters", minNameLen, maxNameLen)
	}
	if !emailPattern.MatchString(in.CustomerEmail) {
		return timeslot.SlotKey{}, newValidationError("invalid email address")
	}
	if in.CustomerPhone != "" && !phonePattern.MatchString(in.CustomerPhone) {
		return timeslot.SlotKey{}, newValidationError("invalid phone number")
	}
	if utf8.RuneCountInString(in.PickupLocation) < minLocationLen {
		return timeslot.SlotKey{}, newValidationError("pickup location must be at least %d characters", minLocationLen)
	}
	if utf8.RuneCountInString(in.DropoffLocation) < minLocationLen {
		return timeslot.SlotKey{}, newValidationError("dropoff location must be at least %d characters", minLocationLen)
	}
	if utf8.RuneCountInString(in.Notes) > maxNotesLen {
		return timeslot.SlotKey{}, newValidationError("notes must be at most %d characters", maxNotesLen)
	}

	if in.PassengerCount == 0 {
		in.PassengerCount = 1
	}
	if in.PassengerCount < 1 || in.PassengerCount > pricing.MaxPassengers {
		return timeslot.SlotKey{}, newValidationError("passenger count must be between 1 and %d", pricing.MaxPassengers)
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return timeslot.SlotKey{}, newValidationError("invalid date %q: use YYYY-MM-DD", in.Date)
	}
	key, err := timeslot.ParseSlotKey(in.TimeSlot)
	if err != nil {
		return timeslot.SlotKey{}, newValidationError("%s", err.Error())
	}
	return key, nil
}
