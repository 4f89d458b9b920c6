package models

// TimeSlot represents one bookable window on a calendar date.
type TimeSlot struct {
	ID          string `bson:"id" json:"id"`
	Date        string `bson:"date" json:"date"`           // e.g., "2025-02-25"
	StartTime   string `bson:"startTime" json:"startTime"` // 24-hour "HH:MM"
	EndTime     string `bson:"endTime" json:"endTime"`     // 24-hour "HH:MM"
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// Key returns the "HH:MM-HH:MM" form bookings use to reference the slot.
func (t TimeSlot) Key() string {
	return t.StartTime + "-" + t.EndTime
}

// SlotUpdate carries the fields an admin may change on a slot. Nil fields are left untouched.
type SlotUpdate struct {
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	IsAvailable *bool   `json:"isAvailable,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u SlotUpdate) IsEmpty() bool {
	return u.Date == nil && u.StartTime == nil && u.EndTime == nil && u.IsAvailable == nil
}

// CreateSlotRequest defines the payload for creating a single slot.
type CreateSlotRequest struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsAvailable *bool  `json:"isAvailable,omitempty"`
}
