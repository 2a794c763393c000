package domain

import (
	"errors"
	"time"
)

type WorkstationType string

const (
	Desk           WorkstationType = "desk"
	ComputerDesk   WorkstationType = "computer_desk"
	MeetingRoom    WorkstationType = "meeting_room"
	ConferenceRoom WorkstationType = "conference_room"
)

var ErrUnknownWorkstationType = errors.New("unknown workstation type")

func ParseWorkstationType(s string) (WorkstationType, error) {
	switch WorkstationType(s) {
	case Desk, ComputerDesk, MeetingRoom, ConferenceRoom:
		return WorkstationType(s), nil
	}
	return "", ErrUnknownWorkstationType
}

// IsRoom reports whether the type is booked by the hour (rooms) as opposed
// to desk tiers (day/week/month).
func (t WorkstationType) IsRoom() bool {
	return t == MeetingRoom || t == ConferenceRoom
}

func (t WorkstationType) IsDesk() bool {
	return t == Desk || t == ComputerDesk
}

// DurationTier is the billing granularity for desk bookings.
type DurationTier string

const (
	TierHour  DurationTier = "hour"
	TierDay   DurationTier = "day"
	TierWeek  DurationTier = "week"
	TierMonth DurationTier = "month"
)

// ParseDurationTier maps an empty or unrecognized tier to TierDay.
func ParseDurationTier(s string) DurationTier {
	switch DurationTier(s) {
	case TierHour, TierDay, TierWeek, TierMonth:
		return DurationTier(s)
	}
	return TierDay
}

// Workstation is a bookable unit placed on a floor grid. Exactly one pricing
// family is populated: rooms carry BasePricePerHour, desks carry the
// day/week/month prices.
type Workstation struct {
	ID          int64           `json:"id"`
	FloorID     int64           `json:"floor_id"`
	CenterID    int64           `json:"center_id"`
	Label       string          `json:"label" validate:"required"`
	Description string          `json:"description,omitempty"`
	Type        WorkstationType `json:"type" validate:"required"`
	Capacity    int             `json:"capacity,omitempty"`
	PosRow      int             `json:"pos_row"`
	PosCol      int             `json:"pos_col"`

	BasePricePerHour  *float64 `json:"base_price_per_hour,omitempty"`
	BasePricePerDay   *float64 `json:"base_price_per_day,omitempty"`
	BasePricePerWeek  *float64 `json:"base_price_per_week,omitempty"`
	BasePricePerMonth *float64 `json:"base_price_per_month,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Inventory []InventoryItem `json:"inventory,omitempty" gorm:"foreignKey:WorkstationID"`
}
