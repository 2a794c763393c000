package booking

import (
	"time"

	"coworking/internal/domain"
)

type CreateBookingRequest struct {
	WorkstationID int64     `json:"workstation_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	DurationTier  string    `json:"duration_tier"`
	Notes         string    `json:"notes"`
}

type QuoteRequest struct {
	WorkstationID int64     `json:"workstation_id" binding:"required"`
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time"`
	DurationTier  string    `json:"duration_tier"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type BookedSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DayAvailabilityResponse describes one calendar day of a workstation.
// Rooms expose their busy hour slots; desks are exclusive for the whole
// day, so they only report whether the day is taken.
type DayAvailabilityResponse struct {
	WorkstationID int64        `json:"workstation_id"`
	Date          string       `json:"date"`
	Type          string       `json:"type"`
	DayOccupied   bool         `json:"day_occupied"`
	BookedSlots   []BookedSlot `json:"booked_slots"`
}

type BookingResponse struct {
	Booking *domain.Booking `json:"booking"`
	Quote   *PriceQuote     `json:"quote,omitempty"`
}

type CancelResponse struct {
	Booking *domain.Booking `json:"booking"`
	Refund  *RefundResult   `json:"refund"`
}
