package events

import (
	"context"
	"time"

	"coworking/internal/domain"
)

// Event is the wire envelope pushed over the websocket.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

type BookingEventData struct {
	BookingID     int64     `json:"booking_id"`
	WorkstationID int64     `json:"workstation_id"`
	CenterID      int64     `json:"center_id"`
	UserID        int64     `json:"user_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	FinalPrice    float64   `json:"final_price"`
	Reason        string    `json:"reason,omitempty"`
}

// Notifier pushes booking lifecycle events to the owning manager's
// connection. Offline managers simply miss the event, the bookings
// list is the source of truth.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) NotifyBookingCreated(ctx context.Context, managerID int64, b *domain.Booking) error {
	n.hub.SendToUser(managerID, Event{
		Type:      "booking.created",
		Data:      bookingEventData(b, ""),
		Timestamp: time.Now(),
	})
	return nil
}

func (n *Notifier) NotifyBookingCancelled(ctx context.Context, managerID int64, b *domain.Booking, reason string) error {
	n.hub.SendToUser(managerID, Event{
		Type:      "booking.cancelled",
		Data:      bookingEventData(b, reason),
		Timestamp: time.Now(),
	})
	return nil
}

func bookingEventData(b *domain.Booking, reason string) BookingEventData {
	return BookingEventData{
		BookingID:     b.ID,
		WorkstationID: b.WorkstationID,
		CenterID:      b.CenterID,
		UserID:        b.UserID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		FinalPrice:    b.FinalPrice,
		Reason:        reason,
	}
}
