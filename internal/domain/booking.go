package domain

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentKept     PaymentStatus = "kept"
)

// Booking occupies a workstation over the half-open interval
// [StartTime, EndTime). It owns its Payment record, created together.
type Booking struct {
	ID                 int64         `json:"id"`
	WorkstationID      int64         `json:"workstation_id" validate:"required"`
	CenterID           int64         `json:"center_id" validate:"required"`
	UserID             int64         `json:"user_id" validate:"required"`
	StartTime          time.Time     `json:"start_time" validate:"required"`
	EndTime            time.Time     `json:"end_time" validate:"required"`
	DurationTier       DurationTier  `json:"duration_tier"`
	Status             BookingStatus `json:"status"`
	BasePrice          float64       `json:"base_price"`
	DiscountPercentage float64       `json:"discount_percentage"`
	FinalPrice         float64       `json:"final_price"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`
	CancellationReason string        `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Payment     *Payment     `json:"payment,omitempty" gorm:"foreignKey:BookingID"`
	User        *User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Workstation *Workstation `json:"workstation,omitempty" gorm:"foreignKey:WorkstationID"`
}

// EffectiveStatus derives BookingCompleted once the end instant has passed.
// Completion is a read-time derivation, not a persisted transition.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == BookingActive && !now.Before(b.EndTime) {
		return BookingCompleted
	}
	return b.Status
}

// Overlaps tests the half-open interval overlap used for conflicts:
// [start, end) intersects [b.StartTime, b.EndTime). Adjacent bookings
// sharing a boundary instant do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.EndTime) && end.After(b.StartTime)
}

// IsTerminal reports whether the booking can no longer be cancelled.
func (b *Booking) IsTerminal(now time.Time) bool {
	s := b.EffectiveStatus(now)
	return s == BookingCancelled || s == BookingCompleted
}

type Payment struct {
	ID                 int64         `json:"id"`
	BookingID          int64         `json:"booking_id" gorm:"uniqueIndex"`
	BasePrice          float64       `json:"base_price"`
	DiscountPercentage float64       `json:"discount_percentage"`
	FinalPrice         float64       `json:"final_price"`
	Status             PaymentStatus `json:"status"`
	RefundAmount       float64       `json:"refund_amount"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
