package booking

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"coworking/internal/config"
	"coworking/internal/domain"
)

// Engine implements the pure booking calculations: availability over
// half-open intervals, base price resolution, discount stacking and refund
// policy. It reads through repositories but never writes; persistence and
// the authoritative conflict check live in the repository layer.
type Engine struct {
	workstations WorkstationRepository
	bookings     BookingRepository
	discounts    DiscountSource
	cfg          config.BookingConfig
}

func NewEngine(
	workstations WorkstationRepository,
	bookings BookingRepository,
	discounts DiscountSource,
	cfg config.BookingConfig,
) *Engine {
	return &Engine{
		workstations: workstations,
		bookings:     bookings,
		discounts:    discounts,
		cfg:          cfg,
	}
}

// AvailabilityResult reports whether a candidate interval is free and, when
// it is not, the first active booking it collides with.
type AvailabilityResult struct {
	IsAvailable        bool            `json:"is_available"`
	ConflictingBooking *domain.Booking `json:"conflicting_booking,omitempty"`
}

// AppliedDiscount records one discount's contribution to a quote.
type AppliedDiscount struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Percentage     float64 `json:"percentage"`
	DiscountAmount float64 `json:"discount_amount"`
}

// PriceQuote is the full price breakdown for a booking request.
type PriceQuote struct {
	BasePrice          float64           `json:"base_price"`
	DiscountPercentage float64           `json:"discount_percentage"`
	DiscountAmount     float64           `json:"discount_amount"`
	FinalPrice         float64           `json:"final_price"`
	DiscountsApplied   int               `json:"discounts_applied"`
	AppliedDiscounts   []AppliedDiscount `json:"applied_discounts"`
}

// RefundResult is the outcome of the cancellation policy for one booking.
type RefundResult struct {
	RefundAmount  float64              `json:"refund_amount"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

// CheckAvailability reports whether [start, end) is free on the workstation.
// Intervals are half-open: a booking ending exactly at start does not
// conflict. Cancelled bookings never block; the repository only returns
// active rows, and completed bookings lie in the past by definition so an
// expired active row cannot overlap a future candidate.
func (e *Engine) CheckAvailability(ctx context.Context, workstationID int64, start, end time.Time) (*AvailabilityResult, error) {
	if !start.Before(end) {
		return nil, ErrValidation
	}

	if _, err := e.workstations.GetByID(ctx, workstationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	active, err := e.bookings.FindActiveForWorkstation(ctx, workstationID)
	if err != nil {
		return nil, err
	}

	for i := range active {
		if active[i].Overlaps(start, end) {
			return &AvailabilityResult{
				IsAvailable:        false,
				ConflictingBooking: &active[i],
			}, nil
		}
	}

	return &AvailabilityResult{IsAvailable: true}, nil
}

// ResolveBasePrice picks the price field that matches the workstation type
// and requested duration tier. Desks price per tier; rooms price per hour,
// falling back to the configured default rate when the workstation has no
// rate of its own.
func (e *Engine) ResolveBasePrice(ws *domain.Workstation, tier domain.DurationTier) (float64, error) {
	if ws.Type.IsRoom() {
		if ws.BasePricePerHour != nil && *ws.BasePricePerHour > 0 {
			return *ws.BasePricePerHour, nil
		}
		return e.cfg.DefaultRoomHourlyRate, nil
	}

	// Desks have no hourly tier; an hourly request books the full day.
	switch tier {
	case domain.TierWeek:
		if ws.BasePricePerWeek != nil && *ws.BasePricePerWeek > 0 {
			return *ws.BasePricePerWeek, nil
		}
	case domain.TierMonth:
		if ws.BasePricePerMonth != nil && *ws.BasePricePerMonth > 0 {
			return *ws.BasePricePerMonth, nil
		}
	default:
		if ws.BasePricePerDay != nil && *ws.BasePricePerDay > 0 {
			return *ws.BasePricePerDay, nil
		}
	}

	return 0, ErrPriceNotConfigured
}

// CalculatePrice produces the full quote for a booking starting at start.
// Discount eligibility is evaluated against the booking start time, so the
// same request always yields the same quote regardless of when it is priced.
//
// Stacking is additive: each eligible discount contributes
// base * percentage / 100, clamped to its own max amount, and the summed
// reduction is clamped to the base so the final price stays within
// [0, base].
func (e *Engine) CalculatePrice(ctx context.Context, ws *domain.Workstation, tier domain.DurationTier, start, end time.Time) (*PriceQuote, error) {
	base, err := e.ResolveBasePrice(ws, tier)
	if err != nil {
		return nil, err
	}

	if ws.Type.IsRoom() {
		if !start.Before(end) {
			return nil, ErrValidation
		}
		base = round2(base * end.Sub(start).Hours())
	}

	all, err := e.discounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	eligible := make([]domain.Discount, 0, len(all))
	for _, d := range all {
		if d.EligibleAt(start) {
			eligible = append(eligible, d)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority > eligible[j].Priority
	})

	quote := &PriceQuote{
		BasePrice:        base,
		AppliedDiscounts: make([]AppliedDiscount, 0, len(eligible)),
	}

	var totalAmount float64
	for _, d := range eligible {
		amount := base * d.Percentage / 100
		if d.MaxDiscountAmount != nil && amount > *d.MaxDiscountAmount {
			amount = *d.MaxDiscountAmount
		}
		amount = round2(amount)

		totalAmount += amount
		quote.DiscountPercentage += d.Percentage
		quote.AppliedDiscounts = append(quote.AppliedDiscounts, AppliedDiscount{
			ID:             d.ID,
			Name:           d.Name,
			Percentage:     d.Percentage,
			DiscountAmount: amount,
		})
	}

	if totalAmount > base {
		totalAmount = base
	}

	quote.DiscountsApplied = len(quote.AppliedDiscounts)
	quote.DiscountAmount = round2(totalAmount)
	quote.FinalPrice = round2(base - totalAmount)
	return quote, nil
}

// CalculateRefund applies the lead-time refund policy to a booking being
// cancelled at now. Windows are ordered by descending lead; the first one
// whose threshold the remaining lead meets wins. A lead below every window
// refunds nothing and the payment is kept.
func (e *Engine) CalculateRefund(b *domain.Booking, now time.Time) (*RefundResult, error) {
	if b.Status == domain.BookingCancelled {
		return nil, ErrAlreadyCancelled
	}
	if b.EffectiveStatus(now) == domain.BookingCompleted {
		return nil, ErrAlreadyCompleted
	}

	paid := b.FinalPrice
	if b.Payment != nil {
		paid = b.Payment.FinalPrice
	}

	lead := b.StartTime.Sub(now)

	var fraction float64
	for _, w := range e.cfg.RefundWindows {
		if lead >= w.MinLead {
			fraction = w.Fraction
			break
		}
	}

	refund := round2(paid * fraction)
	if refund < 0 {
		refund = 0
	}
	if refund > paid {
		refund = paid
	}

	status := domain.PaymentKept
	if refund > 0 {
		status = domain.PaymentRefunded
	}

	return &RefundResult{RefundAmount: refund, PaymentStatus: status}, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
