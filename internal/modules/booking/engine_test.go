package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"coworking/internal/domain"
)

func newTestEngine(bookings *MockBookingRepository, workstations *MockWorkstationRepository, discounts *MockDiscountSource) *Engine {
	return NewEngine(workstations, bookings, discounts, testBookingConfig())
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestEngine_CheckAvailability_HalfOpenIntervals(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockWorkstations := new(MockWorkstationRepository)

	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	existing := []domain.Booking{
		{ID: 1, WorkstationID: 10, Status: domain.BookingActive,
			StartTime: day.Add(10 * time.Hour), EndTime: day.Add(12 * time.Hour)},
	}

	mockWorkstations.On("GetByID", mock.Anything, int64(10)).Return(roomWorkstation(10), nil)
	mockBookings.On("FindActiveForWorkstation", mock.Anything, int64(10)).Return(existing, nil)

	engine := newTestEngine(mockBookings, mockWorkstations, new(MockDiscountSource))

	cases := []struct {
		name      string
		start     time.Duration
		end       time.Duration
		available bool
	}{
		{"ends exactly at existing start", 9 * time.Hour, 10 * time.Hour, true},
		{"starts exactly at existing end", 12 * time.Hour, 13 * time.Hour, true},
		{"overlaps the tail", 11 * time.Hour, 13 * time.Hour, false},
		{"overlaps the head", 9 * time.Hour, 11 * time.Hour, false},
		{"contained inside", 10*time.Hour + 30*time.Minute, 11 * time.Hour, false},
		{"covers entirely", 9 * time.Hour, 13 * time.Hour, false},
		{"fully before", 7 * time.Hour, 9 * time.Hour, true},
		{"fully after", 13 * time.Hour, 15 * time.Hour, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.CheckAvailability(context.Background(), 10, day.Add(tc.start), day.Add(tc.end))
			assert.NoError(t, err)
			assert.Equal(t, tc.available, res.IsAvailable)
			if !tc.available {
				assert.NotNil(t, res.ConflictingBooking)
				assert.Equal(t, int64(1), res.ConflictingBooking.ID)
			}
		})
	}
}

// Overlap is symmetric: swapping the candidate and the existing booking
// cannot change the verdict.
func TestEngine_CheckAvailability_OverlapSymmetry(t *testing.T) {
	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	pairs := []struct {
		aStart, aEnd, bStart, bEnd time.Duration
	}{
		{10 * time.Hour, 12 * time.Hour, 11 * time.Hour, 13 * time.Hour},
		{10 * time.Hour, 12 * time.Hour, 12 * time.Hour, 13 * time.Hour},
		{10 * time.Hour, 11 * time.Hour, 9 * time.Hour, 10 * time.Hour},
		{10 * time.Hour, 14 * time.Hour, 11 * time.Hour, 12 * time.Hour},
	}

	for _, p := range pairs {
		a := domain.Booking{StartTime: day.Add(p.aStart), EndTime: day.Add(p.aEnd)}
		b := domain.Booking{StartTime: day.Add(p.bStart), EndTime: day.Add(p.bEnd)}
		assert.Equal(t,
			a.Overlaps(b.StartTime, b.EndTime),
			b.Overlaps(a.StartTime, a.EndTime),
		)
	}
}

// Scenario: a room booked 10:00-11:00; a second request for 10:30-11:30 on
// the same room must be rejected.
func TestEngine_CheckAvailability_RoomDoubleRequest(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockWorkstations := new(MockWorkstationRepository)

	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	mockWorkstations.On("GetByID", mock.Anything, int64(10)).Return(roomWorkstation(10), nil)
	mockBookings.On("FindActiveForWorkstation", mock.Anything, int64(10)).Return([]domain.Booking{
		{ID: 1, WorkstationID: 10, Status: domain.BookingActive,
			StartTime: day.Add(10 * time.Hour), EndTime: day.Add(11 * time.Hour)},
	}, nil)

	engine := newTestEngine(mockBookings, mockWorkstations, new(MockDiscountSource))

	res, err := engine.CheckAvailability(context.Background(), 10,
		day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute))

	assert.NoError(t, err)
	assert.False(t, res.IsAvailable)
}

// Cancelled bookings never block: the repository excludes them from the
// active set, so a slot freed by cancellation books again.
func TestEngine_CheckAvailability_CancelledSlotReopens(t *testing.T) {
	mockBookings := new(MockBookingRepository)
	mockWorkstations := new(MockWorkstationRepository)

	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	mockWorkstations.On("GetByID", mock.Anything, int64(10)).Return(roomWorkstation(10), nil)
	mockBookings.On("FindActiveForWorkstation", mock.Anything, int64(10)).Return([]domain.Booking{}, nil)

	engine := newTestEngine(mockBookings, mockWorkstations, new(MockDiscountSource))

	res, err := engine.CheckAvailability(context.Background(), 10,
		day.Add(10*time.Hour), day.Add(11*time.Hour))

	assert.NoError(t, err)
	assert.True(t, res.IsAvailable)
}

func TestEngine_CheckAvailability_InvalidRange(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))

	day := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	_, err := engine.CheckAvailability(context.Background(), 10, day.Add(11*time.Hour), day.Add(10*time.Hour))
	assert.ErrorIs(t, err, ErrValidation)

	// zero-length interval
	_, err = engine.CheckAvailability(context.Background(), 10, day.Add(10*time.Hour), day.Add(10*time.Hour))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEngine_ResolveBasePrice_DeskTiers(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))

	ws := &domain.Workstation{
		Type:              domain.Desk,
		BasePricePerDay:   floatPtr(1000),
		BasePricePerWeek:  floatPtr(4500),
		BasePricePerMonth: floatPtr(15000),
	}

	day, err := engine.ResolveBasePrice(ws, domain.TierDay)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, day)

	week, err := engine.ResolveBasePrice(ws, domain.TierWeek)
	assert.NoError(t, err)
	assert.Equal(t, 4500.0, week)

	month, err := engine.ResolveBasePrice(ws, domain.TierMonth)
	assert.NoError(t, err)
	assert.Equal(t, 15000.0, month)

	// desks have no hourly tier, hour folds to day
	hour, err := engine.ResolveBasePrice(ws, domain.TierHour)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, hour)
}

func TestEngine_ResolveBasePrice_RoomFallback(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))

	withRate := &domain.Workstation{Type: domain.ConferenceRoom, BasePricePerHour: floatPtr(2500)}
	rate, err := engine.ResolveBasePrice(withRate, domain.TierHour)
	assert.NoError(t, err)
	assert.Equal(t, 2500.0, rate)

	// unset hourly rate falls back to the configured default
	withoutRate := &domain.Workstation{Type: domain.MeetingRoom}
	rate, err = engine.ResolveBasePrice(withoutRate, domain.TierHour)
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, rate)
}

func TestEngine_ResolveBasePrice_MissingDeskPrice(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))

	ws := &domain.Workstation{Type: domain.Desk, BasePricePerDay: floatPtr(1000)}
	_, err := engine.ResolveBasePrice(ws, domain.TierMonth)
	assert.ErrorIs(t, err, ErrPriceNotConfigured)
}

func activeDiscount(id int64, name string, pct float64) domain.Discount {
	return domain.Discount{
		ID:         id,
		Name:       name,
		Percentage: pct,
		StartDate:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		ApplicableDays: domain.WeekdayList{
			domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday,
			domain.Friday, domain.Saturday, domain.Sunday,
		},
		IsActive: true,
	}
}

// Scenario: desk at 1000/day with a single eligible 20% discount prices at 800.
func TestEngine_CalculatePrice_SingleDiscount(t *testing.T) {
	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{
		activeDiscount(1, "Early bird", 20),
	}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	start := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	quote, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, start.AddDate(0, 0, 1))

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, quote.BasePrice)
	assert.Equal(t, 20.0, quote.DiscountPercentage)
	assert.Equal(t, 200.0, quote.DiscountAmount)
	assert.Equal(t, 800.0, quote.FinalPrice)
	assert.Equal(t, 1, quote.DiscountsApplied)
	assert.Len(t, quote.AppliedDiscounts, 1)
}

// Scenario: base 1000 with a 30% discount capped at 100 and an uncapped 50%
// discount reduces by 100 + 500, final 400.
func TestEngine_CalculatePrice_StackingWithMaxAmountClamp(t *testing.T) {
	capped := activeDiscount(1, "Promo", 30)
	capped.MaxDiscountAmount = floatPtr(100)
	uncapped := activeDiscount(2, "Season", 50)

	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{capped, uncapped}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	start := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	quote, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, start.AddDate(0, 0, 1))

	assert.NoError(t, err)
	assert.Equal(t, 1000.0, quote.BasePrice)
	assert.Equal(t, 80.0, quote.DiscountPercentage)
	assert.Equal(t, 600.0, quote.DiscountAmount)
	assert.Equal(t, 400.0, quote.FinalPrice)
	assert.Equal(t, 2, quote.DiscountsApplied)
}

// Final price is clamped to [0, base] even when stacked percentages exceed 100.
func TestEngine_CalculatePrice_NeverNegative(t *testing.T) {
	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{
		activeDiscount(1, "A", 70),
		activeDiscount(2, "B", 60),
	}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	start := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	quote, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, start.AddDate(0, 0, 1))

	assert.NoError(t, err)
	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.Equal(t, 1000.0, quote.DiscountAmount)
}

// Adding an eligible discount never increases the final price.
func TestEngine_CalculatePrice_MonotonicInDiscounts(t *testing.T) {
	start := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	one := new(MockDiscountSource)
	one.On("ListActive", mock.Anything).Return([]domain.Discount{
		activeDiscount(1, "A", 10),
	}, nil)
	two := new(MockDiscountSource)
	two.On("ListActive", mock.Anything).Return([]domain.Discount{
		activeDiscount(1, "A", 10),
		activeDiscount(2, "B", 5),
	}, nil)

	q1, err := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), one).
		CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, end)
	assert.NoError(t, err)
	q2, err := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), two).
		CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, end)
	assert.NoError(t, err)

	assert.LessOrEqual(t, q2.FinalPrice, q1.FinalPrice)
}

// Pricing is a pure function of its inputs: the same request quotes the same.
func TestEngine_CalculatePrice_Deterministic(t *testing.T) {
	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{
		activeDiscount(1, "A", 15),
	}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	start := time.Date(2026, 12, 30, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	q1, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, end)
	assert.NoError(t, err)
	q2, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, end)
	assert.NoError(t, err)

	assert.Equal(t, q1, q2)
}

func TestEngine_CalculatePrice_RoomHours(t *testing.T) {
	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	start := time.Date(2026, 12, 30, 10, 0, 0, 0, time.UTC)
	quote, err := engine.CalculatePrice(context.Background(), roomWorkstation(10), domain.TierHour, start, start.Add(2*time.Hour))

	assert.NoError(t, err)
	assert.Equal(t, 4000.0, quote.BasePrice) // 2000/h * 2h
	assert.Equal(t, 4000.0, quote.FinalPrice)

	// half-hour granularity rounds to cents
	quote, err = engine.CalculatePrice(context.Background(), roomWorkstation(10), domain.TierHour, start, start.Add(90*time.Minute))
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, quote.BasePrice)
}

func TestEngine_CalculatePrice_IneligibleDiscountsSkipped(t *testing.T) {
	// 2026-12-30 is a Wednesday
	start := time.Date(2026, 12, 30, 14, 0, 0, 0, time.UTC)

	inactive := activeDiscount(1, "Inactive", 10)
	inactive.IsActive = false

	wrongDay := activeDiscount(2, "Weekend only", 10)
	wrongDay.ApplicableDays = domain.WeekdayList{domain.Saturday, domain.Sunday}

	expired := activeDiscount(3, "Expired", 10)
	expired.EndDate = time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC)

	exhausted := activeDiscount(4, "Exhausted", 10)
	exhausted.UsageLimit = intPtr(5)
	exhausted.UsageCount = 5

	outsideHours := activeDiscount(5, "Morning", 10)
	outsideHours.ApplicableHours = strPtr("08:00-12:00")

	applies := activeDiscount(6, "Afternoon", 10)
	applies.ApplicableHours = strPtr("12:00-18:00")

	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{
		inactive, wrongDay, expired, exhausted, outsideHours, applies,
	}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	quote, err := engine.CalculatePrice(context.Background(), deskWorkstation(10), domain.TierDay, start, start.AddDate(0, 0, 1))

	assert.NoError(t, err)
	assert.Equal(t, 1, quote.DiscountsApplied)
	assert.Len(t, quote.AppliedDiscounts, 1)
	assert.Equal(t, int64(6), quote.AppliedDiscounts[0].ID)
	assert.Equal(t, 900.0, quote.FinalPrice)
}

// The clock window is inclusive at both bounds.
func TestEngine_CalculatePrice_HoursWindowInclusive(t *testing.T) {
	d := activeDiscount(1, "Happy hours", 10)
	d.ApplicableHours = strPtr("10:00-18:00")

	mockDiscounts := new(MockDiscountSource)
	mockDiscounts.On("ListActive", mock.Anything).Return([]domain.Discount{d}, nil)

	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), mockDiscounts)

	atClose := time.Date(2026, 12, 30, 18, 0, 0, 0, time.UTC)
	quote, err := engine.CalculatePrice(context.Background(), roomWorkstation(10), domain.TierHour, atClose, atClose.Add(time.Hour))
	assert.NoError(t, err)
	assert.Len(t, quote.AppliedDiscounts, 1)

	pastClose := time.Date(2026, 12, 30, 18, 1, 0, 0, time.UTC)
	quote, err = engine.CalculatePrice(context.Background(), roomWorkstation(10), domain.TierHour, pastClose, pastClose.Add(time.Hour))
	assert.NoError(t, err)
	assert.Len(t, quote.AppliedDiscounts, 0)
}

func refundBooking(start time.Time, paid float64) *domain.Booking {
	return &domain.Booking{
		ID:         123,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		Status:     domain.BookingActive,
		FinalPrice: paid,
		Payment:    &domain.Payment{BookingID: 123, FinalPrice: paid, Status: domain.PaymentPaid},
	}
}

func TestEngine_CalculateRefund_Windows(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))
	now := time.Date(2026, 12, 29, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		lead   time.Duration
		refund float64
		status domain.PaymentStatus
	}{
		{"48h before start refunds everything", 48 * time.Hour, 800, domain.PaymentRefunded},
		{"exactly 24h refunds everything", 24 * time.Hour, 800, domain.PaymentRefunded},
		{"12h refunds half", 12 * time.Hour, 400, domain.PaymentRefunded},
		{"exactly 2h refunds half", 2 * time.Hour, 400, domain.PaymentRefunded},
		{"1h refunds nothing", time.Hour, 0, domain.PaymentKept},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := engine.CalculateRefund(refundBooking(now.Add(tc.lead), 800), now)
			assert.NoError(t, err)
			assert.Equal(t, tc.refund, res.RefundAmount)
			assert.Equal(t, tc.status, res.PaymentStatus)
		})
	}
}

// More lead time never refunds less.
func TestEngine_CalculateRefund_MonotonicInLead(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))
	now := time.Date(2026, 12, 29, 10, 0, 0, 0, time.UTC)

	leads := []time.Duration{
		30 * time.Minute, 2 * time.Hour, 6 * time.Hour, 24 * time.Hour, 72 * time.Hour,
	}

	prev := -1.0
	for _, lead := range leads {
		res, err := engine.CalculateRefund(refundBooking(now.Add(lead), 800), now)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, res.RefundAmount, prev)
		prev = res.RefundAmount
	}
}

func TestEngine_CalculateRefund_TerminalStates(t *testing.T) {
	engine := newTestEngine(new(MockBookingRepository), new(MockWorkstationRepository), new(MockDiscountSource))
	now := time.Date(2026, 12, 29, 10, 0, 0, 0, time.UTC)

	cancelled := refundBooking(now.Add(48*time.Hour), 800)
	cancelled.Status = domain.BookingCancelled
	_, err := engine.CalculateRefund(cancelled, now)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	completed := refundBooking(now.Add(-3*time.Hour), 800)
	_, err = engine.CalculateRefund(completed, now)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}
