package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"coworking/internal/database"
	"coworking/internal/domain"
	"coworking/internal/repository"
)

// Service orchestrates booking creation, cancellation and read views around
// the Engine. The engine's availability check is advisory: the repository
// repeats the overlap test inside the insert transaction, and on PostgreSQL
// the exclusion constraint is the final word.
type Service struct {
	engine       *Engine
	bookings     BookingRepository
	workstations WorkstationRepository
	centers      CenterRepository
	notifier     NotificationSender
	now          func() time.Time
}

func NewService(
	engine *Engine,
	bookings BookingRepository,
	workstations WorkstationRepository,
	centers CenterRepository,
	notifier NotificationSender,
) *Service {
	return &Service{
		engine:       engine,
		bookings:     bookings,
		workstations: workstations,
		centers:      centers,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, *PriceQuote, error) {
	now := s.now()

	if !req.StartTime.Before(req.EndTime) {
		return nil, nil, ErrValidation
	}
	if req.StartTime.Before(now) {
		return nil, nil, ErrValidation
	}

	ws, err := s.workstations.GetByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !ws.IsActive {
		return nil, nil, ErrNotAvailable
	}

	avail, err := s.engine.CheckAvailability(ctx, ws.ID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, nil, err
	}
	if !avail.IsAvailable {
		return nil, nil, ErrNotAvailable
	}

	tier := domain.ParseDurationTier(req.DurationTier)
	if ws.Type.IsRoom() {
		tier = domain.TierHour
	}

	var (
		b     *domain.Booking
		quote *PriceQuote
	)
	for attempt := 0; ; attempt++ {
		quote, err = s.engine.CalculatePrice(ctx, ws, tier, req.StartTime, req.EndTime)
		if err != nil {
			return nil, nil, err
		}

		b = &domain.Booking{
			WorkstationID:      ws.ID,
			CenterID:           ws.CenterID,
			UserID:             userID,
			StartTime:          req.StartTime,
			EndTime:            req.EndTime,
			DurationTier:       tier,
			Status:             domain.BookingActive,
			BasePrice:          quote.BasePrice,
			DiscountPercentage: quote.DiscountPercentage,
			FinalPrice:         quote.FinalPrice,
			Notes:              req.Notes,
			Payment: &domain.Payment{
				BasePrice:          quote.BasePrice,
				DiscountPercentage: quote.DiscountPercentage,
				FinalPrice:         quote.FinalPrice,
				Status:             domain.PaymentPaid,
			},
		}

		discountIDs := make([]int64, 0, len(quote.AppliedDiscounts))
		for _, d := range quote.AppliedDiscounts {
			discountIDs = append(discountIDs, d.ID)
		}

		err = s.bookings.Create(ctx, b, discountIDs)
		if err == nil {
			break
		}
		// A concurrent booking consumed a discount's last usage slot after we
		// priced. Re-price against the current counters and retry.
		if errors.Is(err, repository.ErrDiscountExhausted) && attempt < 2 {
			continue
		}
		if errors.Is(err, repository.ErrOverlap) || isExclusionViolation(err) {
			return nil, nil, ErrOverbooking
		}
		return nil, nil, err
	}

	s.notifyCreated(ctx, b)

	return b, quote, nil
}

// GetQuote prices a request without persisting anything. A room quote with
// no end time defaults to one hour.
func (s *Service) GetQuote(ctx context.Context, req QuoteRequest) (*PriceQuote, error) {
	ws, err := s.workstations.GetByID(ctx, req.WorkstationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	tier := domain.ParseDurationTier(req.DurationTier)
	end := req.EndTime
	if ws.Type.IsRoom() {
		tier = domain.TierHour
		if end.IsZero() {
			end = req.StartTime.Add(time.Hour)
		}
	}

	return s.engine.CalculatePrice(ctx, ws, tier, req.StartTime, end)
}

func (s *Service) CancelBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole, reason string) (*domain.Booking, *RefundResult, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	if err := s.checkCancelAccess(ctx, b, actorID, actorRole); err != nil {
		return nil, nil, err
	}

	now := s.now()
	refund, err := s.engine.CalculateRefund(b, now)
	if err != nil {
		return nil, nil, err
	}

	if err := s.bookings.Cancel(ctx, b.ID, reason, refund.RefundAmount, refund.PaymentStatus, now); err != nil {
		return nil, nil, err
	}

	updated, err := s.bookings.GetByID(ctx, b.ID)
	if err != nil {
		return nil, nil, err
	}

	s.notifyCancelled(ctx, updated, reason)

	return updated, refund, nil
}

func (s *Service) checkCancelAccess(ctx context.Context, b *domain.Booking, actorID int64, actorRole domain.UserRole) error {
	switch actorRole {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		center, err := s.centers.GetByID(ctx, b.CenterID)
		if err != nil {
			return ErrForbidden
		}
		if center.ManagerID != actorID {
			return ErrForbidden
		}
		return nil
	default:
		if b.UserID != actorID {
			return ErrForbidden
		}
		return nil
	}
}

func (s *Service) GetBooking(ctx context.Context, bookingID, actorID int64, actorRole domain.UserRole) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.checkCancelAccess(ctx, b, actorID, actorRole); err != nil {
		return nil, err
	}
	b.Status = b.EffectiveStatus(s.now())
	return b, nil
}

// GetMyBookings lists the user's bookings newest first, with the completed
// status derived for rows whose end time has passed.
func (s *Service) GetMyBookings(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.bookings.GetUserBookingsWithDetails(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range rows {
		if rows[i].Status == string(domain.BookingActive) && !now.Before(rows[i].EndTime) {
			rows[i].Status = string(domain.BookingCompleted)
		}
	}
	return rows, nil
}

func (s *Service) GetCenterBookings(ctx context.Context, centerID int64) ([]domain.Booking, error) {
	rows, err := s.bookings.GetByCenterID(ctx, centerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range rows {
		rows[i].Status = rows[i].EffectiveStatus(now)
	}
	return rows, nil
}

// GetDayAvailability reports one calendar day of a workstation: hour slots
// for rooms, whole-day occupancy for desks.
func (s *Service) GetDayAvailability(ctx context.Context, workstationID int64, date string) (*DayAvailabilityResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}

	ws, err := s.workstations.GetByID(ctx, workstationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from := day
	to := day.AddDate(0, 0, 1)

	busy, err := s.bookings.GetBusySlots(ctx, workstationID, from, to)
	if err != nil {
		return nil, err
	}

	resp := &DayAvailabilityResponse{
		WorkstationID: ws.ID,
		Date:          date,
		Type:          string(ws.Type),
		DayOccupied:   ws.Type.IsDesk() && len(busy) > 0,
		BookedSlots:   make([]BookedSlot, 0, len(busy)),
	}
	for _, slot := range busy {
		resp.BookedSlots = append(resp.BookedSlots, BookedSlot{
			Start: slot.Start.Format(time.RFC3339),
			End:   slot.End.Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (s *Service) notifyCreated(ctx context.Context, b *domain.Booking) {
	if s.notifier == nil {
		return
	}
	center, err := s.centers.GetByID(ctx, b.CenterID)
	if err != nil {
		log.Printf("booking notify: center %d lookup failed: %v", b.CenterID, err)
		return
	}
	if err := s.notifier.NotifyBookingCreated(ctx, center.ManagerID, b); err != nil {
		log.Printf("booking notify: created event for booking %d failed: %v", b.ID, err)
	}
}

func (s *Service) notifyCancelled(ctx context.Context, b *domain.Booking, reason string) {
	if s.notifier == nil {
		return
	}
	center, err := s.centers.GetByID(ctx, b.CenterID)
	if err != nil {
		log.Printf("booking notify: center %d lookup failed: %v", b.CenterID, err)
		return
	}
	if err := s.notifier.NotifyBookingCancelled(ctx, center.ManagerID, b, reason); err != nil {
		log.Printf("booking notify: cancelled event for booking %d failed: %v", b.ID, err)
	}
}

// isExclusionViolation matches the PostgreSQL no-overlap exclusion constraint
// (SQLSTATE 23P01) on bookings.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == database.BookingOverlapConstraint
	}
	return false
}
