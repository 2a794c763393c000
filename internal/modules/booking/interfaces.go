package booking

import (
	"context"
	"time"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

// BookingRepository defines the persistence operations the engine and the
// service rely on. The Create implementation must reject overlapping
// intervals authoritatively; the engine's availability check is advisory.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking, discountIDs []int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindActiveForWorkstation(ctx context.Context, workstationID int64) ([]domain.Booking, error)
	GetBusySlots(ctx context.Context, workstationID int64, from, to time.Time) ([]repository.BusySlot, error)
	GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]repository.UserBookingDetails, error)
	GetByCenterID(ctx context.Context, centerID int64) ([]domain.Booking, error)
	Cancel(ctx context.Context, bookingID int64, reason string, refundAmount float64, payStatus domain.PaymentStatus, now time.Time) error
}

// WorkstationRepository defines the workstation lookups the engine needs.
type WorkstationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Workstation, error)
}

// DiscountSource supplies the current active discounts. Usage counting is
// owned by the booking-creation transaction, not the calculator.
type DiscountSource interface {
	ListActive(ctx context.Context) ([]domain.Discount, error)
}

type CenterRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CoworkingCenter, error)
}

// NotificationSender pushes booking lifecycle events to the center's manager.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, managerID int64, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, managerID int64, b *domain.Booking, reason string) error
}
