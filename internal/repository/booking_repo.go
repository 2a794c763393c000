package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

type bookingModel struct {
	ID                 int64      `gorm:"column:id;primaryKey"`
	WorkstationID      int64      `gorm:"column:workstation_id;index"`
	CenterID           int64      `gorm:"column:center_id;index"`
	UserID             int64      `gorm:"column:user_id;index"`
	StartTime          time.Time  `gorm:"column:start_time"`
	EndTime            time.Time  `gorm:"column:end_time"`
	DurationTier       string     `gorm:"column:duration_tier"`
	Status             string     `gorm:"column:status"`
	BasePrice          float64    `gorm:"column:base_price"`
	DiscountPercentage float64    `gorm:"column:discount_percentage"`
	FinalPrice         float64    `gorm:"column:final_price"`
	Notes              *string    `gorm:"column:notes"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type paymentModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	BookingID          int64     `gorm:"column:booking_id;uniqueIndex"`
	BasePrice          float64   `gorm:"column:base_price"`
	DiscountPercentage float64   `gorm:"column:discount_percentage"`
	FinalPrice         float64   `gorm:"column:final_price"`
	Status             string    `gorm:"column:status"`
	RefundAmount       float64   `gorm:"column:refund_amount"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes, reason string
	if m.Notes != nil {
		notes = *m.Notes
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		WorkstationID:      m.WorkstationID,
		CenterID:           m.CenterID,
		UserID:             m.UserID,
		StartTime:          m.StartTime,
		EndTime:            m.EndTime,
		DurationTier:       domain.DurationTier(m.DurationTier),
		Status:             domain.BookingStatus(m.Status),
		BasePrice:          m.BasePrice,
		DiscountPercentage: m.DiscountPercentage,
		FinalPrice:         m.FinalPrice,
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes, reason *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return bookingModel{
		ID:                 b.ID,
		WorkstationID:      b.WorkstationID,
		CenterID:           b.CenterID,
		UserID:             b.UserID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		DurationTier:       string(b.DurationTier),
		Status:             string(b.Status),
		BasePrice:          b.BasePrice,
		DiscountPercentage: b.DiscountPercentage,
		FinalPrice:         b.FinalPrice,
		Notes:              notes,
		CancellationReason: reason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:                 m.ID,
		BookingID:          m.BookingID,
		BasePrice:          m.BasePrice,
		DiscountPercentage: m.DiscountPercentage,
		FinalPrice:         m.FinalPrice,
		Status:             domain.PaymentStatus(m.Status),
		RefundAmount:       m.RefundAmount,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// Create inserts the booking with its owned payment and bumps the usage
// counters of the discounts applied to it, all in one transaction. The
// availability snapshot the caller read is advisory only; the overlap test
// is repeated here so a stale read cannot double-book. On PostgreSQL the
// idx_no_overlapping_bookings exclusion constraint backs this up.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, discountIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		err := tx.Model(&bookingModel{}).
			Where("workstation_id = ? AND status = ?", b.WorkstationID, string(domain.BookingActive)).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrOverlap
		}

		m := toBookingModel(b)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		var pm *paymentModel
		if b.Payment != nil {
			pm = &paymentModel{
				BookingID:          m.ID,
				BasePrice:          b.Payment.BasePrice,
				DiscountPercentage: b.Payment.DiscountPercentage,
				FinalPrice:         b.Payment.FinalPrice,
				Status:             string(b.Payment.Status),
				RefundAmount:       b.Payment.RefundAmount,
			}
			if err := tx.Create(pm).Error; err != nil {
				return err
			}
		}

		for _, id := range discountIDs {
			res := tx.Model(&domain.Discount{}).
				Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", id).
				Update("usage_count", gorm.Expr("usage_count + 1"))
			if res.Error != nil {
				return res.Error
			}
			// Cap reached between pricing and persist. Roll everything back
			// so the charged price never includes an unaccounted discount.
			if res.RowsAffected == 0 {
				return ErrDiscountExhausted
			}
		}

		payment := b.Payment
		*b = *toDomainBooking(m)
		if pm != nil {
			b.Payment = toDomainPayment(*pm)
		} else {
			b.Payment = payment
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	b := toDomainBooking(m)

	var pm paymentModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", id).First(&pm).Error; err == nil {
		b.Payment = toDomainPayment(pm)
	}
	return b, nil
}

// FindActiveForWorkstation returns the ACTIVE bookings of a workstation
// ordered by start time. Cancelled bookings never conflict and are excluded
// at the query level.
func (r *BookingRepository) FindActiveForWorkstation(ctx context.Context, workstationID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("workstation_id = ? AND status = ?", workstationID, string(domain.BookingActive)).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

type BusySlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r *BookingRepository) GetBusySlots(ctx context.Context, workstationID int64, from, to time.Time) ([]BusySlot, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("workstation_id = ? AND status = ?", workstationID, string(domain.BookingActive)).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]BusySlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, BusySlot{Start: m.StartTime, End: m.EndTime})
	}
	return out, nil
}

type UserBookingDetails struct {
	ID                 int64     `gorm:"column:id" json:"id"`
	Status             string    `gorm:"column:status" json:"status"`
	StartTime          time.Time `gorm:"column:start_time" json:"start_time"`
	EndTime            time.Time `gorm:"column:end_time" json:"end_time"`
	DurationTier       string    `gorm:"column:duration_tier" json:"duration_tier"`
	BasePrice          float64   `gorm:"column:base_price" json:"base_price"`
	DiscountPercentage float64   `gorm:"column:discount_percentage" json:"discount_percentage"`
	FinalPrice         float64   `gorm:"column:final_price" json:"final_price"`
	WorkstationID      int64     `gorm:"column:workstation_id" json:"workstation_id"`
	WorkstationLabel   string    `gorm:"column:workstation_label" json:"workstation_label"`
	CenterID           int64     `gorm:"column:center_id" json:"center_id"`
	CenterName         string    `gorm:"column:center_name" json:"center_name"`
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]UserBookingDetails, error) {
	var rows []UserBookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id, bookings.status, bookings.start_time, bookings.end_time,
			bookings.duration_tier, bookings.base_price, bookings.discount_percentage, bookings.final_price,
			bookings.workstation_id, workstations.label AS workstation_label,
			bookings.center_id, coworking_centers.name AS center_name`).
		Joins("JOIN workstations ON workstations.id = bookings.workstation_id").
		Joins("JOIN coworking_centers ON coworking_centers.id = bookings.center_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.start_time DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) GetByCenterID(ctx context.Context, centerID int64) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("center_id = ?", centerID).
		Order("start_time DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// Cancel marks the booking cancelled and settles its payment with the refund
// the engine computed.
func (r *BookingRepository) Cancel(ctx context.Context, bookingID int64, reason string, refundAmount float64, payStatus domain.PaymentStatus, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":       string(domain.BookingCancelled),
			"cancelled_at": now,
		}
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
		if err := tx.Model(&bookingModel{}).Where("id = ?", bookingID).Updates(updates).Error; err != nil {
			return err
		}

		return tx.Model(&paymentModel{}).
			Where("booking_id = ?", bookingID).
			Updates(map[string]any{
				"status":        string(payStatus),
				"refund_amount": refundAmount,
			}).Error
	})
}

type CenterStats struct {
	TotalBookings     int64   `json:"total_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	Revenue           float64 `json:"revenue"`
	Refunded          float64 `json:"refunded"`
}

// Stats aggregates bookings and settled payments, optionally per center
// (centerID = 0 means platform-wide).
func (r *BookingRepository) Stats(ctx context.Context, centerID int64) (*CenterStats, error) {
	var s CenterStats

	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if centerID > 0 {
		q = q.Where("center_id = ?", centerID)
	}
	if err := q.Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}

	q = r.db.WithContext(ctx).Model(&bookingModel{}).Where("status = ?", string(domain.BookingCancelled))
	if centerID > 0 {
		q = q.Where("center_id = ?", centerID)
	}
	if err := q.Count(&s.CancelledBookings).Error; err != nil {
		return nil, err
	}

	rev := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Select("COALESCE(SUM(payments.final_price - payments.refund_amount), 0)")
	if centerID > 0 {
		rev = rev.Where("bookings.center_id = ?", centerID)
	}
	if err := rev.Scan(&s.Revenue).Error; err != nil {
		return nil, err
	}

	ref := r.db.WithContext(ctx).
		Table("payments").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Where("payments.status = ?", string(domain.PaymentRefunded)).
		Select("COALESCE(SUM(payments.refund_amount), 0)")
	if centerID > 0 {
		ref = ref.Where("bookings.center_id = ?", centerID)
	}
	if err := ref.Scan(&s.Refunded).Error; err != nil {
		return nil, err
	}

	return &s, nil
}
