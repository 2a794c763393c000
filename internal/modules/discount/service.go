package discount

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, d *domain.Discount) error
	Update(ctx context.Context, d *domain.Discount) error
	Delete(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	GetByID(ctx context.Context, id int64) (*domain.Discount, error)
	ListActive(ctx context.Context) ([]domain.Discount, error)
	List(ctx context.Context, limit, offset int) ([]domain.Discount, int64, error)
}

// Service is the admin-facing discount management plus the public
// eligibility preview.
type Service struct {
	discounts Repository
}

func NewService(discounts Repository) *Service {
	return &Service{discounts: discounts}
}

func (s *Service) Create(ctx context.Context, req CreateDiscountRequest) (*domain.Discount, error) {
	days, err := parseDays(req.ApplicableDays)
	if err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrValidation
	}
	if req.MaxDiscountAmount != nil && *req.MaxDiscountAmount <= 0 {
		return nil, ErrValidation
	}
	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		return nil, ErrValidation
	}

	d := &domain.Discount{
		Name:              req.Name,
		Percentage:        req.Percentage,
		MaxDiscountAmount: req.MaxDiscountAmount,
		UsageLimit:        req.UsageLimit,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		ApplicableDays:    days,
		ApplicableHours:   req.ApplicableHours,
		IsActive:          true,
		Priority:          req.Priority,
	}

	if err := s.discounts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateDiscountRequest) (*domain.Discount, error) {
	d, err := s.discounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Percentage != nil {
		if *req.Percentage <= 0 || *req.Percentage > 100 {
			return nil, ErrValidation
		}
		d.Percentage = *req.Percentage
	}
	if req.MaxDiscountAmount != nil {
		if *req.MaxDiscountAmount <= 0 {
			return nil, ErrValidation
		}
		d.MaxDiscountAmount = req.MaxDiscountAmount
	}
	if req.UsageLimit != nil {
		if *req.UsageLimit <= 0 {
			return nil, ErrValidation
		}
		d.UsageLimit = req.UsageLimit
	}
	if req.StartDate != nil {
		d.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		d.EndDate = *req.EndDate
	}
	if d.EndDate.Before(d.StartDate) {
		return nil, ErrValidation
	}
	if len(req.ApplicableDays) > 0 {
		days, err := parseDays(req.ApplicableDays)
		if err != nil {
			return nil, err
		}
		d.ApplicableDays = days
	}
	if req.ApplicableHours != nil {
		d.ApplicableHours = req.ApplicableHours
	}
	if req.Priority != nil {
		d.Priority = *req.Priority
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.discounts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.discounts.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.discounts.Delete(ctx, id)
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := s.discounts.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.discounts.SetActive(ctx, id, active)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	d, err := s.discounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]domain.Discount, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.discounts.List(ctx, limit, offset)
}

// PreviewEligible lists the discounts that would stack for a booking
// starting at the given instant, in application order.
func (s *Service) PreviewEligible(ctx context.Context, at time.Time) ([]EligiblePreview, error) {
	all, err := s.discounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]EligiblePreview, 0, len(all))
	for _, d := range all {
		if !d.EligibleAt(at) {
			continue
		}
		out = append(out, EligiblePreview{
			ID:                d.ID,
			Name:              d.Name,
			Percentage:        d.Percentage,
			MaxDiscountAmount: d.MaxDiscountAmount,
			Priority:          d.Priority,
		})
	}
	return out, nil
}

func parseDays(raw []string) (domain.WeekdayList, error) {
	days := make(domain.WeekdayList, 0, len(raw))
	for _, r := range raw {
		day, ok := domain.ParseWeekday(r)
		if !ok {
			return nil, ErrValidation
		}
		if days.Contains(day) {
			continue
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, ErrValidation
	}
	return days, nil
}
