package discount

import (
	"time"

	"coworking/internal/domain"
)

type CreateDiscountRequest struct {
	Name              string    `json:"name" binding:"required"`
	Percentage        float64   `json:"percentage" binding:"required,gt=0,lte=100"`
	MaxDiscountAmount *float64  `json:"max_discount_amount"`
	UsageLimit        *int      `json:"usage_limit"`
	StartDate         time.Time `json:"start_date" binding:"required"`
	EndDate           time.Time `json:"end_date" binding:"required"`
	ApplicableDays    []string  `json:"applicable_days" binding:"required,min=1"`
	ApplicableHours   *string   `json:"applicable_hours"`
	Priority          int       `json:"priority"`
}

type UpdateDiscountRequest struct {
	Name              *string    `json:"name"`
	Percentage        *float64   `json:"percentage"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	ApplicableDays    []string   `json:"applicable_days"`
	ApplicableHours   *string    `json:"applicable_hours"`
	Priority          *int       `json:"priority"`
	IsActive          *bool      `json:"is_active"`
}

// EligiblePreview is one discount that would apply to a booking starting at
// the previewed instant.
type EligiblePreview struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Percentage        float64  `json:"percentage"`
	MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	Priority          int      `json:"priority"`
}

type ListResponse struct {
	Discounts []domain.Discount `json:"discounts"`
	Total     int64             `json:"total"`
}
