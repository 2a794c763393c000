package domain

import (
	"strings"
	"time"
)

// Weekday is a lowercase English weekday name, used as a set on discounts.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

func ParseWeekday(s string) (Weekday, bool) {
	switch Weekday(strings.ToLower(strings.TrimSpace(s))) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return Weekday(strings.ToLower(strings.TrimSpace(s))), true
	}
	return "", false
}

type WeekdayList []Weekday

func (l WeekdayList) Contains(d Weekday) bool {
	for _, v := range l {
		if v == d {
			return true
		}
	}
	return false
}

// Discount is a globally scoped, independently eligible percentage discount.
// Multiple eligible discounts stack by summing percentages; each discount's
// absolute contribution is clamped to its own MaxDiscountAmount.
type Discount struct {
	ID                int64       `json:"id"`
	Name              string      `json:"name" validate:"required"`
	Percentage        float64     `json:"percentage" validate:"required,gt=0,lte=100"`
	MaxDiscountAmount *float64    `json:"max_discount_amount,omitempty"`
	UsageLimit        *int        `json:"usage_limit,omitempty"`
	UsageCount        int         `json:"usage_count"`
	StartDate         time.Time   `json:"start_date"`
	EndDate           time.Time   `json:"end_date"`
	ApplicableDays    WeekdayList `json:"applicable_days" gorm:"serializer:json"`
	ApplicableHours   *string     `json:"applicable_hours,omitempty"`
	IsActive          bool        `json:"is_active"`
	Priority          int         `json:"priority"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// EligibleAt reports whether the discount applies to a booking starting at t.
// The validity window compares calendar dates inclusively (time of day is
// ignored), the weekday must be a member of ApplicableDays, and the clock
// window, when set, is inclusive at both ends.
func (d *Discount) EligibleAt(t time.Time) bool {
	if !d.IsActive {
		return false
	}
	day := dateOnly(t)
	if day.Before(dateOnly(d.StartDate)) || day.After(dateOnly(d.EndDate)) {
		return false
	}
	if !d.ApplicableDays.Contains(WeekdayOf(t)) {
		return false
	}
	if d.ApplicableHours != nil {
		from, to, ok := parseClockWindow(*d.ApplicableHours)
		if !ok {
			return false
		}
		clock := t.Hour()*60 + t.Minute()
		if clock < from || clock > to {
			return false
		}
	}
	if d.UsageLimit != nil && d.UsageCount >= *d.UsageLimit {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseClockWindow parses "HH:MM-HH:MM" into minutes-of-day bounds.
func parseClockWindow(s string) (from, to int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	ft, err1 := time.Parse("15:04", strings.TrimSpace(parts[0]))
	tt, err2 := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return ft.Hour()*60 + ft.Minute(), tt.Hour()*60 + tt.Minute(), true
}
