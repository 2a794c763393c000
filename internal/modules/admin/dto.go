package admin

import (
	"time"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

type RejectManagerRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type BanUserRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PendingManager pairs the user account with the submitted company profile.
type PendingManager struct {
	User    domain.User            `json:"user"`
	Profile *domain.ManagerProfile `json:"profile,omitempty"`
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

type PlatformStats struct {
	TotalUsers      int64                  `json:"total_users"`
	TotalManagers   int64                  `json:"total_managers"`
	PendingManagers int64                  `json:"pending_managers"`
	Bookings        repository.CenterStats `json:"bookings"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
