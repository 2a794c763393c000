package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

// Service holds the admin operations: manager moderation, user bans and
// platform-wide statistics.
type Service struct {
	users    UserRepositoryInterface
	profiles ManagerProfileRepositoryInterface
	bookings BookingStatsReader
	now      func() time.Time
}

func NewService(users UserRepositoryInterface, profiles ManagerProfileRepositoryInterface, bookings BookingStatsReader) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		bookings: bookings,
		now:      time.Now,
	}
}

func (s *Service) ListPendingManagers(ctx context.Context, limit, offset int) ([]PendingManager, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.users.List(ctx, repository.UserFilters{
		Role:          string(domain.RoleManager),
		ManagerStatus: string(domain.ManagerPending),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]PendingManager, 0, len(users))
	for _, u := range users {
		u.PasswordHash = ""
		pm := PendingManager{User: u}
		if profile, err := s.profiles.GetByUserID(ctx, u.ID); err == nil {
			pm.Profile = profile
		}
		out = append(out, pm)
	}
	return out, total, nil
}

// ApproveManager moves a pending manager to approved and stamps the profile.
func (s *Service) ApproveManager(ctx context.Context, adminID, managerID int64) (*domain.User, error) {
	user, err := s.manager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if user.ManagerStatus != domain.ManagerPending {
		return nil, ErrInvalidState
	}

	user.ManagerStatus = domain.ManagerApproved
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if profile, err := s.profiles.GetByUserID(ctx, managerID); err == nil {
		now := s.now()
		profile.ApprovedAt = &now
		profile.ApprovedBy = &adminID
		profile.RejectedReason = ""
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) RejectManager(ctx context.Context, managerID int64, reason string) (*domain.User, error) {
	if reason == "" {
		return nil, ErrValidation
	}

	user, err := s.manager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if user.ManagerStatus != domain.ManagerPending {
		return nil, ErrInvalidState
	}

	user.ManagerStatus = domain.ManagerRejected
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if profile, err := s.profiles.GetByUserID(ctx, managerID); err == nil {
		profile.RejectedReason = reason
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) BanUser(ctx context.Context, userID int64, reason string) (*domain.User, error) {
	if reason == "" {
		return nil, ErrValidation
	}

	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, ErrInvalidState
	}

	now := s.now()
	user.IsBanned = true
	user.BannedAt = &now
	user.BanReason = reason
	if user.Role == domain.RoleManager {
		user.ManagerStatus = domain.ManagerBlocked
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) UnbanUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, ErrInvalidState
	}

	user.IsBanned = false
	user.BannedAt = nil
	user.BanReason = ""
	if user.Role == domain.RoleManager && user.ManagerStatus == domain.ManagerBlocked {
		user.ManagerStatus = domain.ManagerApproved
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) ListUsers(ctx context.Context, role string, banned *bool, limit, offset int) (*UserListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := s.users.List(ctx, repository.UserFilters{
		Role:   role,
		Banned: banned,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

// Stats aggregates platform-wide counters for the admin dashboard.
func (s *Service) Stats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{GeneratedAt: s.now()}

	_, totalUsers, err := s.users.List(ctx, repository.UserFilters{Limit: 1})
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = totalUsers

	managers, totalManagers, err := s.users.List(ctx, repository.UserFilters{
		Role:  string(domain.RoleManager),
		Limit: 1000,
	})
	if err != nil {
		return nil, err
	}
	stats.TotalManagers = totalManagers
	for _, m := range managers {
		if m.ManagerStatus == domain.ManagerPending {
			stats.PendingManagers++
		}
	}

	bookingStats, err := s.bookings.Stats(ctx, 0)
	if err != nil {
		return nil, err
	}
	stats.Bookings = *bookingStats

	return stats, nil
}

func (s *Service) user(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) manager(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleManager {
		return nil, ErrInvalidState
	}
	return user, nil
}
