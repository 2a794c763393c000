package admin

import (
	"context"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, f repository.UserFilters) ([]domain.User, int64, error)
}

type ManagerProfileRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ManagerProfile, error)
	Update(ctx context.Context, p *domain.ManagerProfile) error
}

type BookingStatsReader interface {
	Stats(ctx context.Context, centerID int64) (*repository.CenterStats, error)
}
