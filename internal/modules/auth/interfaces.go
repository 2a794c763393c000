package auth

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	CreateManagerWithProfile(ctx context.Context, u *domain.User, p *domain.ManagerProfile) error
	Update(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DB() *gorm.DB
}

type ManagerProfileRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.ManagerProfile, error)
}
