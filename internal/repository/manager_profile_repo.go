package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type ManagerProfileRepository struct {
	db *gorm.DB
}

func NewManagerProfileRepository(db *gorm.DB) *ManagerProfileRepository {
	return &ManagerProfileRepository{db: db}
}

func (r *ManagerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.ManagerProfile, error) {
	var p domain.ManagerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ManagerProfileRepository) Update(ctx context.Context, p *domain.ManagerProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}
