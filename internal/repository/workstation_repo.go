package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type WorkstationRepository struct {
	db *gorm.DB
}

func NewWorkstationRepository(db *gorm.DB) *WorkstationRepository {
	return &WorkstationRepository{db: db}
}

func (r *WorkstationRepository) Create(ctx context.Context, w *domain.Workstation) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *WorkstationRepository) Update(ctx context.Context, w *domain.Workstation) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *WorkstationRepository) GetByID(ctx context.Context, id int64) (*domain.Workstation, error) {
	var w domain.Workstation
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkstationRepository) GetByFloorID(ctx context.Context, floorID int64) ([]domain.Workstation, error) {
	var ws []domain.Workstation
	err := r.db.WithContext(ctx).
		Where("floor_id = ? AND is_active = ?", floorID, true).
		Order("pos_row ASC, pos_col ASC").
		Find(&ws).Error
	return ws, err
}

func (r *WorkstationRepository) GetByCenterID(ctx context.Context, centerID int64) ([]domain.Workstation, error) {
	var ws []domain.Workstation
	err := r.db.WithContext(ctx).
		Where("center_id = ? AND is_active = ?", centerID, true).
		Find(&ws).Error
	return ws, err
}

func (r *WorkstationRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Workstation{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
