package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type FloorRepository struct {
	db *gorm.DB
}

func NewFloorRepository(db *gorm.DB) *FloorRepository {
	return &FloorRepository{db: db}
}

func (r *FloorRepository) Create(ctx context.Context, f *domain.Floor) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FloorRepository) Update(ctx context.Context, f *domain.Floor) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FloorRepository) GetByID(ctx context.Context, id int64) (*domain.Floor, error) {
	var f domain.Floor
	err := r.db.WithContext(ctx).
		Preload("Workstations", "is_active = ?", true).
		First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FloorRepository) GetByCenterID(ctx context.Context, centerID int64) ([]domain.Floor, error) {
	var floors []domain.Floor
	err := r.db.WithContext(ctx).
		Where("center_id = ?", centerID).
		Order("level ASC").
		Preload("Workstations", "is_active = ?", true).
		Find(&floors).Error
	return floors, err
}

// Delete removes an empty floor. Floors holding active workstations must be
// cleared first.
func (r *FloorRepository) Delete(ctx context.Context, id int64) error {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Workstation{}).
		Where("floor_id = ? AND is_active = ?", id, true).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return ErrFloorNotEmpty
	}
	return r.db.WithContext(ctx).Delete(&domain.Floor{}, id).Error
}
