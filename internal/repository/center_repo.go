package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type CenterFilters struct {
	City            string
	WorkstationType string
	MinPrice        float64
	Limit           int
	Offset          int
}

type CenterRepository struct {
	db *gorm.DB
}

func NewCenterRepository(db *gorm.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

func (r *CenterRepository) DB() *gorm.DB { return r.db }

// GetAll returns active centers with optional filters.
func (r *CenterRepository) GetAll(ctx context.Context, f CenterFilters) ([]domain.CoworkingCenter, int64, error) {
	var centers []domain.CoworkingCenter
	var total int64

	q := r.db.WithContext(ctx).
		Model(&domain.CoworkingCenter{}).
		Where("deleted_at IS NULL AND is_active = ?", true)

	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}

	if f.WorkstationType != "" || f.MinPrice > 0 {
		q = q.Joins("JOIN workstations ON workstations.center_id = coworking_centers.id AND workstations.is_active = ?", true).
			Distinct("coworking_centers.*")
	}

	if f.WorkstationType != "" {
		q = q.Where("workstations.type = ?", f.WorkstationType)
	}

	if f.MinPrice > 0 {
		q = q.Where(
			"COALESCE(workstations.base_price_per_hour, workstations.base_price_per_day, 0) >= ?",
			f.MinPrice,
		)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.
		Preload("Floors").
		Preload("Floors.Workstations", "is_active = ?", true).
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&centers).Error

	return centers, total, err
}

func (r *CenterRepository) GetByID(ctx context.Context, id int64) (*domain.CoworkingCenter, error) {
	var center domain.CoworkingCenter

	err := r.db.WithContext(ctx).
		Where("coworking_centers.id = ? AND deleted_at IS NULL", id).
		Preload("Floors").
		Preload("Floors.Workstations", "is_active = ?", true).
		Preload("Floors.Workstations.Inventory").
		First(&center).Error
	if err != nil {
		return nil, err
	}

	return &center, nil
}

func (r *CenterRepository) GetByManagerID(ctx context.Context, managerID int64) ([]domain.CoworkingCenter, error) {
	var centers []domain.CoworkingCenter
	err := r.db.WithContext(ctx).
		Where("manager_id = ? AND deleted_at IS NULL", managerID).
		Preload("Floors").
		Find(&centers).Error
	return centers, err
}

func (r *CenterRepository) Create(ctx context.Context, center *domain.CoworkingCenter) error {
	return r.db.WithContext(ctx).Create(center).Error
}

func (r *CenterRepository) Update(ctx context.Context, center *domain.CoworkingCenter) error {
	return r.db.WithContext(ctx).Save(center).Error
}

func (r *CenterRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.CoworkingCenter{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
