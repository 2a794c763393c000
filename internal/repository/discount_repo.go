package repository

import (
	"context"

	"gorm.io/gorm"

	"coworking/internal/domain"
)

type DiscountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) *DiscountRepository {
	return &DiscountRepository{db: db}
}

func (r *DiscountRepository) Create(ctx context.Context, d *domain.Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DiscountRepository) Update(ctx context.Context, d *domain.Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DiscountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Discount{}, id).Error
}

func (r *DiscountRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Discount{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *DiscountRepository) GetByID(ctx context.Context, id int64) (*domain.Discount, error) {
	var d domain.Discount
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListActive returns active discounts ordered by priority descending.
// Eligibility for a concrete start instant is decided by the caller.
func (r *DiscountRepository) ListActive(ctx context.Context) ([]domain.Discount, error) {
	var ds []domain.Discount
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC, id ASC").
		Find(&ds).Error
	return ds, err
}

func (r *DiscountRepository) List(ctx context.Context, limit, offset int) ([]domain.Discount, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Discount{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ds []domain.Discount
	err := r.db.WithContext(ctx).
		Order("priority DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&ds).Error
	return ds, total, err
}
