package catalog

import (
	"context"

	"coworking/internal/domain"
	"coworking/internal/repository"
)

type CenterRepositoryInterface interface {
	GetAll(ctx context.Context, f repository.CenterFilters) ([]domain.CoworkingCenter, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.CoworkingCenter, error)
	GetByManagerID(ctx context.Context, managerID int64) ([]domain.CoworkingCenter, error)
	Create(ctx context.Context, center *domain.CoworkingCenter) error
	Update(ctx context.Context, center *domain.CoworkingCenter) error
	SetActive(ctx context.Context, id int64, active bool) error
}

type FloorRepositoryInterface interface {
	Create(ctx context.Context, f *domain.Floor) error
	Update(ctx context.Context, f *domain.Floor) error
	GetByID(ctx context.Context, id int64) (*domain.Floor, error)
	GetByCenterID(ctx context.Context, centerID int64) ([]domain.Floor, error)
	Delete(ctx context.Context, id int64) error
}

type WorkstationRepositoryInterface interface {
	Create(ctx context.Context, w *domain.Workstation) error
	Update(ctx context.Context, w *domain.Workstation) error
	GetByID(ctx context.Context, id int64) (*domain.Workstation, error)
	GetByFloorID(ctx context.Context, floorID int64) ([]domain.Workstation, error)
	GetByCenterID(ctx context.Context, centerID int64) ([]domain.Workstation, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type InventoryRepositoryInterface interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	GetByCenterID(ctx context.Context, centerID int64) ([]domain.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
