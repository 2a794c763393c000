package catalog

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"coworking/internal/domain"
	"coworking/internal/pkg/validator"
	"coworking/internal/repository"
)

// Service owns the manager-facing catalog: centers, floor layouts,
// workstations and inventory. Write operations require an approved manager
// who owns the touched center.
type Service struct {
	centers      CenterRepositoryInterface
	floors       FloorRepositoryInterface
	workstations WorkstationRepositoryInterface
	inventory    InventoryRepositoryInterface
	users        UserReader
}

func NewService(
	centers CenterRepositoryInterface,
	floors FloorRepositoryInterface,
	workstations WorkstationRepositoryInterface,
	inventory InventoryRepositoryInterface,
	users UserReader,
) *Service {
	return &Service{
		centers:      centers,
		floors:       floors,
		workstations: workstations,
		inventory:    inventory,
		users:        users,
	}
}

// --- public catalog ---

func (s *Service) ListCenters(ctx context.Context, f repository.CenterFilters) ([]domain.CoworkingCenter, int64, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return s.centers.GetAll(ctx, f)
}

func (s *Service) GetCenter(ctx context.Context, id int64) (*domain.CoworkingCenter, error) {
	center, err := s.centers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return center, nil
}

// --- centers ---

func (s *Service) CreateCenter(ctx context.Context, managerID int64, req CreateCenterRequest) (*domain.CoworkingCenter, error) {
	if err := s.requireApprovedManager(ctx, managerID); err != nil {
		return nil, err
	}

	center := &domain.CoworkingCenter{
		ManagerID:   managerID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		Email:       req.Email,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		IsActive:    true,
	}

	if errs := validator.Validate(center); errs != nil {
		return nil, ErrValidation
	}

	if err := s.centers.Create(ctx, center); err != nil {
		return nil, err
	}
	return center, nil
}

func (s *Service) UpdateCenter(ctx context.Context, managerID, centerID int64, req UpdateCenterRequest) (*domain.CoworkingCenter, error) {
	center, err := s.ownedCenter(ctx, managerID, centerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		center.Name = *req.Name
	}
	if req.Description != nil {
		center.Description = *req.Description
	}
	if req.Address != nil {
		center.Address = *req.Address
	}
	if req.City != nil {
		center.City = *req.City
	}
	if req.Phone != nil {
		center.Phone = *req.Phone
	}
	if req.Email != nil {
		center.Email = *req.Email
	}
	if req.OpenTime != nil {
		center.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		center.CloseTime = *req.CloseTime
	}
	if req.IsActive != nil {
		center.IsActive = *req.IsActive
	}

	if err := s.centers.Update(ctx, center); err != nil {
		return nil, err
	}
	return center, nil
}

// DeleteCenter soft-deletes: the row stays for booking history, the center
// disappears from listings.
func (s *Service) DeleteCenter(ctx context.Context, managerID, centerID int64) error {
	center, err := s.ownedCenter(ctx, managerID, centerID)
	if err != nil {
		return err
	}

	now := time.Now()
	center.IsActive = false
	center.DeletedAt = &now
	return s.centers.Update(ctx, center)
}

func (s *Service) MyCenters(ctx context.Context, managerID int64) ([]domain.CoworkingCenter, error) {
	return s.centers.GetByManagerID(ctx, managerID)
}

// --- floors ---

func (s *Service) CreateFloor(ctx context.Context, managerID int64, req CreateFloorRequest) (*domain.Floor, error) {
	if _, err := s.ownedCenter(ctx, managerID, req.CenterID); err != nil {
		return nil, err
	}

	floor := &domain.Floor{
		CenterID: req.CenterID,
		Name:     req.Name,
		Level:    req.Level,
		GridRows: req.GridRows,
		GridCols: req.GridCols,
	}

	if err := s.floors.Create(ctx, floor); err != nil {
		return nil, err
	}
	return floor, nil
}

func (s *Service) UpdateFloor(ctx context.Context, managerID, floorID int64, req UpdateFloorRequest) (*domain.Floor, error) {
	floor, err := s.ownedFloor(ctx, managerID, floorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		floor.Name = *req.Name
	}
	if req.Level != nil {
		floor.Level = *req.Level
	}
	if req.GridRows != nil {
		if *req.GridRows <= 0 {
			return nil, ErrValidation
		}
		floor.GridRows = *req.GridRows
	}
	if req.GridCols != nil {
		if *req.GridCols <= 0 {
			return nil, ErrValidation
		}
		floor.GridCols = *req.GridCols
	}

	// shrinking the grid must not orphan placed workstations
	for _, ws := range floor.Workstations {
		if ws.PosRow >= floor.GridRows || ws.PosCol >= floor.GridCols {
			return nil, ErrValidation
		}
	}

	if err := s.floors.Update(ctx, floor); err != nil {
		return nil, err
	}
	return floor, nil
}

func (s *Service) DeleteFloor(ctx context.Context, managerID, floorID int64) error {
	if _, err := s.ownedFloor(ctx, managerID, floorID); err != nil {
		return err
	}

	if err := s.floors.Delete(ctx, floorID); err != nil {
		if errors.Is(err, repository.ErrFloorNotEmpty) {
			return ErrFloorNotEmpty
		}
		return err
	}
	return nil
}

func (s *Service) ListFloors(ctx context.Context, centerID int64) ([]domain.Floor, error) {
	return s.floors.GetByCenterID(ctx, centerID)
}

// --- workstations ---

func (s *Service) CreateWorkstation(ctx context.Context, managerID int64, req CreateWorkstationRequest) (*domain.Workstation, error) {
	floor, err := s.ownedFloor(ctx, managerID, req.FloorID)
	if err != nil {
		return nil, err
	}

	wsType, err := domain.ParseWorkstationType(req.Type)
	if err != nil {
		return nil, ErrValidation
	}

	ws := &domain.Workstation{
		FloorID:           floor.ID,
		CenterID:          floor.CenterID,
		Label:             req.Label,
		Description:       req.Description,
		Type:              wsType,
		Capacity:          req.Capacity,
		PosRow:            req.PosRow,
		PosCol:            req.PosCol,
		BasePricePerHour:  req.BasePricePerHour,
		BasePricePerDay:   req.BasePricePerDay,
		BasePricePerWeek:  req.BasePricePerWeek,
		BasePricePerMonth: req.BasePricePerMonth,
		IsActive:          true,
	}

	if errs := validator.Validate(ws); errs != nil {
		return nil, ErrValidation
	}
	if err := validatePricing(ws); err != nil {
		return nil, err
	}
	if err := s.validatePlacement(floor, ws, 0); err != nil {
		return nil, err
	}

	if err := s.workstations.Create(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) UpdateWorkstation(ctx context.Context, managerID, wsID int64, req UpdateWorkstationRequest) (*domain.Workstation, error) {
	ws, err := s.ownedWorkstation(ctx, managerID, wsID)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		ws.Label = *req.Label
	}
	if req.Description != nil {
		ws.Description = *req.Description
	}
	if req.Capacity != nil {
		ws.Capacity = *req.Capacity
	}
	if req.PosRow != nil {
		ws.PosRow = *req.PosRow
	}
	if req.PosCol != nil {
		ws.PosCol = *req.PosCol
	}
	if req.BasePricePerHour != nil {
		ws.BasePricePerHour = req.BasePricePerHour
	}
	if req.BasePricePerDay != nil {
		ws.BasePricePerDay = req.BasePricePerDay
	}
	if req.BasePricePerWeek != nil {
		ws.BasePricePerWeek = req.BasePricePerWeek
	}
	if req.BasePricePerMonth != nil {
		ws.BasePricePerMonth = req.BasePricePerMonth
	}
	if req.IsActive != nil {
		ws.IsActive = *req.IsActive
	}

	if err := validatePricing(ws); err != nil {
		return nil, err
	}

	if req.PosRow != nil || req.PosCol != nil {
		floor, err := s.floors.GetByID(ctx, ws.FloorID)
		if err != nil {
			return nil, err
		}
		if err := s.validatePlacement(floor, ws, ws.ID); err != nil {
			return nil, err
		}
	}

	if err := s.workstations.Update(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) DeactivateWorkstation(ctx context.Context, managerID, wsID int64) error {
	if _, err := s.ownedWorkstation(ctx, managerID, wsID); err != nil {
		return err
	}
	return s.workstations.SetActive(ctx, wsID, false)
}

func (s *Service) ListWorkstations(ctx context.Context, floorID int64) ([]domain.Workstation, error) {
	return s.workstations.GetByFloorID(ctx, floorID)
}

// --- inventory ---

func (s *Service) CreateInventoryItem(ctx context.Context, managerID int64, req CreateInventoryRequest) (*domain.InventoryItem, error) {
	if _, err := s.ownedCenter(ctx, managerID, req.CenterID); err != nil {
		return nil, err
	}

	if req.WorkstationID != nil {
		ws, err := s.workstations.GetByID(ctx, *req.WorkstationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if ws.CenterID != req.CenterID {
			return nil, ErrValidation
		}
	}

	item := &domain.InventoryItem{
		CenterID:      req.CenterID,
		WorkstationID: req.WorkstationID,
		Name:          req.Name,
		Category:      req.Category,
		Quantity:      req.Quantity,
		Condition:     req.Condition,
	}

	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) UpdateInventoryItem(ctx context.Context, managerID, itemID int64, req UpdateInventoryRequest) (*domain.InventoryItem, error) {
	item, err := s.ownedInventoryItem(ctx, managerID, itemID)
	if err != nil {
		return nil, err
	}

	if req.WorkstationID != nil {
		ws, err := s.workstations.GetByID(ctx, *req.WorkstationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if ws.CenterID != item.CenterID {
			return nil, ErrValidation
		}
		item.WorkstationID = req.WorkstationID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, ErrValidation
		}
		item.Quantity = *req.Quantity
	}
	if req.Condition != nil {
		item.Condition = *req.Condition
	}

	if err := s.inventory.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteInventoryItem(ctx context.Context, managerID, itemID int64) error {
	if _, err := s.ownedInventoryItem(ctx, managerID, itemID); err != nil {
		return err
	}
	return s.inventory.Delete(ctx, itemID)
}

func (s *Service) ListInventory(ctx context.Context, managerID, centerID int64) ([]domain.InventoryItem, error) {
	if _, err := s.ownedCenter(ctx, managerID, centerID); err != nil {
		return nil, err
	}
	return s.inventory.GetByCenterID(ctx, centerID)
}

// --- access helpers ---

func (s *Service) requireApprovedManager(ctx context.Context, managerID int64) error {
	user, err := s.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrForbidden
		}
		return err
	}
	if user.Role == domain.RoleAdmin {
		return nil
	}
	if user.Role != domain.RoleManager || user.ManagerStatus != domain.ManagerApproved {
		return ErrManagerNotApproved
	}
	return nil
}

func (s *Service) ownedCenter(ctx context.Context, managerID, centerID int64) (*domain.CoworkingCenter, error) {
	if err := s.requireApprovedManager(ctx, managerID); err != nil {
		return nil, err
	}

	center, err := s.centers.GetByID(ctx, centerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if center.ManagerID != managerID {
		return nil, ErrForbidden
	}
	return center, nil
}

func (s *Service) ownedFloor(ctx context.Context, managerID, floorID int64) (*domain.Floor, error) {
	floor, err := s.floors.GetByID(ctx, floorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCenter(ctx, managerID, floor.CenterID); err != nil {
		return nil, err
	}
	return floor, nil
}

func (s *Service) ownedWorkstation(ctx context.Context, managerID, wsID int64) (*domain.Workstation, error) {
	ws, err := s.workstations.GetByID(ctx, wsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCenter(ctx, managerID, ws.CenterID); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) ownedInventoryItem(ctx context.Context, managerID, itemID int64) (*domain.InventoryItem, error) {
	item, err := s.inventory.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCenter(ctx, managerID, item.CenterID); err != nil {
		return nil, err
	}
	return item, nil
}

// validatePricing enforces that exactly one pricing family matches the
// workstation type: rooms are hourly, desks use day/week/month tiers.
func validatePricing(ws *domain.Workstation) error {
	hasDeskPrices := ws.BasePricePerDay != nil || ws.BasePricePerWeek != nil || ws.BasePricePerMonth != nil

	if ws.Type.IsRoom() {
		if hasDeskPrices {
			return ErrValidation
		}
		if ws.BasePricePerHour != nil && *ws.BasePricePerHour <= 0 {
			return ErrValidation
		}
		return nil
	}

	// desks require at least a daily price and never an hourly one
	if ws.BasePricePerHour != nil {
		return ErrValidation
	}
	if ws.BasePricePerDay == nil || *ws.BasePricePerDay <= 0 {
		return ErrValidation
	}
	if ws.BasePricePerWeek != nil && *ws.BasePricePerWeek <= 0 {
		return ErrValidation
	}
	if ws.BasePricePerMonth != nil && *ws.BasePricePerMonth <= 0 {
		return ErrValidation
	}
	return nil
}

// validatePlacement keeps the workstation inside the floor grid and off
// occupied cells. excludeID skips the workstation itself on updates.
func (s *Service) validatePlacement(floor *domain.Floor, ws *domain.Workstation, excludeID int64) error {
	if ws.PosRow < 0 || ws.PosRow >= floor.GridRows || ws.PosCol < 0 || ws.PosCol >= floor.GridCols {
		return ErrValidation
	}
	for _, other := range floor.Workstations {
		if other.ID == excludeID {
			continue
		}
		if other.PosRow == ws.PosRow && other.PosCol == ws.PosCol {
			return ErrPositionTaken
		}
	}
	return nil
}
