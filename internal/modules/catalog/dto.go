package catalog

type CreateCenterRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
}

type UpdateCenterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	OpenTime    *string `json:"open_time"`
	CloseTime   *string `json:"close_time"`
	IsActive    *bool   `json:"is_active"`
}

type CreateFloorRequest struct {
	CenterID int64  `json:"center_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Level    int    `json:"level"`
	GridRows int    `json:"grid_rows" binding:"required,gt=0"`
	GridCols int    `json:"grid_cols" binding:"required,gt=0"`
}

type UpdateFloorRequest struct {
	Name     *string `json:"name"`
	Level    *int    `json:"level"`
	GridRows *int    `json:"grid_rows"`
	GridCols *int    `json:"grid_cols"`
}

type CreateWorkstationRequest struct {
	FloorID     int64  `json:"floor_id" binding:"required"`
	Label       string `json:"label" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
	Capacity    int    `json:"capacity"`
	PosRow      int    `json:"pos_row"`
	PosCol      int    `json:"pos_col"`

	BasePricePerHour  *float64 `json:"base_price_per_hour"`
	BasePricePerDay   *float64 `json:"base_price_per_day"`
	BasePricePerWeek  *float64 `json:"base_price_per_week"`
	BasePricePerMonth *float64 `json:"base_price_per_month"`
}

type UpdateWorkstationRequest struct {
	Label       *string `json:"label"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
	PosRow      *int    `json:"pos_row"`
	PosCol      *int    `json:"pos_col"`

	BasePricePerHour  *float64 `json:"base_price_per_hour"`
	BasePricePerDay   *float64 `json:"base_price_per_day"`
	BasePricePerWeek  *float64 `json:"base_price_per_week"`
	BasePricePerMonth *float64 `json:"base_price_per_month"`

	IsActive *bool `json:"is_active"`
}

type CreateInventoryRequest struct {
	CenterID      int64  `json:"center_id" binding:"required"`
	WorkstationID *int64 `json:"workstation_id"`
	Name          string `json:"name" binding:"required"`
	Category      string `json:"category"`
	Quantity      int    `json:"quantity" binding:"required,gt=0"`
	Condition     string `json:"condition"`
}

type UpdateInventoryRequest struct {
	WorkstationID *int64  `json:"workstation_id"`
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	Quantity      *int    `json:"quantity"`
	Condition     *string `json:"condition"`
}
