package domain

import "time"

type CoworkingCenter struct {
	ID          int64      `json:"id"`
	ManagerID   int64      `json:"manager_id"`
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description,omitempty"`
	Address     string     `json:"address" validate:"required"`
	City        string     `json:"city" validate:"required"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	OpenTime    string     `json:"open_time,omitempty"`
	CloseTime   string     `json:"close_time,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`

	Floors []Floor `json:"floors,omitempty" gorm:"foreignKey:CenterID"`
}

// Floor is a layout level of a center. The grid dimensions bound the
// workstation positions placed on it.
type Floor struct {
	ID        int64     `json:"id"`
	CenterID  int64     `json:"center_id"`
	Name      string    `json:"name" validate:"required"`
	Level     int       `json:"level"`
	GridRows  int       `json:"grid_rows" validate:"gt=0"`
	GridCols  int       `json:"grid_cols" validate:"gt=0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Workstations []Workstation `json:"workstations,omitempty" gorm:"foreignKey:FloorID"`
}
