package domain

import "time"

// InventoryItem is equipment tracked per center, optionally assigned to a
// specific workstation (monitor, docking station, whiteboard and so on).
type InventoryItem struct {
	ID            int64     `json:"id"`
	CenterID      int64     `json:"center_id"`
	WorkstationID *int64    `json:"workstation_id,omitempty"`
	Name          string    `json:"name" validate:"required"`
	Category      string    `json:"category,omitempty"`
	Quantity      int       `json:"quantity" validate:"required,gt=0"`
	Condition     string    `json:"condition,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
