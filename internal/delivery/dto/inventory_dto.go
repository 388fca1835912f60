package dto

type AdjustInventoryRequest struct {
	Hospital  string `json:"hospital" validate:"required"`
	City      string `json:"city" validate:"required"`
	BloodType string `json:"blood_type" validate:"required,bloodtype"`
	Delta     *int   `json:"delta" validate:"required"`
}

// AdjustInventoryResponse reports what actually happened: Added/Removed
// never silently diverge from the requested delta.
type AdjustInventoryResponse struct {
	Hospital         string                  `json:"hospital"`
	City             string                  `json:"city"`
	BloodType        string                  `json:"blood_type"`
	Delta            int                     `json:"delta"`
	Added            int                     `json:"added"`
	Removed          int                     `json:"removed"`
	CurrentInventory []InventoryStatResponse `json:"current_inventory"`
}
