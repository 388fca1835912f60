package dto

// DonorStatResponse mirrors one entry of a stats record's donor list.
type DonorStatResponse struct {
	BloodType  string `json:"blood_type"`
	DonorCount int    `json:"donor_count"`
	Surplus    bool   `json:"surplus"`
	Shortage   bool   `json:"shortage"`
}

// InventoryStatResponse mirrors one entry of a stats record's inventory list.
type InventoryStatResponse struct {
	BloodType     string `json:"blood_type"`
	TotalVolumeCC int    `json:"total_volume_cc"`
}

// StatsRecordResponse is the derived view for one hospital: two parallel
// blood-type-keyed lists, each complete over the canonical types.
type StatsRecordResponse struct {
	Hospital       string                  `json:"hospital"`
	City           string                  `json:"city"`
	BloodTypeStats []DonorStatResponse     `json:"blood_type_stats"`
	InventoryStats []InventoryStatResponse `json:"inventory_stats"`
}

type StatsListResponse struct {
	Records []StatsRecordResponse `json:"records"`
	Total   int                   `json:"total"`
}

// UpdateFlagRequest is a partial update: nil fields are left unchanged.
type UpdateFlagRequest struct {
	Hospital  string `json:"hospital" validate:"required"`
	City      string `json:"city" validate:"required"`
	BloodType string `json:"blood_type" validate:"required,bloodtype"`
	Surplus   *bool  `json:"surplus,omitempty"`
	Shortage  *bool  `json:"shortage,omitempty"`
}
