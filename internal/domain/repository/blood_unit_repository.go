package repository

import (
	"blood-network-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// InventoryByType is one row of a per-location availability summary.
type InventoryByType struct {
	BloodType     string `json:"blood_type"`
	TotalVolumeCC int    `json:"total_volume_cc"`
}

type BloodUnitRepository interface {
	CreateBatch(db *gorm.DB, units []entity.BloodUnit) error
	Count(db *gorm.DB) (int64, error)
	FindAllAvailable(db *gorm.DB) ([]entity.BloodUnit, error)
	FindAvailableByLocationAndType(db *gorm.DB, lid, bloodType string, limit int) ([]entity.BloodUnit, error)
	MarkUnavailable(db *gorm.DB, ids []string) error
	SummarizeAvailableByLocation(db *gorm.DB, lid string) ([]InventoryByType, error)
}
