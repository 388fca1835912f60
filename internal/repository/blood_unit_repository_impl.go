package repository

import (
	"blood-network-backend/internal/domain/entity"
	domainRepo "blood-network-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type bloodUnitRepository struct{}

func NewBloodUnitRepository() domainRepo.BloodUnitRepository {
	return &bloodUnitRepository{}
}

func (r *bloodUnitRepository) CreateBatch(db *gorm.DB, units []entity.BloodUnit) error {
	if len(units) == 0 {
		return nil
	}
	return db.Create(&units).Error
}

func (r *bloodUnitRepository) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.BloodUnit{}).Count(&count).Error
	return count, err
}

func (r *bloodUnitRepository) FindAllAvailable(db *gorm.DB) ([]entity.BloodUnit, error) {
	var units []entity.BloodUnit
	err := db.Where("available = ?", true).Find(&units).Error
	return units, err
}

// FindAvailableByLocationAndType orders by bbid so removal selection is
// deterministic within a single call.
func (r *bloodUnitRepository) FindAvailableByLocationAndType(db *gorm.DB, lid, bloodType string, limit int) ([]entity.BloodUnit, error) {
	var units []entity.BloodUnit
	err := db.Where("lid = ? AND blood_type = ? AND available = ?", lid, bloodType, true).
		Order("bbid").
		Limit(limit).
		Find(&units).Error
	return units, err
}

func (r *bloodUnitRepository) MarkUnavailable(db *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&entity.BloodUnit{}).Where("id IN ?", ids).Update("available", false).Error
}

func (r *bloodUnitRepository) SummarizeAvailableByLocation(db *gorm.DB, lid string) ([]domainRepo.InventoryByType, error) {
	var summary []domainRepo.InventoryByType
	err := db.Model(&entity.BloodUnit{}).
		Select("blood_type, SUM(quantity_cc) AS total_volume_cc").
		Where("lid = ? AND available = ?", lid, true).
		Group("blood_type").
		Order("blood_type").
		Scan(&summary).Error
	return summary, err
}
