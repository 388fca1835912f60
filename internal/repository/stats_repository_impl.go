package repository

import (
	"blood-network-backend/internal/domain/entity"
	domainRepo "blood-network-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type statsRepository struct{}

func NewStatsRepository() domainRepo.StatsRepository {
	return &statsRepository{}
}

func (r *statsRepository) FindAll(db *gorm.DB) ([]entity.BloodTypeStat, error) {
	var stats []entity.BloodTypeStat
	err := db.Order("hospital, city, blood_type").Find(&stats).Error
	return stats, err
}

func (r *statsRepository) FindByHospitalAndCity(db *gorm.DB, hospital, city string) ([]entity.BloodTypeStat, error) {
	var stats []entity.BloodTypeStat
	err := db.Where("hospital = ? AND city = ?", hospital, city).
		Order("blood_type").
		Find(&stats).Error
	return stats, err
}

func (r *statsRepository) FindByFlag(db *gorm.DB, bloodType string, surplus, shortage bool) ([]entity.BloodTypeStat, error) {
	query := db.Where("blood_type = ?", bloodType)
	if surplus {
		query = query.Where("surplus = ?", true)
	}
	if shortage {
		query = query.Where("shortage = ?", true)
	}
	var stats []entity.BloodTypeStat
	err := query.Find(&stats).Error
	return stats, err
}

// ReplaceAll swaps the entire derived view. Callers must run it inside a
// transaction so no partial view is ever observable.
func (r *statsRepository) ReplaceAll(db *gorm.DB, stats []entity.BloodTypeStat) error {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.BloodTypeStat{}).Error; err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}
	return db.Create(&stats).Error
}

func (r *statsRepository) UpdateFlags(db *gorm.DB, hospital, city, bloodType string, updates map[string]interface{}) (int64, error) {
	result := db.Model(&entity.BloodTypeStat{}).
		Where("hospital = ? AND city = ? AND blood_type = ?", hospital, city, bloodType).
		Updates(updates)
	return result.RowsAffected, result.Error
}
