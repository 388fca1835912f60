package repository

import (
	"blood-network-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type StatsRepository interface {
	FindAll(db *gorm.DB) ([]entity.BloodTypeStat, error)
	FindByHospitalAndCity(db *gorm.DB, hospital, city string) ([]entity.BloodTypeStat, error)
	FindByFlag(db *gorm.DB, bloodType string, surplus, shortage bool) ([]entity.BloodTypeStat, error)
	ReplaceAll(db *gorm.DB, stats []entity.BloodTypeStat) error
	UpdateFlags(db *gorm.DB, hospital, city, bloodType string, updates map[string]interface{}) (int64, error)
}
