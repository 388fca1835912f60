package repository

import (
	"blood-network-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(db *gorm.DB, location *entity.Location) error
	FindByNameAndCity(db *gorm.DB, name, city string) (*entity.Location, error)
	FindByLID(db *gorm.DB, lid string) (*entity.Location, error)
	FindAll(db *gorm.DB) ([]entity.Location, error)
	NextLID(db *gorm.DB) (string, error)
}
