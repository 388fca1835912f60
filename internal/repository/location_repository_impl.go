package repository

import (
	"errors"
	"fmt"

	"blood-network-backend/internal/domain/entity"
	domainRepo "blood-network-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type locationRepository struct{}

func NewLocationRepository() domainRepo.LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Create(db *gorm.DB, location *entity.Location) error {
	return db.Create(location).Error
}

func (r *locationRepository) FindByNameAndCity(db *gorm.DB, name, city string) (*entity.Location, error) {
	var location entity.Location
	err := db.Preload("FlagDefaults").Where("name = ? AND city = ?", name, city).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindByLID(db *gorm.DB, lid string) (*entity.Location, error) {
	var location entity.Location
	err := db.Where("lid = ?", lid).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindAll(db *gorm.DB) ([]entity.Location, error) {
	var locations []entity.Location
	err := db.Preload("FlagDefaults").Find(&locations).Error
	return locations, err
}

func (r *locationRepository) NextLID(db *gorm.DB) (string, error) {
	var count int64
	if err := db.Model(&entity.Location{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("L%04d", count+1), nil
}
