package repository

import (
	"blood-network-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(db *gorm.DB, person *entity.Person) error
	FindByPID(db *gorm.DB, pid string) (*entity.Person, error)
	DeleteDonorByPID(db *gorm.DB, pid string) (int64, error)
	FindDonors(db *gorm.DB) ([]entity.Person, error)
	FindDonorsByBloodType(db *gorm.DB, bloodType string) ([]entity.Person, error)
}
