package repository

import (
	"blood-network-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalAccountRepository interface {
	Create(db *gorm.DB, account *entity.HospitalAccount) error
	FindByLID(db *gorm.DB, lid string) (*entity.HospitalAccount, error)
}
