package repository

import (
	"errors"

	"blood-network-backend/internal/domain/entity"
	domainRepo "blood-network-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalAccountRepository struct{}

func NewHospitalAccountRepository() domainRepo.HospitalAccountRepository {
	return &hospitalAccountRepository{}
}

func (r *hospitalAccountRepository) Create(db *gorm.DB, account *entity.HospitalAccount) error {
	return db.Create(account).Error
}

func (r *hospitalAccountRepository) FindByLID(db *gorm.DB, lid string) (*entity.HospitalAccount, error) {
	var account entity.HospitalAccount
	err := db.Where("lid = ?", lid).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
