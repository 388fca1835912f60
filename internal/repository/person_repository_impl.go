package repository

import (
	"errors"

	"blood-network-backend/internal/domain/entity"
	domainRepo "blood-network-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type personRepository struct{}

func NewPersonRepository() domainRepo.PersonRepository {
	return &personRepository{}
}

func (r *personRepository) Create(db *gorm.DB, person *entity.Person) error {
	return db.Create(person).Error
}

func (r *personRepository) FindByPID(db *gorm.DB, pid string) (*entity.Person, error) {
	var person entity.Person
	err := db.Where("pid = ?", pid).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) DeleteDonorByPID(db *gorm.DB, pid string) (int64, error) {
	result := db.Where("pid = ? AND role = ?", pid, entity.RoleDonor).Delete(&entity.Person{})
	return result.RowsAffected, result.Error
}

func (r *personRepository) FindDonors(db *gorm.DB) ([]entity.Person, error) {
	var persons []entity.Person
	err := db.Where("role = ?", entity.RoleDonor).Find(&persons).Error
	return persons, err
}

func (r *personRepository) FindDonorsByBloodType(db *gorm.DB, bloodType string) ([]entity.Person, error) {
	var persons []entity.Person
	err := db.Where("role = ? AND blood_type = ?", entity.RoleDonor, bloodType).Find(&persons).Error
	return persons, err
}
