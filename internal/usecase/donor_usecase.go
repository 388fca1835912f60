package usecase

import (
	"context"
	"errors"
	"time"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDonorAlreadyExists  = errors.New("donor already exists")
	ErrDonorNotFound       = errors.New("donor not found")
	ErrInvalidDonationDate = errors.New("invalid next safe donation date, use YYYY-MM-DD")
)

type DonorUsecase interface {
	AddDonor(ctx context.Context, req *dto.AddDonorRequest) (*dto.DonorResponse, error)
	RemoveDonor(ctx context.Context, pid string) error
}

type donorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	personRepo   repository.PersonRepository
	statsUsecase StatsUsecase
}

func NewDonorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	personRepo repository.PersonRepository,
	statsUsecase StatsUsecase,
) DonorUsecase {
	return &donorUsecase{
		db:           db,
		log:          log,
		personRepo:   personRepo,
		statsUsecase: statsUsecase,
	}
}

// AddDonor registers a donor and rebuilds the derived view. The referenced
// hospital is not validated here: a donor pointing at an unknown hospital
// is simply excluded from aggregation.
func (u *donorUsecase) AddDonor(ctx context.Context, req *dto.AddDonorRequest) (*dto.DonorResponse, error) {
	var nextSafeDonation *time.Time
	if req.NextSafeDonation != "" {
		parsed, err := time.Parse("2006-01-02", req.NextSafeDonation)
		if err != nil {
			return nil, ErrInvalidDonationDate
		}
		nextSafeDonation = &parsed
	}

	person := &entity.Person{
		ID:               uuid.New(),
		PID:              req.PID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Age:              req.Age,
		Role:             entity.RoleDonor,
		Hospital:         req.Hospital,
		City:             req.City,
		BloodType:        req.BloodType,
		WeightLBS:        req.WeightLBS,
		HeightIN:         req.HeightIN,
		Gender:           req.Gender,
		NextSafeDonation: nextSafeDonation,
	}

	if err := u.personRepo.Create(u.db.WithContext(ctx), person); err != nil {
		if isDuplicateKeyError(err, "pid") {
			return nil, ErrDonorAlreadyExists
		}
		u.log.Warnf("Failed to create donor: %+v", err)
		return nil, err
	}

	if _, err := u.statsUsecase.RebuildStats(ctx); err != nil {
		u.log.Warnf("Failed to rebuild stats after adding donor: %+v", err)
		return nil, err
	}

	return &dto.DonorResponse{
		PID:              person.PID,
		FirstName:        person.FirstName,
		LastName:         person.LastName,
		Age:              person.Age,
		Hospital:         person.Hospital,
		City:             person.City,
		BloodType:        person.BloodType,
		NextSafeDonation: person.NextSafeDonation,
		CreatedAt:        person.CreatedAt,
	}, nil
}

// RemoveDonor deletes a donor by pid and rebuilds the derived view.
func (u *donorUsecase) RemoveDonor(ctx context.Context, pid string) error {
	rows, err := u.personRepo.DeleteDonorByPID(u.db.WithContext(ctx), pid)
	if err != nil {
		u.log.Warnf("Failed to delete donor: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrDonorNotFound
	}

	if _, err := u.statsUsecase.RebuildStats(ctx); err != nil {
		u.log.Warnf("Failed to rebuild stats after removing donor: %+v", err)
		return err
	}

	return nil
}
