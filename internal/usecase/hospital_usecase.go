package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/domain/repository"
	"blood-network-backend/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound      = errors.New("hospital not found")
	ErrHospitalAlreadyExists = errors.New("hospital already exists")
)

type HospitalUsecase interface {
	CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	GetHospitalData(ctx context.Context) (*dto.HospitalDataListResponse, error)
	GetHospitalDataWithLocation(ctx context.Context) (*dto.HospitalDataWithLocationListResponse, error)
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locationRepo repository.LocationRepository
	accountRepo  repository.HospitalAccountRepository
	statsRepo    repository.StatsRepository
	statsUsecase StatsUsecase
	cache        service.StatsCache
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	accountRepo repository.HospitalAccountRepository,
	statsRepo repository.StatsRepository,
	statsUsecase StatsUsecase,
	cache service.StatsCache,
) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		locationRepo: locationRepo,
		accountRepo:  accountRepo,
		statsRepo:    statsRepo,
		statsUsecase: statsUsecase,
		cache:        cache,
	}
}

// CreateHospital registers a location with its credential and optional
// per-blood-type flag defaults, then rebuilds the derived view so the new
// hospital immediately has a complete stats record.
func (u *hospitalUsecase) CreateHospital(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	for bt := range req.FlagSettings {
		if !entity.IsValidBloodType(bt) {
			return nil, ErrInvalidBloodType
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	lid, err := u.locationRepo.NextLID(tx)
	if err != nil {
		u.log.Warnf("Failed to allocate lid: %+v", err)
		return nil, err
	}

	lat, lon := req.Coordinates.Lat, req.Coordinates.Lon
	location := &entity.Location{
		LID:          lid,
		Name:         req.Name,
		City:         req.City,
		LocationCode: "HOSP",
		Lat:          &lat,
		Lon:          &lon,
	}
	for _, bt := range entity.BloodTypes {
		setting, ok := req.FlagSettings[bt]
		if !ok {
			continue
		}
		location.FlagDefaults = append(location.FlagDefaults, entity.FlagDefault{
			LID:       lid,
			BloodType: bt,
			Surplus:   setting.Surplus,
			Shortage:  setting.Shortage,
		})
	}

	if err := u.locationRepo.Create(tx, location); err != nil {
		if isDuplicateKeyError(err, "name_city") {
			return nil, ErrHospitalAlreadyExists
		}
		u.log.Warnf("Failed to create location: %+v", err)
		return nil, err
	}

	account := &entity.HospitalAccount{
		LID:          lid,
		PasswordHash: string(hashedPassword),
	}
	if err := u.accountRepo.Create(tx, account); err != nil {
		u.log.Warnf("Failed to create hospital account: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit hospital creation: %+v", err)
		return nil, err
	}

	if _, err := u.statsUsecase.RebuildStats(ctx); err != nil {
		u.log.Warnf("Failed to rebuild stats after hospital creation: %+v", err)
		return nil, err
	}

	return &dto.HospitalResponse{
		LID:          location.LID,
		Name:         location.Name,
		City:         location.City,
		LocationCode: location.LocationCode,
		Lat:          lat,
		Lon:          lon,
	}, nil
}

// GetHospitalData returns the complete per-hospital blood-type matrix,
// read through the cache.
func (u *hospitalUsecase) GetHospitalData(ctx context.Context) (*dto.HospitalDataListResponse, error) {
	if payload, ok := u.cache.Get(ctx, service.StatsViewKey); ok {
		var cached dto.HospitalDataListResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := u.statsRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load stats: %+v", err)
		return nil, err
	}

	hospitals := groupBloodData(stats)
	resp := &dto.HospitalDataListResponse{Hospitals: hospitals, Total: len(hospitals)}

	if payload, err := json.Marshal(resp); err == nil {
		u.cache.Set(ctx, service.StatsViewKey, payload)
	}
	return resp, nil
}

// GetHospitalDataWithLocation is GetHospitalData plus coordinates, for
// map-style consumers.
func (u *hospitalUsecase) GetHospitalDataWithLocation(ctx context.Context) (*dto.HospitalDataWithLocationListResponse, error) {
	if payload, ok := u.cache.Get(ctx, service.StatsViewWithLocationKey); ok {
		var cached dto.HospitalDataWithLocationListResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	db := u.db.WithContext(ctx)
	stats, err := u.statsRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load stats: %+v", err)
		return nil, err
	}
	locations, err := u.locationRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load locations: %+v", err)
		return nil, err
	}
	coords := make(map[[2]string]*entity.Location, len(locations))
	for i := range locations {
		coords[[2]string{locations[i].Name, locations[i].City}] = &locations[i]
	}

	grouped := groupBloodData(stats)
	hospitals := make([]dto.HospitalDataWithLocationResponse, len(grouped))
	for i, h := range grouped {
		hospitals[i] = dto.HospitalDataWithLocationResponse{
			Hospital:  h.Hospital,
			City:      h.City,
			BloodData: h.BloodData,
		}
		if loc, ok := coords[[2]string{h.Hospital, h.City}]; ok {
			hospitals[i].Lat = loc.Lat
			hospitals[i].Lon = loc.Lon
		}
	}

	resp := &dto.HospitalDataWithLocationListResponse{Hospitals: hospitals, Total: len(hospitals)}
	if payload, err := json.Marshal(resp); err == nil {
		u.cache.Set(ctx, service.StatsViewWithLocationKey, payload)
	}
	return resp, nil
}

func groupBloodData(stats []entity.BloodTypeStat) []dto.HospitalDataResponse {
	var hospitals []dto.HospitalDataResponse
	index := make(map[[2]string]int)

	for _, s := range stats {
		key := [2]string{s.Hospital, s.City}
		i, ok := index[key]
		if !ok {
			hospitals = append(hospitals, dto.HospitalDataResponse{
				Hospital: s.Hospital,
				City:     s.City,
			})
			i = len(hospitals) - 1
			index[key] = i
		}
		hospitals[i].BloodData = append(hospitals[i].BloodData, dto.BloodTypeDataResponse{
			BloodType:     s.BloodType,
			DonorCount:    s.DonorCount,
			TotalVolumeCC: s.TotalVolumeCC,
			Surplus:       s.Surplus,
			Shortage:      s.Shortage,
		})
	}

	return hospitals
}
