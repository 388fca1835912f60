package usecase

import (
	"context"
	"errors"
	"fmt"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/domain/repository"
	"blood-network-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrStatsNotFound = errors.New("stats record not found")
	ErrNoFlagFields  = errors.New("at least one of surplus or shortage must be provided")
)

type StatsUsecase interface {
	RebuildStats(ctx context.Context) (*dto.StatsListResponse, error)
	GetStats(ctx context.Context, hospital, city string) (*dto.StatsRecordResponse, error)
	SetFlag(ctx context.Context, req *dto.UpdateFlagRequest) error
}

type statsUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	locationRepo  repository.LocationRepository
	personRepo    repository.PersonRepository
	bloodUnitRepo repository.BloodUnitRepository
	statsRepo     repository.StatsRepository
	cache         service.StatsCache
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	personRepo repository.PersonRepository,
	bloodUnitRepo repository.BloodUnitRepository,
	statsRepo repository.StatsRepository,
	cache service.StatsCache,
) StatsUsecase {
	return &statsUsecase{
		db:            db,
		log:           log,
		locationRepo:  locationRepo,
		personRepo:    personRepo,
		bloodUnitRepo: bloodUnitRepo,
		statsRepo:     statsRepo,
		cache:         cache,
	}
}

// RebuildStats recomputes the entire derived view from the raw records and
// replaces it in a single transaction, so the matcher can never observe a
// partial view. Donor counts and volumes are always recomputed from
// scratch; the surplus/shortage flags are carried over from, in priority
// order, the location's creation-time flag settings, then the prior view,
// then false.
func (u *statsUsecase) RebuildStats(ctx context.Context) (*dto.StatsListResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	locations, err := u.locationRepo.FindAll(tx)
	if err != nil {
		u.log.Warnf("Failed to load locations: %+v", err)
		return nil, err
	}
	donors, err := u.personRepo.FindDonors(tx)
	if err != nil {
		u.log.Warnf("Failed to load donors: %+v", err)
		return nil, err
	}
	units, err := u.bloodUnitRepo.FindAllAvailable(tx)
	if err != nil {
		u.log.Warnf("Failed to load blood units: %+v", err)
		return nil, err
	}
	prior, err := u.statsRepo.FindAll(tx)
	if err != nil {
		u.log.Warnf("Failed to load prior stats: %+v", err)
		return nil, err
	}

	stats, err := buildStats(locations, donors, units, prior)
	if err != nil {
		return nil, err
	}

	if err := u.statsRepo.ReplaceAll(tx, stats); err != nil {
		u.log.Warnf("Failed to replace stats view: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit stats rebuild: %+v", err)
		return nil, err
	}

	u.cache.Invalidate(ctx)

	records := statsToRecords(stats)
	return &dto.StatsListResponse{Records: records, Total: len(records)}, nil
}

func (u *statsUsecase) GetStats(ctx context.Context, hospital, city string) (*dto.StatsRecordResponse, error) {
	rows, err := u.statsRepo.FindByHospitalAndCity(u.db.WithContext(ctx), hospital, city)
	if err != nil {
		u.log.Warnf("Failed to load stats for %s, %s: %+v", hospital, city, err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrStatsNotFound
	}

	records := statsToRecords(rows)
	return &records[0], nil
}

// SetFlag applies a partial flag update: nil fields are left untouched.
// The stats row must already exist, which means stats have been rebuilt at
// least once since the hospital was created.
func (u *statsUsecase) SetFlag(ctx context.Context, req *dto.UpdateFlagRequest) error {
	updates := map[string]interface{}{}
	if req.Surplus != nil {
		updates["surplus"] = *req.Surplus
	}
	if req.Shortage != nil {
		updates["shortage"] = *req.Shortage
	}
	if len(updates) == 0 {
		return ErrNoFlagFields
	}

	rows, err := u.statsRepo.UpdateFlags(u.db.WithContext(ctx), req.Hospital, req.City, req.BloodType, updates)
	if err != nil {
		u.log.Warnf("Failed to update flags: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrStatsNotFound
	}

	u.cache.Invalidate(ctx)
	return nil
}

type statKey struct {
	hospital  string
	city      string
	bloodType string
}

type flagPair struct {
	surplus  bool
	shortage bool
}

// buildStats synthesizes the complete derived view: one row per canonical
// blood type per known location, zero-filled where no raw data exists.
// Donors referencing unknown hospitals are excluded from grouping rather
// than reported.
func buildStats(
	locations []entity.Location,
	donors []entity.Person,
	units []entity.BloodUnit,
	prior []entity.BloodTypeStat,
) ([]entity.BloodTypeStat, error) {
	known := make(map[[2]string]bool, len(locations))
	byLID := make(map[string]*entity.Location, len(locations))
	for i := range locations {
		known[[2]string{locations[i].Name, locations[i].City}] = true
		byLID[locations[i].LID] = &locations[i]
	}

	donorCounts := make(map[statKey]int)
	for _, d := range donors {
		if !known[[2]string{d.Hospital, d.City}] {
			continue
		}
		donorCounts[statKey{d.Hospital, d.City, d.BloodType}]++
	}

	volumes := make(map[statKey]int)
	for _, unit := range units {
		loc, ok := byLID[unit.LID]
		if !ok {
			continue
		}
		volumes[statKey{loc.Name, loc.City, unit.BloodType}] += unit.QuantityCC
	}

	priorFlags := make(map[statKey]flagPair, len(prior))
	for _, s := range prior {
		priorFlags[statKey{s.Hospital, s.City, s.BloodType}] = flagPair{s.Surplus, s.Shortage}
	}

	stats := make([]entity.BloodTypeStat, 0, len(locations)*entity.BloodTypeCount)
	for _, loc := range locations {
		defaults := make(map[string]flagPair, len(loc.FlagDefaults))
		for _, fd := range loc.FlagDefaults {
			defaults[fd.BloodType] = flagPair{fd.Surplus, fd.Shortage}
		}

		for _, bt := range entity.BloodTypes {
			key := statKey{loc.Name, loc.City, bt}
			flags, ok := defaults[bt]
			if !ok {
				flags = priorFlags[key]
			}
			stats = append(stats, entity.BloodTypeStat{
				Hospital:      loc.Name,
				City:          loc.City,
				BloodType:     bt,
				DonorCount:    donorCounts[key],
				TotalVolumeCC: volumes[key],
				Surplus:       flags.surplus,
				Shortage:      flags.shortage,
			})
		}
	}

	if len(stats) != len(locations)*entity.BloodTypeCount {
		return nil, fmt.Errorf("incomplete stats view: %d rows for %d locations", len(stats), len(locations))
	}

	return stats, nil
}

// statsToRecords groups flat stat rows into per-hospital records with the
// two parallel blood-type lists, preserving row order.
func statsToRecords(stats []entity.BloodTypeStat) []dto.StatsRecordResponse {
	var records []dto.StatsRecordResponse
	index := make(map[[2]string]int)

	for _, s := range stats {
		key := [2]string{s.Hospital, s.City}
		i, ok := index[key]
		if !ok {
			records = append(records, dto.StatsRecordResponse{
				Hospital: s.Hospital,
				City:     s.City,
			})
			i = len(records) - 1
			index[key] = i
		}
		records[i].BloodTypeStats = append(records[i].BloodTypeStats, dto.DonorStatResponse{
			BloodType:  s.BloodType,
			DonorCount: s.DonorCount,
			Surplus:    s.Surplus,
			Shortage:   s.Shortage,
		})
		records[i].InventoryStats = append(records[i].InventoryStats, dto.InventoryStatResponse{
			BloodType:     s.BloodType,
			TotalVolumeCC: s.TotalVolumeCC,
		})
	}

	return records
}
