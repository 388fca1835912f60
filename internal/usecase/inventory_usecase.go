package usecase

import (
	"context"
	"errors"
	"fmt"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidBloodType = errors.New("invalid blood type")

// InsufficientStockError reports a removal request that exceeds the
// available units. Nothing is removed when it is returned.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

type InventoryUsecase interface {
	AdjustInventory(ctx context.Context, req *dto.AdjustInventoryRequest) (*dto.AdjustInventoryResponse, error)
}

type inventoryUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	locationRepo  repository.LocationRepository
	bloodUnitRepo repository.BloodUnitRepository
	statsUsecase  StatsUsecase
}

func NewInventoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	bloodUnitRepo repository.BloodUnitRepository,
	statsUsecase StatsUsecase,
) InventoryUsecase {
	return &inventoryUsecase{
		db:            db,
		log:           log,
		locationRepo:  locationRepo,
		bloodUnitRepo: bloodUnitRepo,
		statsUsecase:  statsUsecase,
	}
}

// AdjustInventory applies a signed delta to a hospital's inventory of one
// blood type. Positive deltas create fresh default-volume units; negative
// deltas mark existing available units unavailable, all-or-nothing. The
// derived stats view is always rebuilt afterwards so matcher queries see
// the new baseline.
func (u *inventoryUsecase) AdjustInventory(ctx context.Context, req *dto.AdjustInventoryRequest) (*dto.AdjustInventoryResponse, error) {
	if !entity.IsValidBloodType(req.BloodType) {
		return nil, ErrInvalidBloodType
	}
	delta := *req.Delta

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.locationRepo.FindByNameAndCity(tx, req.Hospital, req.City)
	if err != nil {
		u.log.Warnf("Failed to find location: %+v", err)
		return nil, err
	}
	if location == nil {
		return nil, ErrHospitalNotFound
	}

	var added, removed int
	switch {
	case delta > 0:
		count, err := u.bloodUnitRepo.Count(tx)
		if err != nil {
			u.log.Warnf("Failed to count blood units: %+v", err)
			return nil, err
		}
		units := make([]entity.BloodUnit, delta)
		for i := range units {
			units[i] = entity.BloodUnit{
				ID:           uuid.New(),
				BBID:         fmt.Sprintf("NEW%d", count+int64(i)+1),
				LID:          location.LID,
				DonationType: entity.DonationTypeWholeBlood,
				QuantityCC:   entity.DefaultUnitVolumeCC,
				BloodType:    req.BloodType,
				Available:    true,
			}
		}
		if err := u.bloodUnitRepo.CreateBatch(tx, units); err != nil {
			u.log.Warnf("Failed to create blood units: %+v", err)
			return nil, err
		}
		added = delta

	case delta < 0:
		need := -delta
		units, err := u.bloodUnitRepo.FindAvailableByLocationAndType(tx, location.LID, req.BloodType, need)
		if err != nil {
			u.log.Warnf("Failed to find available blood units: %+v", err)
			return nil, err
		}
		if len(units) < need {
			return nil, &InsufficientStockError{Requested: need, Available: len(units)}
		}
		ids := make([]string, len(units))
		for i, unit := range units {
			ids[i] = unit.ID.String()
		}
		if err := u.bloodUnitRepo.MarkUnavailable(tx, ids); err != nil {
			u.log.Warnf("Failed to mark blood units unavailable: %+v", err)
			return nil, err
		}
		removed = need

	default:
		// delta == 0 is a valid no-op.
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed to commit inventory adjustment: %+v", err)
		return nil, err
	}

	if _, err := u.statsUsecase.RebuildStats(ctx); err != nil {
		u.log.Warnf("Failed to rebuild stats after inventory adjustment: %+v", err)
		return nil, err
	}

	summary, err := u.bloodUnitRepo.SummarizeAvailableByLocation(u.db.WithContext(ctx), location.LID)
	if err != nil {
		u.log.Warnf("Failed to summarize inventory: %+v", err)
		return nil, err
	}

	current := make([]dto.InventoryStatResponse, len(summary))
	for i, row := range summary {
		current[i] = dto.InventoryStatResponse{
			BloodType:     row.BloodType,
			TotalVolumeCC: row.TotalVolumeCC,
		}
	}

	return &dto.AdjustInventoryResponse{
		Hospital:         req.Hospital,
		City:             req.City,
		BloodType:        req.BloodType,
		Delta:            delta,
		Added:            added,
		Removed:          removed,
		CurrentInventory: current,
	}, nil
}
