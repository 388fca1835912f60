package usecase

import (
	"context"
	"testing"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func delta(v int) *int { return &v }

func TestAdjustInventory_AddUnits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", nil, nil)

	resp, err := env.inventory.AdjustInventory(ctx, &dto.AdjustInventoryRequest{
		Hospital:  "Central Medical Center",
		City:      "Boston, MA",
		BloodType: "A+",
		Delta:     delta(3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Added)
	assert.Zero(t, resp.Removed)

	var units []entity.BloodUnit
	require.NoError(t, env.db.Where("lid = ?", "L0001").Order("bbid").Find(&units).Error)
	require.Len(t, units, 3)
	for _, unit := range units {
		assert.Equal(t, entity.DefaultUnitVolumeCC, unit.QuantityCC)
		assert.Equal(t, entity.DonationTypeWholeBlood, unit.DonationType)
		assert.Equal(t, "A+", unit.BloodType)
		assert.True(t, unit.Available)
	}
	assert.Equal(t, "NEW1", units[0].BBID)
	assert.Equal(t, "NEW2", units[1].BBID)
	assert.Equal(t, "NEW3", units[2].BBID)

	// The derived view reflects the adjustment immediately.
	aPlus := env.statRow(t, "Central Medical Center", "Boston, MA", "A+")
	assert.Equal(t, 3*entity.DefaultUnitVolumeCC, aPlus.TotalVolumeCC)

	require.Len(t, resp.CurrentInventory, 1)
	assert.Equal(t, "A+", resp.CurrentInventory[0].BloodType)
	assert.Equal(t, 3*entity.DefaultUnitVolumeCC, resp.CurrentInventory[0].TotalVolumeCC)
}

func TestAdjustInventory_RemoveMarksUnavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", nil, nil)
	env.seedUnit(t, "BB0001", "L0001", "O-", 500, true)
	env.seedUnit(t, "BB0002", "L0001", "O-", 500, true)
	env.seedUnit(t, "BB0003", "L0001", "O-", 500, true)

	resp, err := env.inventory.AdjustInventory(ctx, &dto.AdjustInventoryRequest{
		Hospital:  "Central Medical Center",
		City:      "Boston, MA",
		BloodType: "O-",
		Delta:     delta(-2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Removed)

	// Units are retained, not deleted.
	var total, available int64
	require.NoError(t, env.db.Model(&entity.BloodUnit{}).Count(&total).Error)
	require.NoError(t, env.db.Model(&entity.BloodUnit{}).Where("available = ?", true).Count(&available).Error)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), available)

	oNeg := env.statRow(t, "Central Medical Center", "Boston, MA", "O-")
	assert.Equal(t, 500, oNeg.TotalVolumeCC)
}

func TestAdjustInventory_InsufficientStockIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", nil, nil)
	env.seedUnit(t, "BB0001", "L0001", "AB-", 500, true)

	_, err := env.inventory.AdjustInventory(ctx, &dto.AdjustInventoryRequest{
		Hospital:  "Central Medical Center",
		City:      "Boston, MA",
		BloodType: "AB-",
		Delta:     delta(-3),
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Requested)
	assert.Equal(t, 1, stockErr.Available)

	// Nothing was removed.
	var available int64
	require.NoError(t, env.db.Model(&entity.BloodUnit{}).Where("available = ?", true).Count(&available).Error)
	assert.Equal(t, int64(1), available)
}

func TestAdjustInventory_ZeroDeltaIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", nil, nil)
	env.seedUnit(t, "BB0001", "L0001", "B+", 450, true)

	resp, err := env.inventory.AdjustInventory(ctx, &dto.AdjustInventoryRequest{
		Hospital:  "Central Medical Center",
		City:      "Boston, MA",
		BloodType: "B+",
		Delta:     delta(0),
	})
	require.NoError(t, err)
	assert.Zero(t, resp.Added)
	assert.Zero(t, resp.Removed)

	var total int64
	require.NoError(t, env.db.Model(&entity.BloodUnit{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestAdjustInventory_UnknownHospital(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.AdjustInventory(context.Background(), &dto.AdjustInventoryRequest{
		Hospital:  "Nowhere General",
		City:      "Atlantis",
		BloodType: "A+",
		Delta:     delta(1),
	})
	assert.ErrorIs(t, err, ErrHospitalNotFound)
}

func TestAdjustInventory_InvalidBloodType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.inventory.AdjustInventory(context.Background(), &dto.AdjustInventoryRequest{
		Hospital:  "Central Medical Center",
		City:      "Boston, MA",
		BloodType: "C+",
		Delta:     delta(1),
	})
	assert.ErrorIs(t, err, ErrInvalidBloodType)
}
