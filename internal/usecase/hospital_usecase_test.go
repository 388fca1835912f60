package usecase

import (
	"context"
	"testing"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCreateHospital(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.hospitals.CreateHospital(ctx, &dto.CreateHospitalRequest{
		Name:        "Central Medical Center",
		City:        "Boston, MA",
		Coordinates: &dto.CoordinatesRequest{Lat: 42.3601, Lon: -71.0589},
		Password:    "pass123",
	})
	require.NoError(t, err)
	assert.Equal(t, "L0001", resp.LID)
	assert.Equal(t, "HOSP", resp.LocationCode)

	// Credential is stored hashed.
	var account entity.HospitalAccount
	require.NoError(t, env.db.Where("lid = ?", "L0001").First(&account).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")))

	// The derived view is complete immediately after creation.
	var count int64
	require.NoError(t, env.db.Model(&entity.BloodTypeStat{}).Count(&count).Error)
	assert.Equal(t, int64(entity.BloodTypeCount), count)
}

func TestCreateHospital_SequentialLIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.hospitals.CreateHospital(ctx, &dto.CreateHospitalRequest{
		Name:        "Central Medical Center",
		City:        "Boston, MA",
		Coordinates: &dto.CoordinatesRequest{Lat: 42.3601, Lon: -71.0589},
		Password:    "pass123",
	})
	require.NoError(t, err)
	second, err := env.hospitals.CreateHospital(ctx, &dto.CreateHospitalRequest{
		Name:        "City Hospital 1",
		City:        "New York, NY",
		Coordinates: &dto.CoordinatesRequest{Lat: 40.7128, Lon: -74.0060},
		Password:    "pass123",
	})
	require.NoError(t, err)

	assert.Equal(t, "L0001", first.LID)
	assert.Equal(t, "L0002", second.LID)
}

func TestCreateHospital_FlagSettingsApplyToStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.hospitals.CreateHospital(ctx, &dto.CreateHospitalRequest{
		Name:        "Central Medical Center",
		City:        "Boston, MA",
		Coordinates: &dto.CoordinatesRequest{Lat: 42.3601, Lon: -71.0589},
		Password:    "pass123",
		FlagSettings: map[string]dto.FlagSettingRequest{
			"A+": {Surplus: true},
			"O-": {Shortage: true},
		},
	})
	require.NoError(t, err)

	aPlus := env.statRow(t, "Central Medical Center", "Boston, MA", "A+")
	assert.True(t, aPlus.Surplus)
	oNeg := env.statRow(t, "Central Medical Center", "Boston, MA", "O-")
	assert.True(t, oNeg.Shortage)
	bPlus := env.statRow(t, "Central Medical Center", "Boston, MA", "B+")
	assert.False(t, bPlus.Surplus)
	assert.False(t, bPlus.Shortage)
}

func TestCreateHospital_InvalidFlagSettingBloodType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.hospitals.CreateHospital(context.Background(), &dto.CreateHospitalRequest{
		Name:        "Central Medical Center",
		City:        "Boston, MA",
		Coordinates: &dto.CoordinatesRequest{Lat: 42.3601, Lon: -71.0589},
		Password:    "pass123",
		FlagSettings: map[string]dto.FlagSettingRequest{
			"C+": {Surplus: true},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidBloodType)
}

func TestGetHospitalData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", coord(42.3601), coord(-71.0589))
	env.seedDonor(t, "P0000001", "Central Medical Center", "Boston, MA", "A+")
	env.seedUnit(t, "BB0001", "L0001", "A+", 500, true)
	_, err := env.stats.RebuildStats(ctx)
	require.NoError(t, err)

	resp, err := env.hospitals.GetHospitalData(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	require.Len(t, resp.Hospitals[0].BloodData, entity.BloodTypeCount)

	var aPlus *dto.BloodTypeDataResponse
	for i := range resp.Hospitals[0].BloodData {
		if resp.Hospitals[0].BloodData[i].BloodType == "A+" {
			aPlus = &resp.Hospitals[0].BloodData[i]
		}
	}
	require.NotNil(t, aPlus)
	assert.Equal(t, 1, aPlus.DonorCount)
	assert.Equal(t, 500, aPlus.TotalVolumeCC)
}

func TestGetHospitalDataWithLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", coord(42.3601), coord(-71.0589))
	env.seedLocation(t, "L0002", "Health Clinic", "Houston, TX", nil, nil)
	_, err := env.stats.RebuildStats(ctx)
	require.NoError(t, err)

	resp, err := env.hospitals.GetHospitalDataWithLocation(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)

	byName := make(map[string]dto.HospitalDataWithLocationResponse)
	for _, h := range resp.Hospitals {
		byName[h.Hospital] = h
	}

	boston := byName["Central Medical Center"]
	require.NotNil(t, boston.Lat)
	assert.InDelta(t, 42.3601, *boston.Lat, 0.0001)

	houston := byName["Health Clinic"]
	assert.Nil(t, houston.Lat)
	assert.Nil(t, houston.Lon)
}
