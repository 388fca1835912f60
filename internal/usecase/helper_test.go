package usecase

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/repository"
	"blood-network-backend/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	stats     StatsUsecase
	hospitals HospitalUsecase
	donors    DonorUsecase
	inventory InventoryUsecase
	matching  MatchingUsecase
}

var testDBCounter atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache in-memory database so every pooled connection
	// sees the same data, isolated per test.
	dsn := fmt.Sprintf("file:usecase_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Location{},
		&entity.FlagDefault{},
		&entity.HospitalAccount{},
		&entity.Person{},
		&entity.BloodUnit{},
		&entity.BloodTypeStat{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	locationRepo := repository.NewLocationRepository()
	accountRepo := repository.NewHospitalAccountRepository()
	personRepo := repository.NewPersonRepository()
	bloodUnitRepo := repository.NewBloodUnitRepository()
	statsRepo := repository.NewStatsRepository()
	cache := service.NoopStatsCache{}

	stats := NewStatsUsecase(db, log, locationRepo, personRepo, bloodUnitRepo, statsRepo, cache)

	return &testEnv{
		db:        db,
		stats:     stats,
		hospitals: NewHospitalUsecase(db, log, locationRepo, accountRepo, statsRepo, stats, cache),
		donors:    NewDonorUsecase(db, log, personRepo, stats),
		inventory: NewInventoryUsecase(db, log, locationRepo, bloodUnitRepo, stats),
		matching:  NewMatchingUsecase(db, log, locationRepo, personRepo, statsRepo),
	}
}

func coord(v float64) *float64 { return &v }

func (e *testEnv) seedLocation(t *testing.T, lid, name, city string, lat, lon *float64) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.Location{
		LID:  lid,
		Name: name,
		City: city,
		Lat:  lat,
		Lon:  lon,
	}).Error)
}

func (e *testEnv) seedDonor(t *testing.T, pid, hospital, city, bloodType string) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.Person{
		ID:        uuid.New(),
		PID:       pid,
		FirstName: "Test",
		LastName:  "Donor",
		Age:       30,
		Role:      entity.RoleDonor,
		Hospital:  hospital,
		City:      city,
		BloodType: bloodType,
	}).Error)
}

func (e *testEnv) seedUnit(t *testing.T, bbid, lid, bloodType string, quantityCC int, available bool) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.BloodUnit{
		ID:           uuid.New(),
		BBID:         bbid,
		LID:          lid,
		DonationType: entity.DonationTypeWholeBlood,
		QuantityCC:   quantityCC,
		BloodType:    bloodType,
		Available:    available,
		CreatedAt:    time.Now(),
	}).Error)
}

func (e *testEnv) statRow(t *testing.T, hospital, city, bloodType string) entity.BloodTypeStat {
	t.Helper()
	var row entity.BloodTypeStat
	err := e.db.Where("hospital = ? AND city = ? AND blood_type = ?", hospital, city, bloodType).
		First(&row).Error
	require.NoError(t, err)
	return row
}
