package seed

import (
	"context"
	"fmt"
	"time"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSeedPassword = "pass123"

type seedHospital struct {
	name string
	city string
	lat  float64
	lon  float64
}

var seedHospitals = []seedHospital{
	{"Central Medical Center", "Boston, MA", 42.3601, -71.0589},
	{"General Hospital 1", "Los Angeles, CA", 34.0522, -118.2437},
	{"City Hospital 1", "New York, NY", 40.7128, -74.0060},
	{"Regional Medical Center", "Chicago, IL", 41.8781, -87.6298},
	{"Health Clinic", "Houston, TX", 29.7604, -95.3698},
}

type seedDonor struct {
	pid       string
	firstName string
	lastName  string
	age       int
	hospital  string
	city      string
	bloodType string
	weightLBS int
	heightIN  int
	gender    string
	nextSafe  string
}

var seedDonors = []seedDonor{
	{"P0000001", "Alice", "Smith", 30, "Central Medical Center", "Boston, MA", "A+", 150, 65, "F", "2025-08-01"},
	{"P0000002", "Bob", "Jones", 40, "Central Medical Center", "Boston, MA", "O+", 180, 70, "M", "2025-09-01"},
	{"P0000003", "Charlie", "Brown", 35, "General Hospital 1", "Los Angeles, CA", "B+", 175, 68, "M", "2025-10-01"},
	{"P0000004", "Diana", "Prince", 28, "City Hospital 1", "New York, NY", "AB-", 135, 64, "F", "2025-11-01"},
	{"P0000005", "Edward", "Norton", 50, "Regional Medical Center", "Chicago, IL", "O-", 200, 72, "M", "2025-12-01"},
	{"P0000006", "Fiona", "Apple", 33, "Health Clinic", "Houston, TX", "AB+", 140, 63, "F", "2025-07-01"},
}

// demoFlags marks one shortage and three surpluses for A+ so the matching
// endpoints return results out of the box.
type demoFlag struct {
	hospital string
	city     string
	surplus  bool
	shortage bool
}

var demoFlags = []demoFlag{
	{"General Hospital 1", "Los Angeles, CA", false, true},
	{"Central Medical Center", "Boston, MA", true, false},
	{"City Hospital 1", "New York, NY", true, false},
	{"Health Clinic", "Houston, TX", true, false},
}

// Run populates an empty database with demo hospitals, donors and inventory,
// then rebuilds the derived stats view and applies demo flags. It is a no-op
// when locations already exist.
func Run(db *gorm.DB, log *logrus.Logger, statsUsecase usecase.StatsUsecase) error {
	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&entity.Location{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing locations: %w", err)
	}
	if count > 0 {
		log.Info("Seed skipped: locations already present")
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedLocations(tx); err != nil {
			return err
		}
		if err := seedPersons(tx); err != nil {
			return err
		}
		return seedInventory(tx)
	})
	if err != nil {
		return fmt.Errorf("failed to seed raw records: %w", err)
	}

	if _, err := statsUsecase.RebuildStats(ctx); err != nil {
		return fmt.Errorf("failed to rebuild stats after seeding: %w", err)
	}

	for _, f := range demoFlags {
		surplus, shortage := f.surplus, f.shortage
		req := &dto.UpdateFlagRequest{
			Hospital:  f.hospital,
			City:      f.city,
			BloodType: "A+",
			Surplus:   &surplus,
			Shortage:  &shortage,
		}
		if err := statsUsecase.SetFlag(ctx, req); err != nil {
			return fmt.Errorf("failed to set demo flag for %s: %w", f.hospital, err)
		}
	}

	log.Infof("Seed complete: %d hospitals, %d donors, %d blood units",
		len(seedHospitals), len(seedDonors), len(seedHospitals)*entity.BloodTypeCount)
	return nil
}

func seedLocations(tx *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultSeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i, h := range seedHospitals {
		lat, lon := h.lat, h.lon
		location := entity.Location{
			LID:  fmt.Sprintf("L%04d", i+1),
			Name: h.name,
			City: h.city,
			Lat:  &lat,
			Lon:  &lon,
		}
		if err := tx.Create(&location).Error; err != nil {
			return err
		}

		account := entity.HospitalAccount{
			LID:          location.LID,
			PasswordHash: string(hashed),
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedPersons(tx *gorm.DB) error {
	for _, d := range seedDonors {
		nextSafe, err := time.Parse("2006-01-02", d.nextSafe)
		if err != nil {
			return err
		}
		person := entity.Person{
			ID:               uuid.New(),
			PID:              d.pid,
			FirstName:        d.firstName,
			LastName:         d.lastName,
			Age:              d.age,
			Role:             entity.RoleDonor,
			Hospital:         d.hospital,
			City:             d.city,
			BloodType:        d.bloodType,
			WeightLBS:        d.weightLBS,
			HeightIN:         d.heightIN,
			Gender:           d.gender,
			NextSafeDonation: &nextSafe,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedInventory creates one 500cc unit per blood type at every hospital.
func seedInventory(tx *gorm.DB) error {
	units := make([]entity.BloodUnit, 0, len(seedHospitals)*entity.BloodTypeCount)
	counter := 1
	for i := range seedHospitals {
		lid := fmt.Sprintf("L%04d", i+1)
		for _, bt := range entity.BloodTypes {
			units = append(units, entity.BloodUnit{
				ID:           uuid.New(),
				BBID:         fmt.Sprintf("BB%04d", counter),
				LID:          lid,
				DonationType: entity.DonationTypeWholeBlood,
				QuantityCC:   500,
				BloodType:    bt,
				Available:    true,
			})
			counter++
		}
	}
	return tx.Create(&units).Error
}
