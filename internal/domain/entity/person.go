package entity

import (
	"time"

	"github.com/google/uuid"
)

const RoleDonor = "donor"

// Person represents a registered donor. Donors reference their hospital by
// (hospital, city) rather than by lid. There is no update-in-place for
// donors; changes follow a remove + re-add pattern.
type Person struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PID              string     `gorm:"column:pid;type:varchar(20);uniqueIndex;not null" json:"pid"`
	FirstName        string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName         string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Age              int        `gorm:"not null" json:"age"`
	Role             string     `gorm:"type:varchar(20);not null;index" json:"role"`
	Hospital         string     `gorm:"type:varchar(255);not null;index:idx_persons_hospital_city" json:"hospital"`
	City             string     `gorm:"type:varchar(255);not null;index:idx_persons_hospital_city" json:"city"`
	BloodType        string     `gorm:"type:varchar(3);not null;index" json:"blood_type"`
	WeightLBS        int        `gorm:"column:weight_lbs" json:"weight_lbs"`
	HeightIN         int        `gorm:"column:height_in" json:"height_in"`
	Gender           string     `gorm:"type:varchar(1)" json:"gender"`
	NextSafeDonation *time.Time `json:"next_safe_donation,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Person) TableName() string {
	return "persons"
}
