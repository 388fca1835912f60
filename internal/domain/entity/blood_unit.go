package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultUnitVolumeCC is the volume assigned to units created through
	// inventory adjustments. Arbitrary positive volumes remain valid on
	// existing records.
	DefaultUnitVolumeCC = 450

	DonationTypeWholeBlood = "Whole Blood"
)

// BloodUnit is a single blood-bag-equivalent inventory record. Removal
// marks the unit unavailable instead of deleting it, preserving an audit
// trail.
type BloodUnit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BBID         string    `gorm:"column:bbid;type:varchar(20);uniqueIndex;not null" json:"bbid"`
	LID          string    `gorm:"column:lid;type:varchar(10);not null;index" json:"lid"`
	DonationType string    `gorm:"type:varchar(50);not null;default:'Whole Blood'" json:"donation_type"`
	QuantityCC   int       `gorm:"column:quantity_cc;not null" json:"quantity_cc"`
	BloodType    string    `gorm:"type:varchar(3);not null;index" json:"blood_type"`
	Available    bool      `gorm:"not null;default:true;index" json:"available"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Location Location `gorm:"foreignKey:LID;references:LID" json:"location,omitempty"`
}

func (BloodUnit) TableName() string {
	return "blood_units"
}
