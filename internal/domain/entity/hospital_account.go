package entity

import "time"

// HospitalAccount holds the credential a hospital uses to authorize
// inventory and flag mutations. One account per location.
type HospitalAccount struct {
	LID          string    `gorm:"column:lid;type:varchar(10);primaryKey" json:"lid"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Location Location `gorm:"foreignKey:LID;references:LID" json:"location,omitempty"`
}

func (HospitalAccount) TableName() string {
	return "hospital_accounts"
}
