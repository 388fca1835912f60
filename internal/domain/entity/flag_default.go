package entity

// FlagDefault stores the surplus/shortage settings a hospital supplied at
// creation time. These override preserved flags when the derived stats view
// is rebuilt.
type FlagDefault struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	LID       string `gorm:"column:lid;type:varchar(10);not null;uniqueIndex:idx_flag_defaults_lid_type" json:"lid"`
	BloodType string `gorm:"type:varchar(3);not null;uniqueIndex:idx_flag_defaults_lid_type" json:"blood_type"`
	Surplus   bool   `gorm:"not null;default:false" json:"surplus"`
	Shortage  bool   `gorm:"not null;default:false" json:"shortage"`
}

func (FlagDefault) TableName() string {
	return "flag_defaults"
}
