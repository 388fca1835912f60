package entity

// BloodTypeStat is one row of the derived per-hospital statistics view.
// The view is fully recomputed on every rebuild except for the Surplus and
// Shortage flags, which are preserved (see usecase.StatsUsecase). A complete
// view holds exactly one row per canonical blood type per known location.
type BloodTypeStat struct {
	ID            int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Hospital      string `gorm:"type:varchar(255);not null;uniqueIndex:idx_stats_hospital_city_type" json:"hospital"`
	City          string `gorm:"type:varchar(255);not null;uniqueIndex:idx_stats_hospital_city_type" json:"city"`
	BloodType     string `gorm:"type:varchar(3);not null;uniqueIndex:idx_stats_hospital_city_type" json:"blood_type"`
	DonorCount    int    `gorm:"not null;default:0" json:"donor_count"`
	TotalVolumeCC int    `gorm:"column:total_volume_cc;not null;default:0" json:"total_volume_cc"`
	Surplus       bool   `gorm:"not null;default:false" json:"surplus"`
	Shortage      bool   `gorm:"not null;default:false" json:"shortage"`
}

func (BloodTypeStat) TableName() string {
	return "blood_type_stats"
}
