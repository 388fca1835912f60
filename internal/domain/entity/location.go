package entity

import "time"

// Location represents a hospital or donation site. Matching identity is
// the (name, city) pair; historical donor records reference hospitals by
// name and city rather than by lid.
type Location struct {
	LID          string    `gorm:"column:lid;type:varchar(10);primaryKey" json:"lid"`
	Name         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_locations_name_city" json:"name"`
	City         string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_locations_name_city" json:"city"`
	LocationCode string    `gorm:"type:varchar(10);not null;default:HOSP" json:"location_code"`
	Lat          *float64  `gorm:"type:double precision" json:"lat,omitempty"`
	Lon          *float64  `gorm:"type:double precision" json:"lon,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	FlagDefaults []FlagDefault `gorm:"foreignKey:LID;references:LID" json:"flag_defaults,omitempty"`
}

func (Location) TableName() string {
	return "locations"
}

// HasCoordinates reports whether the location can participate in
// distance-ranked matching.
func (l *Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}
