package dto

// CoordinatesRequest carries a coordinate pair on hospital creation.
type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lon float64 `json:"lon" validate:"longitude"`
}

// FlagSettingRequest is a per-blood-type surplus/shortage default supplied
// at hospital creation time.
type FlagSettingRequest struct {
	Surplus  bool `json:"surplus"`
	Shortage bool `json:"shortage"`
}

type CreateHospitalRequest struct {
	Name         string                        `json:"name" validate:"required,max=255"`
	City         string                        `json:"city" validate:"required,max=255"`
	Coordinates  *CoordinatesRequest           `json:"coordinates" validate:"required"`
	Password     string                        `json:"password" validate:"required,min=6"`
	FlagSettings map[string]FlagSettingRequest `json:"flag_settings,omitempty"`
}

type HospitalResponse struct {
	LID          string  `json:"lid"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	LocationCode string  `json:"location_code"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// BloodTypeDataResponse is one row of the complete per-hospital matrix:
// always eight entries per hospital, zero-filled where no data exists.
type BloodTypeDataResponse struct {
	BloodType     string `json:"blood_type"`
	DonorCount    int    `json:"donor_count"`
	TotalVolumeCC int    `json:"total_volume_cc"`
	Surplus       bool   `json:"surplus"`
	Shortage      bool   `json:"shortage"`
}

type HospitalDataResponse struct {
	Hospital  string                  `json:"hospital"`
	City      string                  `json:"city"`
	BloodData []BloodTypeDataResponse `json:"blood_data"`
}

type HospitalDataWithLocationResponse struct {
	Hospital  string                  `json:"hospital"`
	City      string                  `json:"city"`
	Lat       *float64                `json:"lat,omitempty"`
	Lon       *float64                `json:"lon,omitempty"`
	BloodData []BloodTypeDataResponse `json:"blood_data"`
}

type HospitalDataListResponse struct {
	Hospitals []HospitalDataResponse `json:"hospitals"`
	Total     int                    `json:"total"`
}

type HospitalDataWithLocationListResponse struct {
	Hospitals []HospitalDataWithLocationResponse `json:"hospitals"`
	Total     int                                `json:"total"`
}
