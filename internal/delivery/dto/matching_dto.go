package dto

// HospitalMatchResponse is one proximity-ranked hospital candidate.
type HospitalMatchResponse struct {
	Hospital      string  `json:"hospital"`
	City          string  `json:"city"`
	DistanceKm    float64 `json:"distance_km"`
	DonorCount    int     `json:"donor_count"`
	TotalVolumeCC int     `json:"total_volume_cc"`
}

// DonorMatchResponse is one proximity-ranked donor candidate. Distance is
// measured from the reference hospital to the donor's hospital.
type DonorMatchResponse struct {
	PID        string  `json:"pid"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	BloodType  string  `json:"blood_type"`
	Hospital   string  `json:"hospital"`
	City       string  `json:"city"`
	DistanceKm float64 `json:"distance_km"`
}

type HospitalMatchListResponse struct {
	Matches []HospitalMatchResponse `json:"matches"`
	Total   int                     `json:"total"`
}

type DonorMatchListResponse struct {
	Matches []DonorMatchResponse `json:"matches"`
	Total   int                  `json:"total"`
}
