package dto

import "time"

type AddDonorRequest struct {
	PID              string `json:"pid" validate:"required,max=20"`
	FirstName        string `json:"first_name" validate:"required,max=100"`
	LastName         string `json:"last_name" validate:"required,max=100"`
	Age              int    `json:"age" validate:"required,gte=16,lte=100"`
	Hospital         string `json:"hospital" validate:"required"`
	City             string `json:"city" validate:"required"`
	BloodType        string `json:"blood_type" validate:"required,bloodtype"`
	WeightLBS        int    `json:"weight_lbs" validate:"omitempty,gte=0"`
	HeightIN         int    `json:"height_in" validate:"omitempty,gte=0"`
	Gender           string `json:"gender" validate:"omitempty,oneof=M F"`
	NextSafeDonation string `json:"next_safe_donation,omitempty"`
}

type DonorResponse struct {
	PID              string     `json:"pid"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Age              int        `json:"age"`
	Hospital         string     `json:"hospital"`
	City             string     `json:"city"`
	BloodType        string     `json:"blood_type"`
	NextSafeDonation *time.Time `json:"next_safe_donation,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
