package handler

import (
	"encoding/json"
	"net/http"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/usecase"
	"blood-network-backend/pkg/response"
	"blood-network-backend/pkg/validator"
)

type HospitalHandler struct {
	hospitalUsecase usecase.HospitalUsecase
	statsUsecase    usecase.StatsUsecase
	validator       *validator.CustomValidator
}

func NewHospitalHandler(hospitalUsecase usecase.HospitalUsecase, statsUsecase usecase.StatsUsecase, validator *validator.CustomValidator) *HospitalHandler {
	return &HospitalHandler{
		hospitalUsecase: hospitalUsecase,
		statsUsecase:    statsUsecase,
		validator:       validator,
	}
}

func (h *HospitalHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.hospitalUsecase.CreateHospital(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrHospitalAlreadyExists:
			response.Conflict(w, "Hospital already exists", nil)
		case usecase.ErrInvalidBloodType:
			response.Error(w, http.StatusBadRequest, "Invalid blood type in flag settings", nil)
		default:
			response.InternalServerError(w, "Failed to create hospital")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}

func (h *HospitalHandler) GetHospitalData(w http.ResponseWriter, r *http.Request) {
	data, err := h.hospitalUsecase.GetHospitalData(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get hospital data")
		return
	}

	response.Success(w, http.StatusOK, "Hospital data retrieved successfully", data)
}

func (h *HospitalHandler) GetHospitalDataWithLocation(w http.ResponseWriter, r *http.Request) {
	data, err := h.hospitalUsecase.GetHospitalDataWithLocation(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get hospital data")
		return
	}

	response.Success(w, http.StatusOK, "Hospital data retrieved successfully", data)
}

func (h *HospitalHandler) RebuildStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsUsecase.RebuildStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to rebuild stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats rebuilt successfully", stats)
}

func (h *HospitalHandler) UpdateFlag(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateFlagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.statsUsecase.SetFlag(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrStatsNotFound:
			response.NotFound(w, "No stats record found for the given hospital and blood type")
		case usecase.ErrNoFlagFields:
			response.Error(w, http.StatusBadRequest, "At least one of surplus or shortage must be provided", nil)
		default:
			response.InternalServerError(w, "Failed to update flags")
		}
		return
	}

	response.Success(w, http.StatusOK, "Flags updated successfully", nil)
}
