package handler

import (
	"encoding/json"
	"net/http"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/usecase"
	"blood-network-backend/pkg/response"
	"blood-network-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type DonorHandler struct {
	donorUsecase usecase.DonorUsecase
	validator    *validator.CustomValidator
}

func NewDonorHandler(donorUsecase usecase.DonorUsecase, validator *validator.CustomValidator) *DonorHandler {
	return &DonorHandler{
		donorUsecase: donorUsecase,
		validator:    validator,
	}
}

func (h *DonorHandler) AddDonor(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDonorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donor, err := h.donorUsecase.AddDonor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDonorAlreadyExists:
			response.Conflict(w, "Donor already exists", nil)
		case usecase.ErrInvalidDonationDate:
			response.Error(w, http.StatusBadRequest, "Invalid next safe donation date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to add donor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Donor added successfully", donor)
}

func (h *DonorHandler) RemoveDonor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pid := vars["pid"]
	if pid == "" {
		response.Error(w, http.StatusBadRequest, "Missing donor pid", nil)
		return
	}

	if err := h.donorUsecase.RemoveDonor(r.Context(), pid); err != nil {
		if err == usecase.ErrDonorNotFound {
			response.NotFound(w, "Donor not found")
			return
		}
		response.InternalServerError(w, "Failed to remove donor")
		return
	}

	response.Success(w, http.StatusOK, "Donor removed successfully", nil)
}
