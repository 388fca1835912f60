package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/usecase"
	"blood-network-backend/pkg/response"
	"blood-network-backend/pkg/validator"
)

type InventoryHandler struct {
	inventoryUsecase usecase.InventoryUsecase
	validator        *validator.CustomValidator
}

func NewInventoryHandler(inventoryUsecase usecase.InventoryUsecase, validator *validator.CustomValidator) *InventoryHandler {
	return &InventoryHandler{
		inventoryUsecase: inventoryUsecase,
		validator:        validator,
	}
}

func (h *InventoryHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.inventoryUsecase.AdjustInventory(r.Context(), &req)
	if err != nil {
		var stockErr *usecase.InsufficientStockError
		switch {
		case errors.As(err, &stockErr):
			response.Conflict(w, "Insufficient stock", map[string]int{
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			})
		case errors.Is(err, usecase.ErrHospitalNotFound):
			response.NotFound(w, "Hospital not found")
		case errors.Is(err, usecase.ErrInvalidBloodType):
			response.Error(w, http.StatusBadRequest, "Invalid blood type", nil)
		default:
			response.InternalServerError(w, "Failed to adjust inventory")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory updated successfully", result)
}
