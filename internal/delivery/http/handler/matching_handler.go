package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/usecase"
	"blood-network-backend/pkg/response"
)

const defaultMaxResults = 5

type MatchingHandler struct {
	matchingUsecase usecase.MatchingUsecase
}

func NewMatchingHandler(matchingUsecase usecase.MatchingUsecase) *MatchingHandler {
	return &MatchingHandler{matchingUsecase: matchingUsecase}
}

type matchQuery struct {
	hospital   string
	city       string
	bloodType  string
	maxResults int
}

func parseMatchQuery(r *http.Request) (*matchQuery, string) {
	q := r.URL.Query()
	query := &matchQuery{
		hospital:   q.Get("hospital"),
		city:       q.Get("city"),
		bloodType:  q.Get("blood_type"),
		maxResults: defaultMaxResults,
	}

	if query.hospital == "" || query.city == "" || query.bloodType == "" {
		return nil, "Missing required parameters: hospital, city, blood_type"
	}

	if raw := q.Get("max_results"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, "max_results must be an integer"
		}
		query.maxResults = parsed
	}

	return query, ""
}

func (h *MatchingHandler) MatchSurplusHospitals(w http.ResponseWriter, r *http.Request) {
	h.matchHospitals(w, r, h.matchingUsecase.MatchSurplusHospitals)
}

func (h *MatchingHandler) MatchShortageHospitals(w http.ResponseWriter, r *http.Request) {
	h.matchHospitals(w, r, h.matchingUsecase.MatchShortageHospitals)
}

func (h *MatchingHandler) MatchDonorsForShortage(w http.ResponseWriter, r *http.Request) {
	h.matchDonors(w, r, h.matchingUsecase.MatchDonorsForShortage)
}

func (h *MatchingHandler) MatchDonorsForSurplus(w http.ResponseWriter, r *http.Request) {
	h.matchDonors(w, r, h.matchingUsecase.MatchDonorsForSurplus)
}

func (h *MatchingHandler) matchHospitals(
	w http.ResponseWriter,
	r *http.Request,
	match func(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.HospitalMatchListResponse, error),
) {
	query, errMsg := parseMatchQuery(r)
	if errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg, nil)
		return
	}

	matches, err := match(r.Context(), query.hospital, query.city, query.bloodType, query.maxResults)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Matches retrieved successfully", matches)
}

func (h *MatchingHandler) matchDonors(
	w http.ResponseWriter,
	r *http.Request,
	match func(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.DonorMatchListResponse, error),
) {
	query, errMsg := parseMatchQuery(r)
	if errMsg != "" {
		response.Error(w, http.StatusBadRequest, errMsg, nil)
		return
	}

	matches, err := match(r.Context(), query.hospital, query.city, query.bloodType, query.maxResults)
	if err != nil {
		writeMatchError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Matches retrieved successfully", matches)
}

func writeMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidBloodType):
		response.Error(w, http.StatusBadRequest, "Invalid blood type", nil)
	case errors.Is(err, usecase.ErrInvalidMaxResults):
		response.Error(w, http.StatusBadRequest, "max_results must be a positive integer", nil)
	case errors.Is(err, usecase.ErrStatsNotFound):
		response.NotFound(w, "No stats record found for the reference hospital")
	case errors.Is(err, usecase.ErrHospitalNotFound):
		response.NotFound(w, "Reference hospital not found")
	case errors.Is(err, usecase.ErrReferenceNotFlagged):
		response.Conflict(w, "Reference hospital does not carry the required flag", nil)
	case errors.Is(err, usecase.ErrMissingCoordinates):
		response.Error(w, http.StatusBadRequest, "Reference hospital has no coordinates", nil)
	default:
		response.InternalServerError(w, "Failed to find matches")
	}
}
