package usecase

import (
	"context"
	"errors"
	"sort"

	"blood-network-backend/internal/delivery/dto"
	"blood-network-backend/internal/domain/entity"
	"blood-network-backend/internal/domain/repository"
	"blood-network-backend/pkg/geo"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidMaxResults   = errors.New("max results must be a positive integer")
	ErrReferenceNotFlagged = errors.New("reference hospital does not carry the required flag")
	ErrMissingCoordinates  = errors.New("reference hospital has no coordinates")
)

type MatchingUsecase interface {
	// MatchSurplusHospitals finds surplus hospitals for a shortage-flagged
	// reference, nearest first.
	MatchSurplusHospitals(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.HospitalMatchListResponse, error)
	// MatchShortageHospitals finds shortage hospitals for a surplus-flagged
	// reference, nearest first.
	MatchShortageHospitals(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.HospitalMatchListResponse, error)
	// MatchDonorsForShortage finds donors of the blood type at other
	// hospitals for a shortage-flagged reference, nearest first.
	MatchDonorsForShortage(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.DonorMatchListResponse, error)
	// MatchDonorsForSurplus is the surplus-side donor query.
	MatchDonorsForSurplus(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.DonorMatchListResponse, error)
}

type matchingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	locationRepo repository.LocationRepository
	personRepo   repository.PersonRepository
	statsRepo    repository.StatsRepository
}

func NewMatchingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	personRepo repository.PersonRepository,
	statsRepo repository.StatsRepository,
) MatchingUsecase {
	return &matchingUsecase{
		db:           db,
		log:          log,
		locationRepo: locationRepo,
		personRepo:   personRepo,
		statsRepo:    statsRepo,
	}
}

func (u *matchingUsecase) MatchSurplusHospitals(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.HospitalMatchListResponse, error) {
	return u.matchHospitals(ctx, hospital, city, bloodType, maxResults, false)
}

func (u *matchingUsecase) MatchShortageHospitals(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.HospitalMatchListResponse, error) {
	return u.matchHospitals(ctx, hospital, city, bloodType, maxResults, true)
}

func (u *matchingUsecase) MatchDonorsForShortage(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.DonorMatchListResponse, error) {
	return u.matchDonors(ctx, hospital, city, bloodType, maxResults, false)
}

func (u *matchingUsecase) MatchDonorsForSurplus(ctx context.Context, hospital, city, bloodType string, maxResults int) (*dto.DonorMatchListResponse, error) {
	return u.matchDonors(ctx, hospital, city, bloodType, maxResults, true)
}

// resolveReference validates the query parameters and the reference
// hospital: it must have a stats record carrying the expected flag, and it
// must resolve to coordinates (you cannot rank distances without a
// reference point). Candidates are treated more leniently; see the match
// loops.
func (u *matchingUsecase) resolveReference(db *gorm.DB, hospital, city, bloodType string, maxResults int, referenceHasSurplus bool) (*entity.Location, error) {
	if !entity.IsValidBloodType(bloodType) {
		return nil, ErrInvalidBloodType
	}
	if maxResults <= 0 {
		return nil, ErrInvalidMaxResults
	}

	refStats, err := u.statsRepo.FindByHospitalAndCity(db, hospital, city)
	if err != nil {
		u.log.Warnf("Failed to load reference stats: %+v", err)
		return nil, err
	}
	if len(refStats) == 0 {
		return nil, ErrStatsNotFound
	}

	flagged := false
	for _, s := range refStats {
		if s.BloodType != bloodType {
			continue
		}
		if referenceHasSurplus && s.Surplus {
			flagged = true
		}
		if !referenceHasSurplus && s.Shortage {
			flagged = true
		}
		break
	}
	if !flagged {
		return nil, ErrReferenceNotFlagged
	}

	reference, err := u.locationRepo.FindByNameAndCity(db, hospital, city)
	if err != nil {
		u.log.Warnf("Failed to load reference location: %+v", err)
		return nil, err
	}
	if reference == nil {
		return nil, ErrHospitalNotFound
	}
	if !reference.HasCoordinates() {
		return nil, ErrMissingCoordinates
	}

	return reference, nil
}

func (u *matchingUsecase) matchHospitals(ctx context.Context, hospital, city, bloodType string, maxResults int, referenceHasSurplus bool) (*dto.HospitalMatchListResponse, error) {
	db := u.db.WithContext(ctx)

	reference, err := u.resolveReference(db, hospital, city, bloodType, maxResults, referenceHasSurplus)
	if err != nil {
		return nil, err
	}

	// Candidates carry the opposite flag of the reference.
	candidates, err := u.statsRepo.FindByFlag(db, bloodType, !referenceHasSurplus, referenceHasSurplus)
	if err != nil {
		u.log.Warnf("Failed to load candidate stats: %+v", err)
		return nil, err
	}

	locations, err := u.locationIndex(db)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.HospitalMatchResponse, 0, len(candidates))
	for _, c := range candidates {
		if c.Hospital == hospital && c.City == city {
			continue
		}
		loc, ok := locations[[2]string{c.Hospital, c.City}]
		if !ok || !loc.HasCoordinates() {
			continue
		}
		matches = append(matches, dto.HospitalMatchResponse{
			Hospital:      c.Hospital,
			City:          c.City,
			DistanceKm:    geo.DistanceKm(*reference.Lat, *reference.Lon, *loc.Lat, *loc.Lon),
			DonorCount:    c.DonorCount,
			TotalVolumeCC: c.TotalVolumeCC,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return &dto.HospitalMatchListResponse{Matches: matches, Total: len(matches)}, nil
}

func (u *matchingUsecase) matchDonors(ctx context.Context, hospital, city, bloodType string, maxResults int, referenceHasSurplus bool) (*dto.DonorMatchListResponse, error) {
	db := u.db.WithContext(ctx)

	reference, err := u.resolveReference(db, hospital, city, bloodType, maxResults, referenceHasSurplus)
	if err != nil {
		return nil, err
	}

	donors, err := u.personRepo.FindDonorsByBloodType(db, bloodType)
	if err != nil {
		u.log.Warnf("Failed to load candidate donors: %+v", err)
		return nil, err
	}

	locations, err := u.locationIndex(db)
	if err != nil {
		return nil, err
	}

	matches := make([]dto.DonorMatchResponse, 0, len(donors))
	for _, d := range donors {
		if d.Hospital == hospital && d.City == city {
			continue
		}
		loc, ok := locations[[2]string{d.Hospital, d.City}]
		if !ok || !loc.HasCoordinates() {
			continue
		}
		matches = append(matches, dto.DonorMatchResponse{
			PID:        d.PID,
			FirstName:  d.FirstName,
			LastName:   d.LastName,
			BloodType:  d.BloodType,
			Hospital:   d.Hospital,
			City:       d.City,
			DistanceKm: geo.DistanceKm(*reference.Lat, *reference.Lon, *loc.Lat, *loc.Lon),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	return &dto.DonorMatchListResponse{Matches: matches, Total: len(matches)}, nil
}

func (u *matchingUsecase) locationIndex(db *gorm.DB) (map[[2]string]*entity.Location, error) {
	locations, err := u.locationRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load locations: %+v", err)
		return nil, err
	}
	index := make(map[[2]string]*entity.Location, len(locations))
	for i := range locations {
		index[[2]string{locations[i].Name, locations[i].City}] = &locations[i]
	}
	return index, nil
}
