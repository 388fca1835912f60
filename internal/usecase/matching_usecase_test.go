package usecase

import (
	"context"
	"testing"

	"blood-network-backend/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedMatchingNetwork builds a three-city network with Boston flagged
// shortage for O- and New York plus Chicago flagged surplus, then rebuilds
// the derived view so the matcher has something to query.
func seedMatchingNetwork(t *testing.T, env *testEnv) {
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Central Medical Center", "Boston, MA", coord(42.3601), coord(-71.0589))
	env.seedLocation(t, "L0002", "City Hospital 1", "New York, NY", coord(40.7128), coord(-74.0060))
	env.seedLocation(t, "L0003", "Regional Medical Center", "Chicago, IL", coord(41.8781), coord(-87.6298))

	_, err := env.stats.RebuildStats(ctx)
	require.NoError(t, err)

	setFlag := func(hospital, city string, surplus, shortage bool) {
		req := &dto.UpdateFlagRequest{
			Hospital:  hospital,
			City:      city,
			BloodType: "O-",
			Surplus:   &surplus,
			Shortage:  &shortage,
		}
		require.NoError(t, env.stats.SetFlag(ctx, req))
	}
	setFlag("Central Medical Center", "Boston, MA", false, true)
	setFlag("City Hospital 1", "New York, NY", true, false)
	setFlag("Regional Medical Center", "Chicago, IL", true, false)
}

func TestMatchSurplusHospitals_NearestFirst(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)

	resp, err := env.matching.MatchSurplusHospitals(context.Background(),
		"Central Medical Center", "Boston, MA", "O-", 5)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)

	assert.Equal(t, "City Hospital 1", resp.Matches[0].Hospital)
	assert.InDelta(t, 306, resp.Matches[0].DistanceKm, 5)
	assert.Equal(t, "Regional Medical Center", resp.Matches[1].Hospital)
	assert.InDelta(t, 1366, resp.Matches[1].DistanceKm, 15)
}

func TestMatchSurplusHospitals_TruncatesToMaxResults(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)

	resp, err := env.matching.MatchSurplusHospitals(context.Background(),
		"Central Medical Center", "Boston, MA", "O-", 1)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "City Hospital 1", resp.Matches[0].Hospital)
}

func TestMatchShortageHospitals_ExcludesReference(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)
	ctx := context.Background()

	// New York carries both flags: it is a valid surplus reference and
	// would also qualify as a shortage candidate, but never matches
	// itself.
	both := true
	require.NoError(t, env.stats.SetFlag(ctx, &dto.UpdateFlagRequest{
		Hospital:  "City Hospital 1",
		City:      "New York, NY",
		BloodType: "O-",
		Shortage:  &both,
	}))

	resp, err := env.matching.MatchShortageHospitals(ctx,
		"City Hospital 1", "New York, NY", "O-", 5)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Central Medical Center", resp.Matches[0].Hospital)
}

func TestMatchSurplusHospitals_SkipsCandidatesWithoutCoordinates(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)
	ctx := context.Background()

	env.seedLocation(t, "L0004", "Health Clinic", "Houston, TX", nil, nil)
	_, err := env.stats.RebuildStats(ctx)
	require.NoError(t, err)

	surplus := true
	require.NoError(t, env.stats.SetFlag(ctx, &dto.UpdateFlagRequest{
		Hospital:  "Health Clinic",
		City:      "Houston, TX",
		BloodType: "O-",
		Surplus:   &surplus,
	}))

	resp, err := env.matching.MatchSurplusHospitals(ctx,
		"Central Medical Center", "Boston, MA", "O-", 5)
	require.NoError(t, err)

	for _, m := range resp.Matches {
		assert.NotEqual(t, "Health Clinic", m.Hospital)
	}
}

func TestMatchDonorsForShortage_NearestFirst(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)
	ctx := context.Background()

	env.seedDonor(t, "P0000001", "Regional Medical Center", "Chicago, IL", "O-")
	env.seedDonor(t, "P0000002", "City Hospital 1", "New York, NY", "O-")
	env.seedDonor(t, "P0000003", "Central Medical Center", "Boston, MA", "O-") // at reference, excluded
	env.seedDonor(t, "P0000004", "City Hospital 1", "New York, NY", "A+")      // wrong type, excluded

	resp, err := env.matching.MatchDonorsForShortage(ctx,
		"Central Medical Center", "Boston, MA", "O-", 5)
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)

	assert.Equal(t, "P0000002", resp.Matches[0].PID)
	assert.InDelta(t, 306, resp.Matches[0].DistanceKm, 5)
	assert.Equal(t, "P0000001", resp.Matches[1].PID)
}

func TestMatching_ReferenceValidation(t *testing.T) {
	env := newTestEnv(t)
	seedMatchingNetwork(t, env)
	ctx := context.Background()

	_, err := env.matching.MatchSurplusHospitals(ctx,
		"Central Medical Center", "Boston, MA", "C+", 5)
	assert.ErrorIs(t, err, ErrInvalidBloodType)

	_, err = env.matching.MatchSurplusHospitals(ctx,
		"Central Medical Center", "Boston, MA", "O-", 0)
	assert.ErrorIs(t, err, ErrInvalidMaxResults)

	_, err = env.matching.MatchSurplusHospitals(ctx,
		"Nowhere General", "Atlantis", "O-", 5)
	assert.ErrorIs(t, err, ErrStatsNotFound)

	// Boston is shortage-flagged, so it cannot act as a surplus reference.
	_, err = env.matching.MatchShortageHospitals(ctx,
		"Central Medical Center", "Boston, MA", "O-", 5)
	assert.ErrorIs(t, err, ErrReferenceNotFlagged)

	// A flag on a different blood type does not qualify either.
	_, err = env.matching.MatchSurplusHospitals(ctx,
		"Central Medical Center", "Boston, MA", "A+", 5)
	assert.ErrorIs(t, err, ErrReferenceNotFlagged)
}

func TestMatching_ReferenceWithoutCoordinates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedLocation(t, "L0001", "Health Clinic", "Houston, TX", nil, nil)
	_, err := env.stats.RebuildStats(ctx)
	require.NoError(t, err)

	shortage := true
	require.NoError(t, env.stats.SetFlag(ctx, &dto.UpdateFlagRequest{
		Hospital:  "Health Clinic",
		City:      "Houston, TX",
		BloodType: "O-",
		Shortage:  &shortage,
	}))

	_, err = env.matching.MatchSurplusHospitals(ctx,
		"Health Clinic", "Houston, TX", "O-", 5)
	assert.ErrorIs(t, err, ErrMissingCoordinates)
}
