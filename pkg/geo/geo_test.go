package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "identical points",
			lat1: 42.3601, lon1: -71.0589,
			lat2: 42.3601, lon2: -71.0589,
			expected: 0, tolerance: 0.0001,
		},
		{
			name: "boston to nyc",
			lat1: 42.36, lon1: -71.06,
			lat2: 40.71, lon2: -74.01,
			expected: 306, tolerance: 5,
		},
		{
			name: "boston to chicago",
			lat1: 42.36, lon1: -71.06,
			lat2: 41.88, lon2: -87.63,
			expected: 1370, tolerance: 10,
		},
		{
			name: "antipodal-ish long haul",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			expected: 20015, tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	pairs := [][4]float64{
		{42.36, -71.06, 40.71, -74.01},
		{34.0522, -118.2437, 41.8781, -87.6298},
		{-33.8688, 151.2093, 51.5074, -0.1278},
	}

	for _, p := range pairs {
		forward := DistanceKm(p[0], p[1], p[2], p[3])
		backward := DistanceKm(p[2], p[3], p[0], p[1])
		assert.InDelta(t, forward, backward, 1e-9)
		assert.GreaterOrEqual(t, forward, 0.0)
	}
}
