package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePoints(t *testing.T) {
	tests := []struct {
		name        string
		plasticType string
		weight      float64
		quantity    int
		want        int64
	}{
		{"PET baseline", "PET", 2.0, 5, 10},
		{"HDPE fractional result floors", "HDPE", 3, 2, 9},
		{"PVC", "PVC", 1.0, 10, 8},
		{"LDPE", "LDPE", 2.5, 4, 12},
		{"PP", "PP", 1.0, 1, 1},
		{"PS floors to zero", "PS", 0.5, 2, 0},
		{"Other", "Other", 10, 2, 10},
		{"unknown type uses default multiplier", "ABS", 10, 2, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePoints(tt.plasticType, tt.weight, tt.quantity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputePoints_Deterministic(t *testing.T) {
	a := ComputePoints("HDPE", 7.3, 11)
	b := ComputePoints("HDPE", 7.3, 11)
	assert.Equal(t, a, b)
	assert.GreaterOrEqual(t, a, int64(0))
}

func TestComputeRank_Boundaries(t *testing.T) {
	tests := []struct {
		total int64
		want  string
	}{
		{0, RankBronze},
		{999, RankBronze},
		{1000, RankSilver},
		{2999, RankSilver},
		{3000, RankGold},
		{4999, RankGold},
		{5000, RankPlatinum},
		{123456, RankPlatinum},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComputeRank(tt.total), "total=%d", tt.total)
	}
}

func TestComputeRank_Monotonic(t *testing.T) {
	order := map[string]int{RankBronze: 0, RankSilver: 1, RankGold: 2, RankPlatinum: 3}
	prev := RankBronze
	for p := int64(0); p <= 6000; p += 50 {
		cur := ComputeRank(p)
		assert.GreaterOrEqual(t, order[cur], order[prev], "rank regressed at %d points", p)
		prev = cur
	}
}
