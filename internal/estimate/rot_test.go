package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoveta/badrum-estimator/internal/pricing"
)

func rotItems() []pricing.LineItem {
	return []pricing.LineItem{
		{Key: "tiling", LaborSEK: 80000, MaterialSEK: 30000, SubtotalSEK: 110000, ROTEligible: true},
		{Key: "plumbing", LaborSEK: 40000, MaterialSEK: 10000, SubtotalSEK: 50000, ROTEligible: true},
		{Key: "waste", LaborSEK: 5000, MaterialSEK: 4000, SubtotalSEK: 9000}, // not eligible
	}
}

func TestComputeROT_DefaultRate(t *testing.T) {
	t.Parallel()

	s := ComputeROT(rotItems(), 169000, DefaultROTConfig())

	assert.Equal(t, 120000, s.EligibleLaborSEK, "waste labor excluded")
	assert.Equal(t, 36000, s.DeductionSEK)
	assert.Equal(t, 133000, s.TotalAfterROTSEK)
	assert.False(t, s.CapApplied)
	assert.Equal(t, ROTCapUnknownLimit, s.CapReason)
	assert.Nil(t, s.CapSEK)
}

func TestComputeROT_CapApplied(t *testing.T) {
	t.Parallel()

	s := ComputeROT(rotItems(), 169000, ROTConfig{Rate: 0.30, MaxDeductionSEK: 25000})

	assert.Equal(t, 25000, s.DeductionSEK)
	assert.True(t, s.CapApplied)
	assert.Equal(t, ROTCapMaxLimit, s.CapReason)
	require.NotNil(t, s.CapSEK)
	assert.Equal(t, 25000, *s.CapSEK)
	assert.Equal(t, 144000, s.TotalAfterROTSEK)
}

func TestComputeROT_CapConfiguredButNotHit(t *testing.T) {
	t.Parallel()

	s := ComputeROT(rotItems(), 169000, ROTConfig{Rate: 0.30, MaxDeductionSEK: 50000})
	assert.Equal(t, 36000, s.DeductionSEK)
	assert.False(t, s.CapApplied)
	assert.Equal(t, ROTCapUnknownLimit, s.CapReason)
}

func TestComputeROT_RateClamped(t *testing.T) {
	t.Parallel()

	over := ComputeROT(rotItems(), 169000, ROTConfig{Rate: 1.7})
	assert.Equal(t, 1.0, over.Rate)
	assert.Equal(t, 120000, over.DeductionSEK)

	under := ComputeROT(rotItems(), 169000, ROTConfig{Rate: -0.5})
	assert.Equal(t, 0.0, under.Rate)
	assert.Equal(t, 0, under.DeductionSEK)
	assert.Equal(t, 169000, under.TotalAfterROTSEK)
}

func TestComputeROT_InvariantDeductionBound(t *testing.T) {
	t.Parallel()

	for _, rate := range []float64{0.1, 0.3, 0.5, 1.0} {
		s := ComputeROT(rotItems(), 169000, ROTConfig{Rate: rate})
		bound := int(math.Round(float64(s.EligibleLaborSEK) * rate))
		assert.LessOrEqual(t, s.DeductionSEK, bound)
	}
}

func TestComputeROT_TotalNeverNegative(t *testing.T) {
	t.Parallel()

	s := ComputeROT(rotItems(), 10000, ROTConfig{Rate: 1.0})
	assert.Equal(t, 0, s.TotalAfterROTSEK)
}
