package estimate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

func TestComputeSiteAllowance_NilSurvey(t *testing.T) {
	t.Parallel()
	assert.Nil(t, ComputeSiteAllowance(nil))
}

func TestComputeSiteAllowance_BenignAnswersContributeNothing(t *testing.T) {
	t.Parallel()

	sc := &domain.SiteConditions{
		FloorElevator:   "ground_floor",
		ParkingDistance: "close",
		PermitsBRF:      "not_needed",
		OccupiedDuring:  "no",
		WasteDisposal:   "container_onsite",
	}
	assert.Nil(t, ComputeSiteAllowance(sc))
}

func TestComputeSiteAllowance_ScenarioCodes(t *testing.T) {
	t.Parallel()

	sc := &domain.SiteConditions{
		FloorElevator: "apt_no_elevator_1_2",
		PermitsBRF:    "permit_required",
	}
	a := ComputeSiteAllowance(sc)
	require.NotNil(t, a)
	assert.Contains(t, a.ReasonCodes, "FLOOR_NO_ELEVATOR_1_2")
	assert.Contains(t, a.ReasonCodes, "PERMIT_REQUIRED")
	assert.Equal(t, 2.0, a.AccessHours)
	assert.Equal(t, 2.0, a.AdminHours)
	assert.Equal(t, 0.0, a.WasteHours)
}

func TestComputeSiteAllowance_HoursAreHalfHourMultiples(t *testing.T) {
	t.Parallel()

	sc := &domain.SiteConditions{
		FloorElevator:         "apt_no_elevator_3_plus",
		ParkingDistance:       "over_50m",
		PermitsBRF:            "unknown",
		OccupiedDuring:        "yes",
		HazardousMaterials:    "confirmed",
		CommonAreaProtection:  "required",
		WaterShutoff:          "building_shared",
		ElectricalPanel:       "outside",
		WasteDisposal:         "carry_out",
		WorkingHours:          "restricted",
		NeighborNotice:        "required",
		MoldSuspected:         "yes",
		DoorWidth:             "narrow",
		StorageSpace:          "none",
		PetsAtHome:            "yes",
		ConcurrentRenovations: "yes",
	}
	a := ComputeSiteAllowance(sc)
	require.NotNil(t, a)

	for _, h := range []float64{a.AccessHours, a.WasteHours, a.AdminHours} {
		assert.Equal(t, 0.0, math.Mod(h*2, 1), "hours %v not on a half-hour step", h)
		assert.GreaterOrEqual(t, h, 0.0)
	}
	assert.Len(t, a.ReasonCodes, 16)
	assert.IsIncreasing(t, a.ReasonCodes)
}

func TestSiteCompleteness(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, SiteCompleteness(nil))

	sc := &domain.SiteConditions{
		FloorElevator: "elevator",
		PermitsBRF:    "not_needed",
		WasteDisposal: "carry_out",
		DoorWidth:     "standard",
	}
	assert.InDelta(t, 4.0/16.0, SiteCompleteness(sc), 1e-9)
}
