package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

func TestDetectNeedsConfirmation_MissingFloorArea(t *testing.T) {
	t.Parallel()

	r := ResolveRoom(domain.Contract{}) // no bucket, no measurements
	codes := DetectNeedsConfirmation(r, nil, domain.Contract{})
	assert.Contains(t, codes, NCMissingFloorArea)
}

func TestDetectNeedsConfirmation_BucketGivesFloorArea(t *testing.T) {
	t.Parallel()

	c := domain.Contract{Overrides: domain.Overrides{SizeBucket: "under_4_sqm"}}
	codes := DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.NotContains(t, codes, NCMissingFloorArea)
}

func TestDetectNeedsConfirmation_WetZoneUnknown(t *testing.T) {
	t.Parallel()

	c := domain.Contract{Overrides: domain.Overrides{SizeBucket: "4_to_6_sqm"}}
	codes := DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.Contains(t, codes, NCWetZoneUnclear)
}

func TestDetectNeedsConfirmation_WetZoneShortOfTiledPlan(t *testing.T) {
	t.Parallel()

	c := domain.Contract{
		Overrides:           domain.Overrides{SizeBucket: "4_to_6_sqm"},
		Outcome:             domain.Outcome{WallFinish: "tiles_wet_zone"},
		MeasurementOverride: &domain.MeasurementOverride{WetZone: "half"},
	}
	codes := DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.Contains(t, codes, NCWetZoneUnclear)
}

func TestDetectNeedsConfirmation_FullyTiledIsClear(t *testing.T) {
	t.Parallel()

	c := domain.Contract{
		Overrides: domain.Overrides{SizeBucket: "4_to_6_sqm"},
		Outcome:   domain.Outcome{WallFinish: "tiles_all_walls"},
	}
	codes := DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.NotContains(t, codes, NCWetZoneUnclear)
}

func TestDetectNeedsConfirmation_LayoutAndHeating(t *testing.T) {
	t.Parallel()

	c := domain.Contract{
		Overrides: domain.Overrides{SizeBucket: "4_to_6_sqm"},
		Outcome:   domain.Outcome{WallFinish: "tiles_all_walls"},
	}
	intents := map[string]bool{
		"change_layout":          true,
		"add_underfloor_heating": true,
	}
	codes := DetectNeedsConfirmation(ResolveRoom(c), intents, c)
	assert.Contains(t, codes, NCLayoutChange)
	assert.Contains(t, codes, NCHeatingWithoutNew)

	// a new floor finish absorbs the heating disturbance
	intents["new_floor_finish"] = true
	codes = DetectNeedsConfirmation(ResolveRoom(c), intents, c)
	assert.NotContains(t, codes, NCHeatingWithoutNew)
}

func TestDetectNeedsConfirmation_LegacyBuilding(t *testing.T) {
	t.Parallel()

	year := 1975
	c := domain.Contract{
		Overrides:    domain.Overrides{SizeBucket: "4_to_6_sqm"},
		Outcome:      domain.Outcome{WallFinish: "tiles_all_walls"},
		BuildingYear: &year,
	}
	codes := DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.Contains(t, codes, NCLegacyBuilding)

	modern := 1995
	c.BuildingYear = &modern
	codes = DetectNeedsConfirmation(ResolveRoom(c), nil, c)
	assert.NotContains(t, codes, NCLegacyBuilding)
}

func TestDetectNeedsConfirmation_SortedAndDeduped(t *testing.T) {
	t.Parallel()

	year := 1960
	c := domain.Contract{BuildingYear: &year}
	codes := DetectNeedsConfirmation(ResolveRoom(c), map[string]bool{"change_layout": true}, c)
	assert.IsIncreasing(t, codes)
	seen := map[string]bool{}
	for _, code := range codes {
		assert.False(t, seen[code], "duplicate %s", code)
		seen[code] = true
	}
}

func TestHasBlockingNC(t *testing.T) {
	t.Parallel()

	assert.True(t, HasBlockingNC([]string{NCLayoutChange}))
	assert.False(t, HasBlockingNC([]string{NCHeatingWithoutNew}))
	assert.False(t, HasBlockingNC(nil))
}
