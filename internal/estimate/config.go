package estimate

import (
	"os"
	"strconv"

	"github.com/renoveta/badrum-estimator/internal/pricing"
)

// Estimate quality tiers.
const (
	QualityConfirmed     = "confirmed"
	QualitySemiConfirmed = "semi_confirmed"
	QualityRough         = "rough"
)

// Confidence tiers.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// Renovation profiles.
const (
	ProfileRefresh     = "refresh"
	ProfileFullRebuild = "full_rebuild"
	ProfileMajor       = "major"
)

// bucketFloorArea maps a confirmed size bucket to a representative floor
// area in m².
var bucketFloorArea = map[string]float64{
	"under_4_sqm": 3.5,
	"4_to_6_sqm":  5.0,
	"6_to_10_sqm": 8.0,
	"over_10_sqm": 12.0,
}

// wetZoneFraction maps the user-chosen wet-zone category to a fraction of
// the wall area.
var wetZoneFraction = map[string]float64{
	"quarter":        0.25,
	"half":           0.50,
	"three_quarters": 0.75,
	"full":           1.00,
}

// fullyTiledFinishes are wall finishes that cover every wall, which forces
// the wet zone to the full wall area.
var fullyTiledFinishes = map[string]bool{
	"tiles_all_walls": true,
	"vinyl_all_walls": true,
}

// tileClassFinishes are the finishes for which an under-specified wet zone
// needs a user decision (NC-002).
var tileClassFinishes = map[string]bool{
	"tiles_all_walls": true,
	"tiles_wet_zone":  true,
	"vinyl_all_walls": true,
}

const (
	defaultCeilingHeightM = 2.4
	defaultWetZoneShare   = 0.85
	legacySystemsYear     = 1980
)

// RangeStrategy aggregates per-item uncertainty percentages into one applied
// percentage. The default is a subtotal-weighted average; a variance-based
// aggregator can be plugged in here.
type RangeStrategy func(items []pricing.LineItem, pol RangePolicy) float64

// RangePolicy holds the uncertainty tuning. The point deductions and clamps
// are empirically chosen business constants; override fields rather than
// re-deriving them.
type RangePolicy struct {
	TradeGroupPct map[string]float64
	DefaultPct    float64
	MinPct        float64
	MaxPct        float64

	// Reductions and increases below are in percentage points (0.015 = 1.5).
	ConfirmedMeasurementsReduction float64
	GeometryHighReduction          float64 // geometry ≥75% populated
	GeometryMidReduction           float64 // geometry ≥50% populated
	SiteHighReduction              float64 // site survey ≥75% answered
	SiteMidReduction               float64 // site survey ≥50% answered
	OutstandingNCIncrease          float64

	MinRangeSEK float64
	MinRangePct float64

	Strategy RangeStrategy
}

// DefaultRangePolicy returns the production uncertainty policy.
func DefaultRangePolicy() RangePolicy {
	return RangePolicy{
		TradeGroupPct: map[string]float64{
			pricing.GroupDemolition:     0.09,
			pricing.GroupCarpentry:      0.08,
			pricing.GroupWaterproofing:  0.07,
			pricing.GroupTiling:         0.06,
			pricing.GroupPlumbing:       0.08,
			pricing.GroupElectrical:     0.07,
			pricing.GroupVentilation:    0.06,
			pricing.GroupPainting:       0.05,
			pricing.GroupCleanup:        0.05,
			pricing.GroupProjectMgmt:    0.04,
			pricing.GroupSiteConditions: 0.03,
		},
		DefaultPct: 0.08,
		MinPct:     0.03,
		MaxPct:     0.25,

		ConfirmedMeasurementsReduction: 0.015,
		GeometryHighReduction:          0.015,
		GeometryMidReduction:           0.0075,
		SiteHighReduction:              0.010,
		SiteMidReduction:               0.005,
		OutstandingNCIncrease:          0.020,

		MinRangeSEK: 5000,
		MinRangePct: 0.04,
	}
}

// ROTConfig is the tax-deduction policy. Rate is clamped into [0,1]; a zero
// MaxDeductionSEK means no cap.
type ROTConfig struct {
	Rate            float64
	MaxDeductionSEK int
}

// DefaultROTConfig returns the statutory default (30%, uncapped — the
// service cannot know the user's remaining personal allowance).
func DefaultROTConfig() ROTConfig {
	return ROTConfig{Rate: 0.30}
}

// ROTConfigFromEnv reads ROT_RATE and ROT_MAX_SEK, falling back to defaults
// on absent or malformed values. Called from main; the core only ever sees
// the explicit struct.
func ROTConfigFromEnv() ROTConfig {
	cfg := DefaultROTConfig()
	if v := os.Getenv("ROT_RATE"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Rate = r
		}
	}
	if v := os.Getenv("ROT_MAX_SEK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxDeductionSEK = n
		}
	}
	return cfg
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }
