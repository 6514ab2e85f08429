package estimate

import (
	"math"

	"github.com/renoveta/badrum-estimator/internal/pricing"
)

// CompletenessSignals summarize how much of the input the user has pinned
// down; the range engine narrows or widens the band accordingly.
type CompletenessSignals struct {
	MeasurementsConfirmed bool
	GeometryFraction      float64 // of the four geometry dimensions
	SiteFraction          float64 // of the 16 survey questions
	OutstandingNC         bool
}

// Band is a min/max pair in whole SEK.
type Band struct {
	MinSEK int `json:"min_sek"`
	MaxSEK int `json:"max_sek"`
}

// Range is the uncertainty band around the flat total.
type Range struct {
	LowSEK      int      `json:"low_sek"`
	MidSEK      int      `json:"mid_sek"`
	HighSEK     int      `json:"high_sek"`
	AppliedPct  float64  `json:"applied_pct"`
	ReasonCodes []string `json:"reason_codes"`
	Labor       Band     `json:"labor_range"`
	Material    Band     `json:"material_range"`
}

// Range adjustment reason codes.
const (
	ReasonBaseWeightedPct  = "base_weighted_pct"
	ReasonMeasureConfirmed = "measurements_confirmed"
	ReasonGeometry75       = "geometry_complete_75"
	ReasonGeometry50       = "geometry_complete_50"
	ReasonSite75           = "site_conditions_75"
	ReasonSite50           = "site_conditions_50"
	ReasonOutstandingNC    = "needs_confirmation_outstanding"
)

// WeightedAveragePct is the default aggregation strategy: the
// subtotal-weighted average of per-group base percentages.
func WeightedAveragePct(items []pricing.LineItem, pol RangePolicy) float64 {
	var sum, sumW float64
	for _, it := range items {
		if it.SubtotalSEK <= 0 {
			continue
		}
		pct, ok := pol.TradeGroupPct[it.TradeGroup]
		if !ok {
			pct = pol.DefaultPct
		}
		w := float64(it.SubtotalSEK)
		sum += pct * w
		sumW += w
	}
	if sumW <= 0 {
		return pol.DefaultPct
	}
	return sum / sumW
}

// ComputeRange turns the flat total into a low/mid/high band. The applied
// percentage starts from the aggregated per-item base, is adjusted for each
// completeness signal (re-clamped after every step, each step logged), and
// the final delta is floored by the configured minimum spread.
func ComputeRange(items []pricing.LineItem, sig CompletenessSignals, total float64, pol RangePolicy) Range {
	strategy := pol.Strategy
	if strategy == nil {
		strategy = WeightedAveragePct
	}

	pct := clamp(strategy(items, pol), pol.MinPct, pol.MaxPct)
	reasons := []string{ReasonBaseWeightedPct}

	step := func(delta float64, reason string) {
		pct = clamp(pct+delta, pol.MinPct, pol.MaxPct)
		reasons = append(reasons, reason)
	}

	if sig.MeasurementsConfirmed {
		step(-pol.ConfirmedMeasurementsReduction, ReasonMeasureConfirmed)
	}
	switch {
	case sig.GeometryFraction >= 0.75:
		step(-pol.GeometryHighReduction, ReasonGeometry75)
	case sig.GeometryFraction >= 0.50:
		step(-pol.GeometryMidReduction, ReasonGeometry50)
	}
	switch {
	case sig.SiteFraction >= 0.75:
		step(-pol.SiteHighReduction, ReasonSite75)
	case sig.SiteFraction >= 0.50:
		step(-pol.SiteMidReduction, ReasonSite50)
	}
	if sig.OutstandingNC {
		step(pol.OutstandingNCIncrease, ReasonOutstandingNC)
	}

	mid := roundSEK(total)
	minDelta := math.Max(pol.MinRangeSEK, math.Round(float64(mid)*pol.MinRangePct))
	delta := int(math.Max(math.Round(float64(mid)*pct), minDelta))

	r := Range{
		LowSEK:      maxInt(mid-delta, 0),
		MidSEK:      mid,
		HighSEK:     mid + delta,
		AppliedPct:  pct,
		ReasonCodes: reasons,
	}

	var labor, material float64
	for _, it := range items {
		labor += float64(it.LaborSEK)
		material += float64(it.MaterialSEK)
	}
	r.Labor = bandAround(labor, pct)
	r.Material = bandAround(material, pct)

	// Monotonic enforcement: under pathological inputs (negative totals,
	// overridden strategies) the bounds are repaired and the mid pulled
	// back between them.
	if r.HighSEK < r.LowSEK {
		r.HighSEK = r.LowSEK
	}
	if r.LowSEK > r.MidSEK || r.MidSEK > r.HighSEK {
		r.MidSEK = clampInt((r.LowSEK+r.HighSEK)/2, r.LowSEK, r.HighSEK)
	}
	return r
}

func bandAround(total, pct float64) Band {
	d := math.Round(total * pct)
	return Band{
		MinSEK: maxInt(roundSEK(total-d), 0),
		MaxSEK: maxInt(roundSEK(total+d), 0),
	}
}

func roundSEK(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
