package estimate

import "strings"

// Outlier and info flag codes.
const (
	FlagTotalOutOfBand  = "TOTAL_OUT_OF_BAND"
	FlagUnitCostOutlier = "UNIT_COST_OUTLIER"
	InfoUnitCostHigh    = "UNIT_COST_HIGH"
)

// Plausibility band codes.
const (
	BandWithinExpected = "within_expected"
	BandBelowExpected  = "below_expected"
	BandAboveExpected  = "above_expected"
)

type costBand struct {
	lo, hi float64
}

type profileBands struct {
	rough     costBand // wide band used while the estimate is still rough
	confirmed costBand // narrow band once measurements are in
	unitHard  float64  // SEK/m² above this is always an outlier
	unitInfo  float64  // SEK/m² above this is informational, rough quality only
}

var profileCostBands = map[string]profileBands{
	ProfileRefresh:     {rough: costBand{25000, 260000}, confirmed: costBand{35000, 210000}, unitHard: 45000, unitInfo: 32000},
	ProfileFullRebuild: {rough: costBand{110000, 620000}, confirmed: costBand{140000, 520000}, unitHard: 95000, unitInfo: 70000},
	ProfileMajor:       {rough: costBand{170000, 920000}, confirmed: costBand{210000, 800000}, unitHard: 120000, unitInfo: 90000},
}

// OutlierResult carries the plausibility classification: hard outlier flags,
// informational flags, and the band code.
type OutlierResult struct {
	Flags     []string
	InfoFlags []string
	Band      string
}

// ClassifyOutliers checks the mid total and the per-m² unit cost against the
// expected bands for the renovation profile. Rough estimates get the wider
// total band and the looser informational unit threshold.
func ClassifyOutliers(profile, quality string, midTotal float64, sekPerM2 *float64) OutlierResult {
	bands, ok := profileCostBands[profile]
	if !ok {
		bands = profileCostBands[ProfileRefresh]
	}

	band := bands.confirmed
	if quality == QualityRough {
		band = bands.rough
	}

	res := OutlierResult{Band: BandWithinExpected}

	switch {
	case midTotal < band.lo:
		res.Band = BandBelowExpected
		res.Flags = append(res.Flags, FlagTotalOutOfBand)
	case midTotal > band.hi:
		res.Band = BandAboveExpected
		res.Flags = append(res.Flags, FlagTotalOutOfBand)
	}

	if sekPerM2 != nil {
		switch {
		case *sekPerM2 > bands.unitHard:
			res.Flags = append(res.Flags, FlagUnitCostOutlier)
		case quality == QualityRough && *sekPerM2 > bands.unitInfo:
			res.InfoFlags = append(res.InfoFlags, InfoUnitCostHigh)
		}
	}

	// The band code itself surfaces as an informational flag when the total
	// sits outside expectations.
	if res.Band != BandWithinExpected {
		res.InfoFlags = appendUnique(res.InfoFlags, "PLAUSIBILITY_"+strings.ToUpper(res.Band))
	}
	return res
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
