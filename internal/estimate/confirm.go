package estimate

import (
	"math"
	"sort"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

// Needs-confirmation codes.
const (
	NCMissingFloorArea  = "NC-001" // floor area missing or non-positive
	NCWetZoneUnclear    = "NC-002" // wet zone unknown or short of a tiled wall plan
	NCLayoutChange      = "NC-003" // layout change always needs a site visit
	NCLegacyBuilding    = "NC-004" // pre-1980 building, legacy pipes and wiring
	NCHeatingWithoutNew = "NC-005" // underfloor heating without a new floor finish
)

// blockingNC are the codes that prevent a "confirmed" estimate quality and
// demote the confidence tier.
var blockingNC = map[string]bool{
	NCMissingFloorArea: true,
	NCWetZoneUnclear:   true,
	NCLayoutChange:     true,
	NCLegacyBuilding:   true,
}

// wetZoneShortfallM2 is how far the confirmed wet zone may fall short of the
// full wall area under a tile-class finish before we ask the user.
const wetZoneShortfallM2 = 0.5

// DetectNeedsConfirmation returns the sorted, de-duplicated set of inputs
// that need a user decision before the estimate can firm up.
func DetectNeedsConfirmation(r Room, intents map[string]bool, c domain.Contract) []string {
	set := make(map[string]struct{})

	if r.FloorAreaM2 <= 0 || math.IsNaN(r.FloorAreaM2) {
		set[NCMissingFloorArea] = struct{}{}
	}

	if !r.WetZoneKnown {
		set[NCWetZoneUnclear] = struct{}{}
	} else if tileClassFinishes[c.Outcome.WallFinish] && r.WallAreaM2-r.WetZoneWallAreaM2 > wetZoneShortfallM2 {
		set[NCWetZoneUnclear] = struct{}{}
	}

	if intents["change_layout"] {
		set[NCLayoutChange] = struct{}{}
	}

	if c.BuildingYear != nil && *c.BuildingYear < legacySystemsYear {
		set[NCLegacyBuilding] = struct{}{}
	}

	if intents["add_underfloor_heating"] && !intents["new_floor_finish"] {
		set[NCHeatingWithoutNew] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// HasBlockingNC reports whether any code in the set blocks a confirmed
// estimate.
func HasBlockingNC(codes []string) bool {
	for _, c := range codes {
		if blockingNC[c] {
			return true
		}
	}
	return false
}
