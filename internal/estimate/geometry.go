package estimate

import (
	"math"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

// Measurement sources.
const (
	SourceAI      = "ai"
	SourceUser    = "user"
	SourceDefault = "default"
)

// Room is the resolved geometry for one evaluation. Invariants:
// all areas ≥ 0 and WetZoneWallAreaM2 ≤ WallAreaM2.
type Room struct {
	FloorAreaM2       float64
	WallAreaM2        float64
	CeilingAreaM2     float64
	WetZoneWallAreaM2 float64
	LengthM           float64
	WidthM            float64
	CeilingHeightM    float64

	WetZoneKnown   bool
	SquareFallback bool

	FloorSource   string
	WallSource    string
	HeightSource  string
	WetZoneSource string

	FixtureCount       int
	RoomTypeConfidence float64
}

// ResolveRoom derives the room geometry from the size bucket, the optional
// AI measurements and the optional user override. It never fails: anything
// unresolvable collapses to a square room derived from the bucket area.
func ResolveRoom(c domain.Contract) Room {
	r := Room{
		CeilingHeightM:     defaultCeilingHeightM,
		HeightSource:       SourceDefault,
		FloorSource:        SourceDefault,
		WallSource:         SourceDefault,
		WetZoneSource:      SourceDefault,
		FixtureCount:       len(c.Analysis.DetectedFixtures),
		RoomTypeConfidence: clamp01(c.Analysis.RoomTypeConfidence),
	}

	bucket := c.Overrides.SizeBucket
	if bucket == "" {
		bucket = c.Analysis.SizeBucket
	}
	floor := bucketFloorArea[bucket]

	if m := c.RoomMeasurements; m != nil && m.FloorAreaM2 != nil && *m.FloorAreaM2 > 0 {
		floor = *m.FloorAreaM2
		r.FloorSource = SourceAI
	}

	wall := floor * 4
	if m := c.RoomMeasurements; m != nil && m.WallAreaM2 != nil && *m.WallAreaM2 > 0 {
		wall = *m.WallAreaM2
		r.WallSource = SourceAI
	}

	var userLen, userWid float64
	if o := c.MeasurementOverride; o != nil {
		if o.LengthM != nil && o.WidthM != nil && *o.LengthM > 0 && *o.WidthM > 0 {
			userLen, userWid = *o.LengthM, *o.WidthM
			floor = userLen * userWid
			r.FloorSource = SourceUser
		}
		if o.AreaM2 != nil && *o.AreaM2 > 0 {
			floor = *o.AreaM2
			r.FloorSource = SourceUser
		}
		if o.CeilingHeight != nil && *o.CeilingHeight > 0 {
			r.CeilingHeightM = *o.CeilingHeight
			r.HeightSource = SourceUser
		}
	}

	r.FloorAreaM2 = floor
	r.LengthM, r.WidthM, r.SquareFallback = solveRectangle(floor, wall, r.CeilingHeightM)
	if userLen > 0 && userWid > 0 {
		r.LengthM, r.WidthM = userLen, userWid
		r.SquareFallback = false
	}

	// Wall area is recomputed from the final dimensions so the perimeter,
	// floor and walls stay consistent.
	r.WallAreaM2 = 2 * (r.LengthM + r.WidthM) * r.CeilingHeightM
	if r.FloorSource == SourceUser {
		r.WallSource = SourceUser
	}
	r.CeilingAreaM2 = r.FloorAreaM2

	r.resolveWetZone(c)
	return r
}

// solveRectangle recovers length and width from floor area A and wall area W
// at height h: perimeter P = W/h, half-perimeter S = P/2, then
// x² − Sx + A = 0. Degenerate inputs (non-positive values, negative
// discriminant, non-positive roots, NaN) fall back to a square of side √A.
func solveRectangle(area, wall, height float64) (length, width float64, fallback bool) {
	square := func() (float64, float64, bool) {
		if area <= 0 || math.IsNaN(area) {
			return 0, 0, true
		}
		side := math.Sqrt(area)
		return side, side, true
	}

	if area <= 0 || wall <= 0 || height <= 0 ||
		math.IsNaN(area) || math.IsNaN(wall) || math.IsNaN(height) {
		return square()
	}

	s := wall / height / 2
	disc := s*s - 4*area
	if disc < 0 || math.IsNaN(disc) {
		return square()
	}

	root := math.Sqrt(disc)
	length = (s + root) / 2
	width = (s - root) / 2
	if length <= 0 || width <= 0 {
		return square()
	}
	return length, width, false
}

func (r *Room) resolveWetZone(c domain.Contract) {
	wall := r.WallAreaM2

	switch {
	case fullyTiledFinishes[c.Outcome.WallFinish]:
		r.WetZoneWallAreaM2 = wall
		r.WetZoneKnown = true
		r.WetZoneSource = r.WallSource
	case c.MeasurementOverride != nil && wetZoneFraction[c.MeasurementOverride.WetZone] > 0:
		r.WetZoneWallAreaM2 = wetZoneFraction[c.MeasurementOverride.WetZone] * wall
		r.WetZoneKnown = true
		r.WetZoneSource = SourceUser
	case c.RoomMeasurements != nil && c.RoomMeasurements.WetZoneWallAreaM2 != nil && *c.RoomMeasurements.WetZoneWallAreaM2 >= 0:
		r.WetZoneWallAreaM2 = *c.RoomMeasurements.WetZoneWallAreaM2
		r.WetZoneKnown = true
		r.WetZoneSource = SourceAI
	default:
		r.WetZoneWallAreaM2 = math.Min(wall, defaultWetZoneShare*wall)
		r.WetZoneKnown = false
		r.WetZoneSource = SourceDefault
	}

	if r.WetZoneWallAreaM2 < 0 {
		r.WetZoneWallAreaM2 = 0
	}
	if r.WetZoneWallAreaM2 > wall {
		r.WetZoneWallAreaM2 = wall
	}
}
