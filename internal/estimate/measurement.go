package estimate

// MeasurementField is one normalized geometry dimension with its provenance.
type MeasurementField struct {
	Value      *float64 `json:"value"`
	Source     string   `json:"source"` // ai | user | default
	Confidence float64  `json:"confidence"`
}

// Measurements is the per-dimension view handed to the client alongside the
// estimate, so the UI can show where each number came from.
type Measurements struct {
	FloorAreaM2       MeasurementField `json:"floor_area_m2"`
	WallAreaM2        MeasurementField `json:"wall_area_m2"`
	CeilingHeightM    MeasurementField `json:"ceiling_height_m"`
	WetZoneWallAreaM2 MeasurementField `json:"wet_zone_wall_area_m2"`
}

// sourceConfidence maps provenance to a baseline confidence. AI values are
// additionally scaled by the analysis confidence.
func sourceConfidence(source string, analysisConfidence float64) float64 {
	switch source {
	case SourceUser:
		return 1.0
	case SourceAI:
		return clamp01(0.75 * clamp01(analysisConfidence))
	default:
		return 0.4
	}
}

// NormalizeMeasurements turns the resolved room into measurement fields.
func NormalizeMeasurements(r Room, analysisConfidence float64) Measurements {
	field := func(v float64, source string) MeasurementField {
		val := v
		var p *float64
		if val > 0 {
			p = &val
		}
		return MeasurementField{
			Value:      p,
			Source:     source,
			Confidence: sourceConfidence(source, analysisConfidence),
		}
	}

	m := Measurements{
		FloorAreaM2:       field(r.FloorAreaM2, r.FloorSource),
		WallAreaM2:        field(r.WallAreaM2, r.WallSource),
		CeilingHeightM:    field(r.CeilingHeightM, r.HeightSource),
		WetZoneWallAreaM2: field(r.WetZoneWallAreaM2, r.WetZoneSource),
	}
	if !r.WetZoneKnown {
		m.WetZoneWallAreaM2.Value = nil
	}
	return m
}

// GeometryCompleteness is the fraction of the four dimensions resolved from
// a non-default source.
func GeometryCompleteness(r Room) float64 {
	n := 0
	for _, s := range []string{r.FloorSource, r.WallSource, r.HeightSource, r.WetZoneSource} {
		if s != SourceDefault {
			n++
		}
	}
	return float64(n) / 4
}
