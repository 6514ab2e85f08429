package domain

// Contract is the validated renovation request as it arrives from the
// intake flow. It is treated as immutable by everything downstream.
type Contract struct {
	Analysis            Analysis             `json:"analysis"`
	Overrides           Overrides            `json:"overrides"`
	Outcome             Outcome              `json:"outcome"`
	MeasurementOverride *MeasurementOverride `json:"measurementOverride,omitempty"`
	RoomMeasurements    *RoomMeasurements    `json:"roomMeasurements,omitempty"`
	SiteConditions      *SiteConditions      `json:"site_conditions,omitempty"`
	BuildingYear        *int                 `json:"building_year,omitempty"`
}

// Analysis carries the raw signals from the vision pass over the photos.
type Analysis struct {
	RoomType           string   `json:"room_type"`
	RoomTypeConfidence float64  `json:"room_type_confidence"`
	SizeBucket         string   `json:"size_bucket"`
	SizeConfidence     float64  `json:"size_confidence"`
	DetectedFixtures   []string `json:"detected_fixtures,omitempty"`
	ConditionSignals   []string `json:"condition_signals,omitempty"`
	ImageQuality       string   `json:"image_quality"` // "ok" or "insufficient"
	Confidence         float64  `json:"confidence"`
}

// Overrides records the size bucket the user confirmed (or the AI one they
// accepted without changes).
type Overrides struct {
	SizeBucket   string `json:"size_bucket"`
	UserSelected bool   `json:"user_selected"`
}

// Outcome is the user's choice per renovation category.
type Outcome struct {
	ShowerType   string `json:"shower_type"`   // keep | no_shower | walk_in | cabin | ...
	Bathtub      string `json:"bathtub"`       // keep | none | add | replace
	Toilet       string `json:"toilet"`        // keep | replace_floor | replace_wall_hung
	Vanity       string `json:"vanity"`        // keep | replace | new
	WallFinish   string `json:"wall_finish"`   // keep | tiles_all_walls | tiles_wet_zone | vinyl_all_walls | paint
	FloorFinish  string `json:"floor_finish"`  // keep | tiles | vinyl | microcement
	CeilingType  string `json:"ceiling_type"`  // keep | paint | panel
	LayoutChange string `json:"layout_change"` // yes | no
	NicheCount   int    `json:"niche_count"`
	FloorHeating string `json:"floor_heating,omitempty"` // yes | no | ""
}

// MeasurementOverride is the user's explicit tape-measure input. Any field
// may be absent; a supplied raw area wins over length×width.
type MeasurementOverride struct {
	LengthM       *float64 `json:"length,omitempty"`
	WidthM        *float64 `json:"width,omitempty"`
	AreaM2        *float64 `json:"area,omitempty"`
	CeilingHeight *float64 `json:"ceilingHeight,omitempty"`
	WetZone       string   `json:"wetZone,omitempty"` // quarter | half | three_quarters | full
}

// RoomMeasurements are the AI-estimated areas, when the vision pass managed
// to produce them.
type RoomMeasurements struct {
	FloorAreaM2       *float64 `json:"floor_area_m2,omitempty"`
	WallAreaM2        *float64 `json:"wall_area_m2,omitempty"`
	CeilingAreaM2     *float64 `json:"ceiling_area_m2,omitempty"`
	WetZoneWallAreaM2 *float64 `json:"wet_zone_wall_area_m2,omitempty"`
}

// SiteConditions is the optional 16-question site-access survey. Empty
// string means the question was not answered.
type SiteConditions struct {
	FloorElevator         string `json:"floor_elevator"`         // ground_floor | elevator | apt_no_elevator_1_2 | apt_no_elevator_3_plus
	ParkingDistance       string `json:"parking_distance"`       // close | under_50m | over_50m
	PermitsBRF            string `json:"permits_brf"`            // not_needed | permit_required | unknown
	OccupiedDuring        string `json:"occupied_during"`        // yes | no
	HazardousMaterials    string `json:"hazardous_materials"`    // none | suspected | confirmed
	CommonAreaProtection  string `json:"common_area_protection"` // not_needed | required
	WaterShutoff          string `json:"water_shutoff"`          // in_apartment | building_shared
	ElectricalPanel       string `json:"electrical_panel"`       // in_apartment | outside
	WasteDisposal         string `json:"waste_disposal"`         // container_onsite | carry_out
	WorkingHours          string `json:"working_hours"`          // unrestricted | restricted
	NeighborNotice        string `json:"neighbor_notice"`        // not_needed | required
	MoldSuspected         string `json:"mold_suspected"`         // no | yes
	DoorWidth             string `json:"door_width"`             // standard | narrow
	StorageSpace          string `json:"storage_space"`          // available | none
	PetsAtHome            string `json:"pets_at_home"`           // no | yes
	ConcurrentRenovations string `json:"concurrent_renovations"` // no | yes
}

// Answers returns the survey answers in declaration order. Empty entries are
// unanswered questions; the caller uses this for completeness accounting.
func (sc *SiteConditions) Answers() []string {
	if sc == nil {
		return nil
	}
	return []string{
		sc.FloorElevator, sc.ParkingDistance, sc.PermitsBRF, sc.OccupiedDuring,
		sc.HazardousMaterials, sc.CommonAreaProtection, sc.WaterShutoff, sc.ElectricalPanel,
		sc.WasteDisposal, sc.WorkingHours, sc.NeighborNotice, sc.MoldSuspected,
		sc.DoorWidth, sc.StorageSpace, sc.PetsAtHome, sc.ConcurrentRenovations,
	}
}

// QuestionCount is the number of survey questions in SiteConditions.
const QuestionCount = 16
