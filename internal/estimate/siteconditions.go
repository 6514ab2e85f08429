package estimate

import (
	"math"
	"sort"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

// SiteAllowance is the extra effort implied by the site survey, split by
// kind. Hours are rounded to the nearest half hour.
type SiteAllowance struct {
	AccessHours float64  `json:"access_hours"`
	WasteHours  float64  `json:"waste_hours"`
	AdminHours  float64  `json:"admin_hours"`
	ReasonCodes []string `json:"reason_codes"`
}

type siteContribution struct {
	answer string
	access float64
	waste  float64
	admin  float64
	reason string
}

// ComputeSiteAllowance converts the survey answers into allowance hours.
// Returns nil when no answered question contributes anything.
func ComputeSiteAllowance(sc *domain.SiteConditions) *SiteAllowance {
	if sc == nil {
		return nil
	}

	table := []struct {
		got     string
		choices []siteContribution
	}{
		{sc.FloorElevator, []siteContribution{
			{answer: "apt_no_elevator_1_2", access: 2.0, reason: "FLOOR_NO_ELEVATOR_1_2"},
			{answer: "apt_no_elevator_3_plus", access: 4.0, reason: "FLOOR_NO_ELEVATOR_3_PLUS"},
		}},
		{sc.ParkingDistance, []siteContribution{
			{answer: "over_50m", access: 1.5, reason: "PARKING_OVER_50M"},
		}},
		{sc.PermitsBRF, []siteContribution{
			{answer: "permit_required", admin: 2.0, reason: "PERMIT_REQUIRED"},
			{answer: "unknown", admin: 1.0, reason: "PERMIT_STATUS_UNKNOWN"},
		}},
		{sc.OccupiedDuring, []siteContribution{
			{answer: "yes", access: 1.0, reason: "OCCUPIED_DURING_WORK"},
		}},
		{sc.HazardousMaterials, []siteContribution{
			{answer: "suspected", admin: 1.5, reason: "HAZMAT_SUSPECTED"},
			{answer: "confirmed", waste: 4.0, admin: 2.0, reason: "HAZMAT_CONFIRMED"},
		}},
		{sc.CommonAreaProtection, []siteContribution{
			{answer: "required", access: 1.5, reason: "COMMON_AREA_PROTECTION"},
		}},
		{sc.WaterShutoff, []siteContribution{
			{answer: "building_shared", admin: 1.0, reason: "SHARED_WATER_SHUTOFF"},
		}},
		{sc.ElectricalPanel, []siteContribution{
			{answer: "outside", access: 0.5, reason: "PANEL_OUTSIDE_UNIT"},
		}},
		{sc.WasteDisposal, []siteContribution{
			{answer: "carry_out", waste: 3.0, reason: "WASTE_CARRY_OUT"},
		}},
		{sc.WorkingHours, []siteContribution{
			{answer: "restricted", access: 2.0, reason: "RESTRICTED_HOURS"},
		}},
		{sc.NeighborNotice, []siteContribution{
			{answer: "required", admin: 0.5, reason: "NEIGHBOR_NOTICE"},
		}},
		{sc.MoldSuspected, []siteContribution{
			{answer: "yes", waste: 2.0, reason: "MOLD_SUSPECTED"},
		}},
		{sc.DoorWidth, []siteContribution{
			{answer: "narrow", access: 1.0, reason: "NARROW_DOOR"},
		}},
		{sc.StorageSpace, []siteContribution{
			{answer: "none", access: 1.0, reason: "NO_ONSITE_STORAGE"},
		}},
		{sc.PetsAtHome, []siteContribution{
			{answer: "yes", access: 0.5, reason: "PETS_AT_HOME"},
		}},
		{sc.ConcurrentRenovations, []siteContribution{
			{answer: "yes", admin: 1.0, reason: "CONCURRENT_RENOVATIONS"},
		}},
	}

	var a SiteAllowance
	for _, q := range table {
		for _, c := range q.choices {
			if q.got == c.answer {
				a.AccessHours += c.access
				a.WasteHours += c.waste
				a.AdminHours += c.admin
				a.ReasonCodes = append(a.ReasonCodes, c.reason)
			}
		}
	}

	if len(a.ReasonCodes) == 0 {
		return nil
	}

	a.AccessHours = roundHalf(a.AccessHours)
	a.WasteHours = roundHalf(a.WasteHours)
	a.AdminHours = roundHalf(a.AdminHours)
	sort.Strings(a.ReasonCodes)
	return &a
}

// SiteCompleteness is the fraction of the survey's questions answered;
// zero when the survey is absent.
func SiteCompleteness(sc *domain.SiteConditions) float64 {
	answers := sc.Answers()
	if len(answers) == 0 {
		return 0
	}
	n := 0
	for _, a := range answers {
		if a != "" {
			n++
		}
	}
	return float64(n) / float64(domain.QuestionCount)
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
