package estimate

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/renoveta/badrum-estimator/internal/domain"
	"github.com/renoveta/badrum-estimator/internal/pricing"
)

// Warning codes.
const (
	WarnSquareRoomFallback = "SQUARE_ROOM_FALLBACK"
	WarnRoomTypeUnverified = "ROOM_TYPE_UNVERIFIED"
)

// TaskPricer is the pricing seam. The catalog engine in internal/pricing
// implements it; a remote pricing service can replace it. A pricer error is
// propagated unchanged — the core performs no recovery there.
type TaskPricer interface {
	Price(req pricing.Request) (pricing.Result, error)
}

// Options tune one evaluation. Nil fields fall back to defaults; Pricer is
// required.
type Options struct {
	Rules       []ScopeRule
	Pricer      TaskPricer
	RangePolicy *RangePolicy
	ROT         *ROTConfig
}

// Normalized is the derived view of the contract: geometry, provenance,
// intents and the open questions.
type Normalized struct {
	Room              Room              `json:"room"`
	Measurements      Measurements      `json:"measurements"`
	Intents           map[string]bool   `json:"intents"`
	Selections        map[string]string `json:"selections"`
	NeedsConfirmation []string          `json:"needs_confirmation"`
	SiteAllowance     *SiteAllowance    `json:"site_allowance,omitempty"`
}

// EstimateResult is the full internal result, before boundary shaping.
type EstimateResult struct {
	Pricing  pricing.Result
	Range    Range
	ROT      ROTSummary
	Outliers OutlierResult
	Quality  string
}

// Totals is the aggregate money block of the client estimate.
type Totals struct {
	BaseSubtotalSEK      int `json:"base_subtotal_sek"`
	ProjectManagementSEK int `json:"project_management_sek"`
	ContingencySEK       int `json:"contingency_sek"`
	GrandTotalSEK        int `json:"grand_total_sek"`
	MinTotalSEK          int `json:"min_total_sek"`
	MaxTotalSEK          int `json:"max_total_sek"`
	LaborMinSEK          int `json:"labor_min_sek"`
	LaborMaxSEK          int `json:"labor_max_sek"`
	MaterialMinSEK       int `json:"material_min_sek"`
	MaterialMaxSEK       int `json:"material_max_sek"`
}

// EstimateRange is the boundary view of the uncertainty band.
type EstimateRange struct {
	LowSEK  int `json:"low_sek"`
	MidSEK  int `json:"mid_sek"`
	HighSEK int `json:"high_sek"`
}

// DerivedAreas carries secondary geometry the client renders.
type DerivedAreas struct {
	NonTiledWallAreaM2 *float64 `json:"non_tiled_wall_area_m2"`
}

// ClientEstimate is the externally consumed shape. All monetary fields are
// whole SEK; it contains no timestamps, so re-evaluating the same contract
// reproduces it byte for byte.
type ClientEstimate struct {
	LineItems            []pricing.LineItem  `json:"line_items"`
	Totals               Totals              `json:"totals"`
	EstimateRange        EstimateRange       `json:"estimate_range"`
	LaborRange           Band                `json:"labor_range"`
	MaterialRange        Band                `json:"material_range"`
	EstimateQuality      string              `json:"estimate_quality"`
	ConfidenceTier       string              `json:"confidence_tier"`
	ConfidenceReasons    []string            `json:"confidence_reasons"`
	NeedsConfirmationIDs []string            `json:"needs_confirmation_ids"`
	Warnings             []string            `json:"warnings"`
	Flags                []string            `json:"flags"`
	InfoFlags            []string            `json:"info_flags"`
	PlausibilityBand     string              `json:"plausibility_band"`
	SEKPerM2             *float64            `json:"sek_per_m2"`
	DerivedAreas         DerivedAreas        `json:"derived_areas"`
	ROTSummary           ROTSummary          `json:"rot_summary"`
	SiteConditionsEffect *pricing.SiteEffect `json:"site_conditions_effect,omitempty"`
}

// Result is everything Evaluate produces. EstimateID and GeneratedAt are
// attached per call and are the only non-deterministic fields.
type Result struct {
	EstimateID     string         `json:"estimate_id"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Normalized     Normalized     `json:"normalized"`
	EstimateResult EstimateResult `json:"-"`
	ClientEstimate ClientEstimate `json:"client_estimate"`
	Flags          []string       `json:"flags"`
	Profile        string         `json:"profile"`
	MappingLog     []string       `json:"mapping_log"`
}

// Evaluate runs the full pipeline: intents → flags → geometry → needs
// confirmation → site allowance → pricing → range → outliers → confidence →
// ROT, and assembles the client estimate.
func Evaluate(c domain.Contract, opts *Options) (Result, error) {
	o := fillOptions(opts)

	intents, selections, mappingLog := BuildIntents(c.Outcome)
	flags := CompileFlags(o.Rules, intents)
	room := ResolveRoom(c)
	needs := DetectNeedsConfirmation(room, intents, c)
	allowance := ComputeSiteAllowance(c.SiteConditions)
	profile := ResolveProfile(c.Outcome)

	priced, err := o.Pricer.Price(pricing.Request{
		Flags:         flags,
		FloorAreaM2:   room.FloorAreaM2,
		WallAreaM2:    room.WallAreaM2,
		CeilingAreaM2: room.CeilingAreaM2,
		WetZoneAreaM2: room.WetZoneWallAreaM2,
		NicheCount:    c.Outcome.NicheCount,
		Selections:    selections,
		Allowance:     allowanceHours(allowance),
	})
	if err != nil {
		return Result{}, err
	}

	confirmed := hasExplicitMeasurements(c.MeasurementOverride)
	quality := deriveQuality(confirmed, c.RoomMeasurements, needs)

	rng := ComputeRange(priced.Items, CompletenessSignals{
		MeasurementsConfirmed: confirmed,
		GeometryFraction:      GeometryCompleteness(room),
		SiteFraction:          SiteCompleteness(c.SiteConditions),
		OutstandingNC:         len(needs) > 0,
	}, float64(priced.GrandTotalSEK), *o.RangePolicy)

	sekPerM2 := unitCost(priced.GrandTotalSEK, room.FloorAreaM2)
	outliers := ClassifyOutliers(profile, quality, float64(rng.MidSEK), sekPerM2)

	warnings := collectWarnings(room, c)

	tier, reasons := ClassifyConfidence(ConfidenceInput{
		Quality:            quality,
		AnalysisConfidence: c.Analysis.Confidence,
		ImageQuality:       c.Analysis.ImageQuality,
		BlockingNC:         HasBlockingNC(needs),
		HasWarnings:        len(warnings) > 0,
		HasFlags:           len(outliers.Flags) > 0 || len(outliers.InfoFlags) > 0,
	})

	rot := ComputeROT(priced.Items, priced.GrandTotalSEK, *o.ROT)

	client := ClientEstimate{
		LineItems: priced.Items,
		Totals: Totals{
			BaseSubtotalSEK:      priced.BaseSubtotalSEK,
			ProjectManagementSEK: priced.ProjectManagementSEK,
			ContingencySEK:       priced.ContingencySEK,
			GrandTotalSEK:        priced.GrandTotalSEK,
			MinTotalSEK:          rng.LowSEK,
			MaxTotalSEK:          rng.HighSEK,
			LaborMinSEK:          rng.Labor.MinSEK,
			LaborMaxSEK:          rng.Labor.MaxSEK,
			MaterialMinSEK:       rng.Material.MinSEK,
			MaterialMaxSEK:       rng.Material.MaxSEK,
		},
		EstimateRange:        EstimateRange{LowSEK: rng.LowSEK, MidSEK: rng.MidSEK, HighSEK: rng.HighSEK},
		LaborRange:           rng.Labor,
		MaterialRange:        rng.Material,
		EstimateQuality:      quality,
		ConfidenceTier:       tier,
		ConfidenceReasons:    reasons,
		NeedsConfirmationIDs: needs,
		Warnings:             warnings,
		Flags:                outliers.Flags,
		InfoFlags:            outliers.InfoFlags,
		PlausibilityBand:     outliers.Band,
		SEKPerM2:             sekPerM2,
		DerivedAreas:         derivedAreas(room),
		ROTSummary:           rot,
		SiteConditionsEffect: priced.SiteEffect,
	}

	return Result{
		EstimateID:  uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Normalized: Normalized{
			Room:              room,
			Measurements:      NormalizeMeasurements(room, c.Analysis.Confidence),
			Intents:           intents,
			Selections:        selections,
			NeedsConfirmation: needs,
			SiteAllowance:     allowance,
		},
		EstimateResult: EstimateResult{
			Pricing:  priced,
			Range:    rng,
			ROT:      rot,
			Outliers: outliers,
			Quality:  quality,
		},
		ClientEstimate: client,
		Flags:          flags,
		Profile:        profile,
		MappingLog:     mappingLog,
	}, nil
}

func fillOptions(opts *Options) Options {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Rules == nil {
		o.Rules = DefaultScopeRules()
	}
	if o.Pricer == nil {
		o.Pricer = pricing.NewEngine(pricing.DefaultCatalog())
	}
	if o.RangePolicy == nil {
		pol := DefaultRangePolicy()
		o.RangePolicy = &pol
	}
	if o.ROT == nil {
		rot := DefaultROTConfig()
		o.ROT = &rot
	}
	return o
}

func hasExplicitMeasurements(o *domain.MeasurementOverride) bool {
	if o == nil {
		return false
	}
	if o.AreaM2 != nil && *o.AreaM2 > 0 {
		return true
	}
	return o.LengthM != nil && o.WidthM != nil && *o.LengthM > 0 && *o.WidthM > 0
}

// deriveQuality: explicit user measurements mean confirmed, AI measurements
// alone mean semi-confirmed, a bucket guess is rough. Blocking open
// questions cap the quality below confirmed.
func deriveQuality(confirmed bool, m *domain.RoomMeasurements, needs []string) string {
	q := QualityRough
	switch {
	case confirmed:
		q = QualityConfirmed
	case m != nil && (m.FloorAreaM2 != nil || m.WallAreaM2 != nil):
		q = QualitySemiConfirmed
	}
	if q == QualityConfirmed && HasBlockingNC(needs) {
		q = QualitySemiConfirmed
	}
	return q
}

func unitCost(totalSEK int, floorM2 float64) *float64 {
	if floorM2 <= 0 || totalSEK <= 0 {
		return nil
	}
	v := math.Round(float64(totalSEK) / floorM2)
	return &v
}

func derivedAreas(r Room) DerivedAreas {
	if !r.WetZoneKnown {
		return DerivedAreas{}
	}
	v := math.Round((r.WallAreaM2-r.WetZoneWallAreaM2)*100) / 100
	if v < 0 {
		v = 0
	}
	return DerivedAreas{NonTiledWallAreaM2: &v}
}

func collectWarnings(r Room, c domain.Contract) []string {
	var w []string
	if r.SquareFallback {
		w = append(w, WarnSquareRoomFallback)
	}
	if c.Analysis.RoomType != "" && c.Analysis.RoomType != "bathroom" {
		w = append(w, WarnRoomTypeUnverified)
	}
	return w
}

func allowanceHours(a *SiteAllowance) *pricing.AllowanceHours {
	if a == nil {
		return nil
	}
	return &pricing.AllowanceHours{
		AccessHours: a.AccessHours,
		WasteHours:  a.WasteHours,
		AdminHours:  a.AdminHours,
		ReasonCodes: a.ReasonCodes,
	}
}
