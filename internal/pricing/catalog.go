package pricing

// TaskSpec is one catalog entry. A task is included when any of its
// RequiresFlags is present in the request (always included when the list is
// empty and MinNiches is zero).
type TaskSpec struct {
	Key             string   `json:"key"`
	TradeGroup      string   `json:"trade_group"`
	QtyBasis        string   `json:"qty_basis"` // fixed | floor_m2 | wall_m2 | ceiling_m2 | wet_zone_m2 | niche
	Unit            string   `json:"unit"`
	LaborPerUnit    float64  `json:"labor_sek_per_unit"`
	MaterialPerUnit float64  `json:"material_sek_per_unit"`
	ROTEligible     bool     `json:"rot_eligible"`
	RequiresFlags   []string `json:"requires_flags,omitempty"`
	MinNiches       int      `json:"min_niches,omitempty"`
	Note            string   `json:"note,omitempty"`
}

// Catalog is the full pricing configuration.
type Catalog struct {
	Tasks                []TaskSpec `json:"tasks"`
	LaborRateSEKPerHour  float64    `json:"labor_rate_sek_per_hour"`
	ProjectManagementPct float64    `json:"project_management_pct"`
	ContingencyPct       float64    `json:"contingency_pct"`
}

// DefaultCatalog is the compiled-in Swedish bathroom catalog. Rates are
// inclusive list prices in SEK.
func DefaultCatalog() Catalog {
	return Catalog{
		LaborRateSEKPerHour:  650,
		ProjectManagementPct: 0.08,
		ContingencyPct:       0.05,
		Tasks: []TaskSpec{
			{Key: "demolition_full", TradeGroup: GroupDemolition, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 1900, MaterialPerUnit: 150, ROTEligible: true, RequiresFlags: []string{"full_demolition"}},
			{Key: "demolition_floor", TradeGroup: GroupDemolition, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 800, MaterialPerUnit: 60, ROTEligible: true, RequiresFlags: []string{"floor_demolition"}},
			{Key: "floor_substrate", TradeGroup: GroupCarpentry, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 900, MaterialPerUnit: 420, ROTEligible: true, RequiresFlags: []string{"floor_substrate"}},
			{Key: "waterproofing_floor", TradeGroup: GroupWaterproofing, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 700, MaterialPerUnit: 310, ROTEligible: true, RequiresFlags: []string{"waterproofing"}},
			{Key: "waterproofing_walls", TradeGroup: GroupWaterproofing, QtyBasis: "wet_zone_m2", Unit: "m2", LaborPerUnit: 620, MaterialPerUnit: 280, ROTEligible: true, RequiresFlags: []string{"waterproofing"}},
			{Key: "tiling_floor", TradeGroup: GroupTiling, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 1250, MaterialPerUnit: 520, ROTEligible: true, RequiresFlags: []string{"floor_finish_new"}},
			{Key: "tiling_walls", TradeGroup: GroupTiling, QtyBasis: "wall_m2", Unit: "m2", LaborPerUnit: 1100, MaterialPerUnit: 480, ROTEligible: true, RequiresFlags: []string{"wall_finish_new"}},
			{Key: "plumbing_rough_in", TradeGroup: GroupPlumbing, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 22000, MaterialPerUnit: 6500, ROTEligible: true, RequiresFlags: []string{"plumbing_rework"}},
			{Key: "shower_install", TradeGroup: GroupPlumbing, QtyBasis: "fixed", Unit: "pcs", LaborPerUnit: 5200, MaterialPerUnit: 9800, ROTEligible: true, RequiresFlags: []string{"shower_new"}},
			{Key: "bathtub_install", TradeGroup: GroupPlumbing, QtyBasis: "fixed", Unit: "pcs", LaborPerUnit: 6400, MaterialPerUnit: 12500, ROTEligible: true, RequiresFlags: []string{"bathtub_new"}},
			{Key: "toilet_install", TradeGroup: GroupPlumbing, QtyBasis: "fixed", Unit: "pcs", LaborPerUnit: 2600, MaterialPerUnit: 5200, ROTEligible: true, RequiresFlags: []string{"toilet_new"}},
			{Key: "vanity_install", TradeGroup: GroupCarpentry, QtyBasis: "fixed", Unit: "pcs", LaborPerUnit: 3100, MaterialPerUnit: 8900, ROTEligible: true, RequiresFlags: []string{"vanity_new"}},
			{Key: "electrical_rework", TradeGroup: GroupElectrical, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 14500, MaterialPerUnit: 4800, ROTEligible: true, RequiresFlags: []string{"electrical_rework"}},
			{Key: "floor_heating_electric", TradeGroup: GroupElectrical, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 650, MaterialPerUnit: 540, ROTEligible: true, RequiresFlags: []string{"floor_heating"}},
			{Key: "ventilation_update", TradeGroup: GroupVentilation, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 4200, MaterialPerUnit: 2300, ROTEligible: true, RequiresFlags: []string{"ventilation_update"}},
			{Key: "niche_build", TradeGroup: GroupTiling, QtyBasis: "niche", Unit: "pcs", LaborPerUnit: 3400, MaterialPerUnit: 900, ROTEligible: true, RequiresFlags: []string{"niche_build"}},
			{Key: "layout_reconfiguration", TradeGroup: GroupPlumbing, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 28000, MaterialPerUnit: 9000, ROTEligible: true, RequiresFlags: []string{"layout_reconfiguration"}},
			{Key: "painting_ceiling", TradeGroup: GroupPainting, QtyBasis: "ceiling_m2", Unit: "m2", LaborPerUnit: 320, MaterialPerUnit: 60, ROTEligible: true, RequiresFlags: []string{"ceiling_new"}},
			{Key: "painting_walls", TradeGroup: GroupPainting, QtyBasis: "wall_m2", Unit: "m2", LaborPerUnit: 280, MaterialPerUnit: 55, ROTEligible: true, RequiresFlags: []string{"wall_paint"}},
			{Key: "moisture_inspection", TradeGroup: GroupWaterproofing, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 2800, MaterialPerUnit: 0, ROTEligible: false, RequiresFlags: []string{"moisture_inspection"}},
			{Key: "wet_room_certificate", TradeGroup: GroupProjectMgmt, QtyBasis: "fixed", Unit: "job", LaborPerUnit: 0, MaterialPerUnit: 1900, ROTEligible: false, RequiresFlags: []string{"wet_room_certificate"}},
			{Key: "cleanup_waste", TradeGroup: GroupCleanup, QtyBasis: "floor_m2", Unit: "m2", LaborPerUnit: 450, MaterialPerUnit: 380, ROTEligible: false, RequiresFlags: []string{"waste_disposal"}, Note: "container and tipping fees"},
		},
	}
}
