package pricing

// LineItem is one priced row of the estimate.
type LineItem struct {
	Key         string  `json:"key"`
	TradeGroup  string  `json:"trade_group"`
	Qty         float64 `json:"qty"`
	Unit        string  `json:"unit"`
	LaborSEK    int     `json:"labor_sek"`
	MaterialSEK int     `json:"material_sek"`
	SubtotalSEK int     `json:"subtotal_sek"`
	ROTEligible bool    `json:"rot_eligible"`
	Note        string  `json:"note,omitempty"`
}

// Trade groups used across the catalog. The uncertainty engine keys its
// base percentages on these.
const (
	GroupDemolition     = "demolition"
	GroupCarpentry      = "carpentry"
	GroupWaterproofing  = "waterproofing"
	GroupTiling         = "tiling"
	GroupPlumbing       = "plumbing"
	GroupElectrical     = "electrical"
	GroupVentilation    = "ventilation"
	GroupPainting       = "painting"
	GroupCleanup        = "cleanup"
	GroupProjectMgmt    = "project_management"
	GroupSiteConditions = "site_conditions"
)

// AllowanceHours is the site-conditions extra effort handed to the pricer.
type AllowanceHours struct {
	AccessHours float64
	WasteHours  float64
	AdminHours  float64
	ReasonCodes []string
}

// Request is everything the pricer needs: the derived scope flags, resolved
// geometry, the raw selections, and any site allowance.
type Request struct {
	Flags         []string
	FloorAreaM2   float64
	WallAreaM2    float64
	CeilingAreaM2 float64
	WetZoneAreaM2 float64
	NicheCount    int
	Selections    map[string]string
	Allowance     *AllowanceHours
}

// SiteEffect reports what the site allowance added, in SEK.
type SiteEffect struct {
	AddedLaborSEK    int      `json:"added_labor_sek"`
	AddedMaterialSEK int      `json:"added_material_sek"`
	AddedTotalSEK    int      `json:"added_total_sek"`
	ReasonCodes      []string `json:"reason_codes"`
}

// Result is the priced estimate before uncertainty and tax treatment.
type Result struct {
	Items                []LineItem
	BaseSubtotalSEK      int
	ProjectManagementSEK int
	ContingencySEK       int
	GrandTotalSEK        int
	SiteEffect           *SiteEffect
}
