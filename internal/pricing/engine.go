package pricing

import (
	"fmt"
	"math"
	"sort"
)

// Engine prices a renovation request against a catalog. It is a pure
// function of (catalog, request); the estimate core treats it as a seam
// that a remote pricing service can replace.
type Engine struct {
	catalog Catalog
}

func NewEngine(c Catalog) *Engine {
	return &Engine{catalog: c}
}

// Price builds line items for every catalog task whose flags match the
// request, then adds the site allowance, project management and contingency
// lines.
func (e *Engine) Price(req Request) (Result, error) {
	if e == nil {
		return Result{}, fmt.Errorf("pricing: nil engine")
	}

	flagSet := make(map[string]struct{}, len(req.Flags))
	for _, f := range req.Flags {
		flagSet[f] = struct{}{}
	}

	var items []LineItem
	for _, t := range e.catalog.Tasks {
		if !taskApplies(t, flagSet, req) {
			continue
		}
		qty := quantityFor(t, req)
		if qty <= 0 {
			continue
		}
		labor := roundSEK(t.LaborPerUnit * qty)
		material := roundSEK(t.MaterialPerUnit * qty)
		items = append(items, LineItem{
			Key:         t.Key,
			TradeGroup:  t.TradeGroup,
			Qty:         round2(qty),
			Unit:        t.Unit,
			LaborSEK:    labor,
			MaterialSEK: material,
			SubtotalSEK: labor + material,
			ROTEligible: t.ROTEligible,
			Note:        t.Note,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })

	var siteEffect *SiteEffect
	if req.Allowance != nil {
		hours := req.Allowance.AccessHours + req.Allowance.WasteHours + req.Allowance.AdminHours
		if hours > 0 {
			labor := roundSEK(hours * e.catalog.LaborRateSEKPerHour)
			item := LineItem{
				Key:         "site_conditions_allowance",
				TradeGroup:  GroupSiteConditions,
				Qty:         round2(hours),
				Unit:        "h",
				LaborSEK:    labor,
				MaterialSEK: 0,
				SubtotalSEK: labor,
				ROTEligible: true,
				Note:        "access, waste handling and admin per site survey",
			}
			items = append(items, item)
			siteEffect = &SiteEffect{
				AddedLaborSEK:    labor,
				AddedMaterialSEK: 0,
				AddedTotalSEK:    labor,
				ReasonCodes:      append([]string(nil), req.Allowance.ReasonCodes...),
			}
		}
	}

	base := 0
	for _, it := range items {
		base += it.SubtotalSEK
	}

	pm := roundSEK(float64(base) * e.catalog.ProjectManagementPct)
	if pm > 0 {
		items = append(items, LineItem{
			Key: "project_management", TradeGroup: GroupProjectMgmt,
			Qty: 1, Unit: "job", LaborSEK: pm, SubtotalSEK: pm, ROTEligible: true,
		})
	}
	contingency := roundSEK(float64(base) * e.catalog.ContingencyPct)
	if contingency > 0 {
		items = append(items, LineItem{
			Key: "contingency", TradeGroup: GroupProjectMgmt,
			Qty: 1, Unit: "job", MaterialSEK: contingency, SubtotalSEK: contingency,
			Note: "unforeseen work reserve",
		})
	}

	return Result{
		Items:                items,
		BaseSubtotalSEK:      base,
		ProjectManagementSEK: pm,
		ContingencySEK:       contingency,
		GrandTotalSEK:        base + pm + contingency,
		SiteEffect:           siteEffect,
	}, nil
}

func taskApplies(t TaskSpec, flags map[string]struct{}, req Request) bool {
	if t.MinNiches > 0 && req.NicheCount < t.MinNiches {
		return false
	}
	if len(t.RequiresFlags) == 0 {
		return true
	}
	for _, f := range t.RequiresFlags {
		if _, ok := flags[f]; ok {
			return true
		}
	}
	return false
}

func quantityFor(t TaskSpec, req Request) float64 {
	switch t.QtyBasis {
	case "floor_m2":
		return req.FloorAreaM2
	case "wall_m2":
		return req.WallAreaM2
	case "ceiling_m2":
		return req.CeilingAreaM2
	case "wet_zone_m2":
		return req.WetZoneAreaM2
	case "niche":
		return float64(req.NicheCount)
	default: // fixed
		return 1
	}
}

func roundSEK(v float64) int {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return int(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
