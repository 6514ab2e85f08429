package estimate

import (
	"fmt"

	"github.com/renoveta/badrum-estimator/internal/domain"
)

// BuildIntents maps the user's outcome choices onto the intent vocabulary
// the rule catalog understands, plus a selection map for the pricer. The
// returned log records every mapping decision for troubleshooting.
func BuildIntents(o domain.Outcome) (map[string]bool, map[string]string, []string) {
	intents := make(map[string]bool)
	selections := make(map[string]string)
	var log []string

	set := func(intent string, on bool, why string) {
		if !on {
			return
		}
		intents[intent] = true
		log = append(log, fmt.Sprintf("%s <- %s", intent, why))
	}

	selections["shower_type"] = o.ShowerType
	selections["bathtub"] = o.Bathtub
	selections["toilet"] = o.Toilet
	selections["vanity"] = o.Vanity
	selections["wall_finish"] = o.WallFinish
	selections["floor_finish"] = o.FloorFinish
	selections["ceiling_type"] = o.CeilingType
	selections["layout_change"] = o.LayoutChange
	selections["floor_heating"] = o.FloorHeating

	set("change_layout", o.LayoutChange == "yes", "layout_change=yes")
	set("replace_shower", showerChanged(o.ShowerType), "shower_type="+o.ShowerType)
	set("change_bathtub", bathtubChanged(o.Bathtub), "bathtub="+o.Bathtub)
	set("replace_toilet", o.Toilet != "" && o.Toilet != "keep", "toilet="+o.Toilet)
	set("replace_vanity", o.Vanity != "" && o.Vanity != "keep", "vanity="+o.Vanity)

	switch o.WallFinish {
	case "", "keep":
	case "paint":
		set("paint_walls", true, "wall_finish=paint")
	default:
		set("new_wall_finish", true, "wall_finish="+o.WallFinish)
	}

	set("new_floor_finish", o.FloorFinish != "" && o.FloorFinish != "keep", "floor_finish="+o.FloorFinish)
	set("new_ceiling", o.CeilingType != "" && o.CeilingType != "keep", "ceiling_type="+o.CeilingType)
	set("add_underfloor_heating", o.FloorHeating == "yes", "floor_heating=yes")
	set("build_niche", o.NicheCount > 0, fmt.Sprintf("niche_count=%d", o.NicheCount))

	return intents, selections, log
}

func showerChanged(t string) bool {
	return t != "" && t != "keep" && t != "no_shower"
}

func bathtubChanged(b string) bool {
	return b != "" && b != "keep" && b != "none"
}

// ResolveProfile classifies the renovation. Layout changes dominate; any
// shower or bathtub change short of that means the wet zone is rebuilt.
func ResolveProfile(o domain.Outcome) string {
	if o.LayoutChange == "yes" {
		return ProfileMajor
	}
	if showerChanged(o.ShowerType) || bathtubChanged(o.Bathtub) {
		return ProfileFullRebuild
	}
	return ProfileRefresh
}
