package estimate

import "sort"

// ScopeRule derives scope flags from intents and from other flags. A rule
// fires when any listed intent is true, when any of IfAnyFlags is present,
// or when all of IfAllFlags are present.
type ScopeRule struct {
	IfAnyIntents []string `yaml:"if_any_intents,omitempty" json:"if_any_intents,omitempty"`
	IfAnyFlags   []string `yaml:"if_any_flags,omitempty" json:"if_any_flags,omitempty"`
	IfAllFlags   []string `yaml:"if_all_flags,omitempty" json:"if_all_flags,omitempty"`
	SetFlags     []string `yaml:"set_flags" json:"set_flags"`
}

// CompileFlags expands intents into the closed set of derived scope flags.
// Pass 1 fires intent rules; subsequent passes fire flag rules until a
// fixpoint. The set grows monotonically and is bounded by the rule
// vocabulary, so the loop terminates. Output is sorted and idempotent:
// feeding the result back through the flag rules adds nothing.
func CompileFlags(rules []ScopeRule, intents map[string]bool) []string {
	flags := make(map[string]struct{})

	for _, r := range rules {
		for _, in := range r.IfAnyIntents {
			if intents[in] {
				addAll(flags, r.SetFlags)
				break
			}
		}
	}

	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			if !flagRuleFires(r, flags) {
				continue
			}
			for _, f := range r.SetFlags {
				if _, ok := flags[f]; !ok {
					flags[f] = struct{}{}
					changed = true
				}
			}
		}
	}

	out := make([]string, 0, len(flags))
	for f := range flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func flagRuleFires(r ScopeRule, flags map[string]struct{}) bool {
	for _, f := range r.IfAnyFlags {
		if _, ok := flags[f]; ok {
			return true
		}
	}
	if len(r.IfAllFlags) > 0 {
		for _, f := range r.IfAllFlags {
			if _, ok := flags[f]; !ok {
				return false
			}
		}
		return true
	}
	return false
}

func addAll(set map[string]struct{}, items []string) {
	for _, it := range items {
		set[it] = struct{}{}
	}
}

// DefaultScopeRules is the compiled-in rule catalog. A YAML file with the
// same shape can replace it via the catalog loader.
func DefaultScopeRules() []ScopeRule {
	return []ScopeRule{
		{IfAnyIntents: []string{"change_layout"}, SetFlags: []string{"layout_reconfiguration", "full_demolition", "plumbing_rework", "electrical_rework"}},
		{IfAnyIntents: []string{"replace_shower"}, SetFlags: []string{"shower_new", "wet_zone_rework"}},
		{IfAnyIntents: []string{"change_bathtub"}, SetFlags: []string{"bathtub_new", "wet_zone_rework"}},
		{IfAnyIntents: []string{"replace_toilet"}, SetFlags: []string{"toilet_new"}},
		{IfAnyIntents: []string{"replace_vanity"}, SetFlags: []string{"vanity_new"}},
		{IfAnyIntents: []string{"new_wall_finish"}, SetFlags: []string{"wall_finish_new"}},
		{IfAnyIntents: []string{"paint_walls"}, SetFlags: []string{"wall_paint"}},
		{IfAnyIntents: []string{"new_floor_finish"}, SetFlags: []string{"floor_finish_new"}},
		{IfAnyIntents: []string{"new_ceiling"}, SetFlags: []string{"ceiling_new"}},
		{IfAnyIntents: []string{"add_underfloor_heating"}, SetFlags: []string{"floor_heating"}},
		{IfAnyIntents: []string{"build_niche"}, SetFlags: []string{"niche_build"}},

		{IfAnyFlags: []string{"full_demolition"}, SetFlags: []string{"floor_finish_new", "wall_finish_new", "ceiling_new", "waste_disposal", "ventilation_update"}},
		{IfAnyFlags: []string{"wet_zone_rework"}, SetFlags: []string{"waterproofing", "plumbing_rework"}},
		{IfAnyFlags: []string{"floor_heating"}, SetFlags: []string{"floor_demolition", "electrical_rework"}},
		{IfAnyFlags: []string{"floor_finish_new", "floor_demolition"}, SetFlags: []string{"floor_substrate", "waterproofing"}},
		{IfAnyFlags: []string{"waterproofing"}, SetFlags: []string{"moisture_inspection"}},
		{IfAnyFlags: []string{"floor_substrate", "wall_finish_new"}, SetFlags: []string{"waste_disposal"}},
		{IfAllFlags: []string{"wall_finish_new", "waterproofing"}, SetFlags: []string{"wet_room_certificate"}},
	}
}
