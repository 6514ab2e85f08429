package estimate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFlags_FixpointChain(t *testing.T) {
	t.Parallel()

	flags := CompileFlags(DefaultScopeRules(), map[string]bool{
		"add_underfloor_heating": true,
	})

	// heating pulls in demolition, substrate, waterproofing and their
	// follow-ups across several fixpoint passes
	for _, want := range []string{
		"floor_heating", "floor_demolition", "electrical_rework",
		"floor_substrate", "waterproofing", "moisture_inspection", "waste_disposal",
	} {
		assert.Contains(t, flags, want)
	}
	assert.NotContains(t, flags, "wet_room_certificate", "needs wall_finish_new too")
}

func TestCompileFlags_IfAllFlags(t *testing.T) {
	t.Parallel()

	flags := CompileFlags(DefaultScopeRules(), map[string]bool{
		"new_wall_finish": true,
		"replace_shower":  true,
	})
	assert.Contains(t, flags, "wet_room_certificate")
}

func TestCompileFlags_OutputIsClosed(t *testing.T) {
	t.Parallel()

	rules := DefaultScopeRules()
	out := CompileFlags(rules, map[string]bool{
		"change_layout":          true,
		"add_underfloor_heating": true,
		"replace_shower":         true,
	})

	set := make(map[string]struct{}, len(out))
	for _, f := range out {
		set[f] = struct{}{}
	}

	// Closure: any flag rule that fires on the output set must only set
	// flags already in it.
	for _, r := range rules {
		fires := false
		for _, f := range r.IfAnyFlags {
			if _, ok := set[f]; ok {
				fires = true
			}
		}
		if !fires && len(r.IfAllFlags) > 0 {
			fires = true
			for _, f := range r.IfAllFlags {
				if _, ok := set[f]; !ok {
					fires = false
				}
			}
		}
		if !fires {
			continue
		}
		for _, f := range r.SetFlags {
			_, ok := set[f]
			require.True(t, ok, "rule adds %q outside the fixpoint", f)
		}
	}
}

func TestCompileFlags_OrderIndependent(t *testing.T) {
	t.Parallel()

	intents := map[string]bool{
		"change_layout":  true,
		"replace_toilet": true,
		"build_niche":    true,
	}
	want := CompileFlags(DefaultScopeRules(), intents)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		rules := DefaultScopeRules()
		rng.Shuffle(len(rules), func(a, b int) { rules[a], rules[b] = rules[b], rules[a] })
		assert.Equal(t, want, CompileFlags(rules, intents))
	}
}

func TestCompileFlags_NoIntents(t *testing.T) {
	t.Parallel()
	assert.Empty(t, CompileFlags(DefaultScopeRules(), nil))
}
