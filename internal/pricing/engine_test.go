package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_FlagsSelectTasks(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultCatalog())
	res, err := e.Price(Request{
		Flags:         []string{"wall_finish_new", "waste_disposal"},
		FloorAreaM2:   6.0,
		WallAreaM2:    24.0,
		CeilingAreaM2: 6.0,
		WetZoneAreaM2: 24.0,
	})
	require.NoError(t, err)

	keys := map[string]LineItem{}
	for _, it := range res.Items {
		keys[it.Key] = it
	}

	require.Contains(t, keys, "tiling_walls")
	assert.NotContains(t, keys, "plumbing_rough_in")
	assert.NotContains(t, keys, "shower_install")

	tiling := keys["tiling_walls"]
	assert.Equal(t, 24.0, tiling.Qty)
	assert.Equal(t, 26400, tiling.LaborSEK) // 24 * 1100
	assert.Equal(t, 11520, tiling.MaterialSEK)
	assert.Equal(t, tiling.LaborSEK+tiling.MaterialSEK, tiling.SubtotalSEK)
}

func TestPrice_TotalsAddUp(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultCatalog())
	res, err := e.Price(Request{
		Flags:       []string{"floor_finish_new", "waterproofing", "waste_disposal"},
		FloorAreaM2: 5.0, WallAreaM2: 20.0, CeilingAreaM2: 5.0, WetZoneAreaM2: 16.0,
	})
	require.NoError(t, err)

	sum := 0
	for _, it := range res.Items {
		if it.Key == "project_management" || it.Key == "contingency" {
			continue
		}
		sum += it.SubtotalSEK
	}
	assert.Equal(t, res.BaseSubtotalSEK, sum)
	assert.Equal(t, res.BaseSubtotalSEK+res.ProjectManagementSEK+res.ContingencySEK, res.GrandTotalSEK)
	assert.Greater(t, res.ProjectManagementSEK, 0)
	assert.Greater(t, res.ContingencySEK, 0)
}

func TestPrice_SiteAllowanceBecomesLineItem(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultCatalog())
	res, err := e.Price(Request{
		FloorAreaM2: 5.0, WallAreaM2: 20.0,
		Allowance: &AllowanceHours{
			AccessHours: 2.0, AdminHours: 2.0,
			ReasonCodes: []string{"FLOOR_NO_ELEVATOR_1_2", "PERMIT_REQUIRED"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, res.SiteEffect)
	assert.Equal(t, 2600, res.SiteEffect.AddedLaborSEK) // 4h * 650
	assert.Equal(t, res.SiteEffect.AddedLaborSEK, res.SiteEffect.AddedTotalSEK)
	assert.Equal(t, []string{"FLOOR_NO_ELEVATOR_1_2", "PERMIT_REQUIRED"}, res.SiteEffect.ReasonCodes)

	var found bool
	for _, it := range res.Items {
		if it.Key == "site_conditions_allowance" {
			found = true
			assert.Equal(t, GroupSiteConditions, it.TradeGroup)
			assert.True(t, it.ROTEligible)
		}
	}
	assert.True(t, found)
}

func TestPrice_NicheQuantity(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultCatalog())
	res, err := e.Price(Request{
		Flags:      []string{"niche_build"},
		NicheCount: 2,
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 3) // niches + pm + contingency
	assert.Equal(t, 2.0, res.Items[0].Qty)
	assert.Equal(t, 6800, res.Items[0].LaborSEK)
}

func TestPrice_ZeroAreasYieldNoAreaTasks(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultCatalog())
	res, err := e.Price(Request{Flags: []string{"wall_finish_new", "floor_finish_new"}})
	require.NoError(t, err)

	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.GrandTotalSEK)
}
