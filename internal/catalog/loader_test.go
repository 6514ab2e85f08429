package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScopeRules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	doc := `
rules:
  - if_any_intents: [replace_shower]
    set_flags: [shower_new, wet_zone_rework]
  - if_any_flags: [wet_zone_rework]
    set_flags: [waterproofing]
  - if_all_flags: [shower_new, waterproofing]
    set_flags: [wet_room_certificate]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	rules, err := LoadScopeRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, []string{"replace_shower"}, rules[0].IfAnyIntents)
	assert.Equal(t, []string{"shower_new", "waterproofing"}, rules[2].IfAllFlags)
}

func TestLoadScopeRules_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadScopeRules(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScopeRules_EmptyDoc(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0o644))

	_, err := LoadScopeRules(path)
	assert.Error(t, err)
}

func TestLoadPriceCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `{
  "labor_rate_sek_per_hour": 700,
  "project_management_pct": 0.1,
  "contingency_pct": 0.05,
  "tasks": [
    {"key": "tiling_walls", "trade_group": "tiling", "qty_basis": "wall_m2",
     "unit": "m2", "labor_sek_per_unit": 1000, "material_sek_per_unit": 400,
     "rot_eligible": true, "requires_flags": ["wall_finish_new"]}
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadPriceCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 700.0, c.LaborRateSEKPerHour)
	require.Len(t, c.Tasks, 1)
	assert.Equal(t, "tiling_walls", c.Tasks[0].Key)
	assert.True(t, c.Tasks[0].ROTEligible)
}

func TestLoadPriceCatalog_BadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := LoadPriceCatalog(path)
	assert.Error(t, err)
}
