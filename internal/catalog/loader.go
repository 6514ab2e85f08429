package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/renoveta/badrum-estimator/internal/estimate"
	"github.com/renoveta/badrum-estimator/internal/pricing"
)

// LoadScopeRules reads the scope-rule catalog from a YAML file. The caller
// falls back to estimate.DefaultScopeRules on error.
func LoadScopeRules(path string) ([]estimate.ScopeRule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var doc struct {
		Rules []estimate.ScopeRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s: no rules", path)
	}
	return doc.Rules, nil
}

// LoadPriceCatalog reads the task catalog from a JSON file. The caller
// falls back to pricing.DefaultCatalog on error.
func LoadPriceCatalog(path string) (pricing.Catalog, error) {
	var c pricing.Catalog
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read catalog file: %w", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if len(c.Tasks) == 0 {
		return c, fmt.Errorf("catalog file %s: no tasks", path)
	}
	return c, nil
}
