package estimate

import (
	"math"

	"github.com/renoveta/badrum-estimator/internal/pricing"
)

// ROT cap reasons.
const (
	ROTCapMaxLimit     = "rot_max_limit"
	ROTCapUnknownLimit = "unknown_user_tax_limit"
)

// ROTSummary is the tax-deduction breakdown returned to the client.
type ROTSummary struct {
	Rate             float64 `json:"rot_rate"`
	EligibleLaborSEK int     `json:"rot_eligible_labor_sek"`
	DeductionSEK     int     `json:"rot_deduction_sek"`
	TotalAfterROTSEK int     `json:"total_after_rot_sek"`
	CapApplied       bool    `json:"rot_cap_applied"`
	CapReason        string  `json:"rot_cap_reason"`
	CapSEK           *int    `json:"rot_cap_sek,omitempty"`
}

// ComputeROT sums labor across ROT-eligible line items and applies the
// configured rate and optional cap. Without a cap the reason records that
// the user's remaining personal allowance is unknown to us.
func ComputeROT(items []pricing.LineItem, grandTotal int, cfg ROTConfig) ROTSummary {
	rate := clamp01(cfg.Rate)

	eligible := 0
	for _, it := range items {
		if it.ROTEligible {
			eligible += it.LaborSEK
		}
	}

	deduction := int(math.Round(float64(eligible) * rate))

	s := ROTSummary{
		Rate:             rate,
		EligibleLaborSEK: eligible,
		CapReason:        ROTCapUnknownLimit,
	}
	if cfg.MaxDeductionSEK > 0 {
		limit := cfg.MaxDeductionSEK
		s.CapSEK = &limit
		if deduction > limit {
			deduction = limit
			s.CapApplied = true
			s.CapReason = ROTCapMaxLimit
		}
	}

	s.DeductionSEK = deduction
	s.TotalAfterROTSEK = maxInt(grandTotal-deduction, 0)
	return s
}
