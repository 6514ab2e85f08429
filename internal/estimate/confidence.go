package estimate

// Confidence reason codes.
const (
	ReasonQualityConfirmed   = "quality_confirmed"
	ReasonQualitySemi        = "quality_semi_confirmed"
	ReasonQualityRough       = "quality_rough"
	ReasonLowAnalysisConf    = "low_analysis_confidence"
	ReasonInsufficientImages = "insufficient_image_quality"
	ReasonBlockingNC         = "blocking_needs_confirmation"
	ReasonWarningsPresent    = "warnings_present"
	ReasonFlagsPresent       = "outlier_flags_present"
)

const minAnalysisConfidence = 0.6

// ConfidenceInput bundles the signals the tier classifier reads.
type ConfidenceInput struct {
	Quality            string
	AnalysisConfidence float64
	ImageQuality       string // "ok" or "insufficient"
	BlockingNC         bool
	HasWarnings        bool
	HasFlags           bool
}

// ClassifyConfidence derives the tier from estimate quality, then demotes
// once for weak analysis signals (low confidence or bad images count as one
// trigger category, never two demotions) and once more for blocking
// needs-confirmation codes. Warnings and outlier flags only add reasons.
func ClassifyConfidence(in ConfidenceInput) (string, []string) {
	var tier string
	var reasons []string

	switch in.Quality {
	case QualityConfirmed:
		tier = TierHigh
		reasons = append(reasons, ReasonQualityConfirmed)
	case QualitySemiConfirmed:
		tier = TierMedium
		reasons = append(reasons, ReasonQualitySemi)
	default:
		tier = TierLow
		reasons = append(reasons, ReasonQualityRough)
	}

	weakAnalysis := false
	if in.AnalysisConfidence < minAnalysisConfidence {
		weakAnalysis = true
		reasons = append(reasons, ReasonLowAnalysisConf)
	}
	if in.ImageQuality == "insufficient" {
		weakAnalysis = true
		reasons = append(reasons, ReasonInsufficientImages)
	}
	if weakAnalysis {
		tier = demote(tier)
	}

	if in.BlockingNC {
		tier = demote(tier)
		reasons = append(reasons, ReasonBlockingNC)
	}

	if in.HasWarnings {
		reasons = append(reasons, ReasonWarningsPresent)
	}
	if in.HasFlags {
		reasons = append(reasons, ReasonFlagsPresent)
	}

	return tier, reasons
}

func demote(tier string) string {
	switch tier {
	case TierHigh:
		return TierMedium
	case TierMedium:
		return TierLow
	default:
		return TierLow
	}
}
