package models

import "strings"

// Impact is the severity of the accessibility issue a fix addresses.
type Impact string

// Impact levels.
const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Effort estimates the manual work needed to apply or verify a fix.
type Effort string

// Effort classes.
const (
	EffortEasy    Effort = "easy"
	EffortMedium  Effort = "medium"
	EffortComplex Effort = "complex"
)

// ValidImpacts returns all impact levels, most severe first.
func ValidImpacts() []Impact {
	return []Impact{ImpactHigh, ImpactMedium, ImpactLow}
}

// IsValidImpact checks if an impact level is valid.
func IsValidImpact(impact Impact) bool {
	switch impact {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	default:
		return false
	}
}

// IsValidEffort checks if an effort class is valid.
func IsValidEffort(effort Effort) bool {
	switch effort {
	case EffortEasy, EffortMedium, EffortComplex:
		return true
	default:
		return false
	}
}

// NormalizeImpact maps scanner impact vocabularies (axe-core uses
// critical/serious/moderate/minor) onto the three fix impact levels.
func NormalizeImpact(impact string) Impact {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case "critical", "serious", "high":
		return ImpactHigh
	case "moderate", "medium":
		return ImpactMedium
	case "minor", "low":
		return ImpactLow
	default:
		return ImpactMedium
	}
}

// ImpactRank orders impacts for sorting; lower is more severe.
func ImpactRank(impact Impact) int {
	switch impact {
	case ImpactHigh:
		return 0
	case ImpactMedium:
		return 1
	case ImpactLow:
		return 2
	default:
		return 3
	}
}
