package metrics

import "HealthPulse/internal/model"

// Daily training targets: zone-2 minutes below this range flag an aerobic
// shortfall, high-intensity minutes above it flag overload.
const (
	targetZone2MinRange = 45
	targetHiMaxRange    = 5
)

// DailyFlags evaluates the risk flags for one training day. history must
// be ordered oldest to newest and include the target day last; the
// consecutive-high check looks at the trailing 3 days.
func DailyFlags(zone2Min, hiMin int, history []model.TrainingDaily) map[string]bool {
	flags := make(map[string]bool)

	if zone2Min < targetZone2MinRange {
		flags["zone2_low"] = true
	}
	if hiMin > targetHiMaxRange {
		flags["hi_excessive"] = true
	}

	consecutive := 0
	start := len(history) - 3
	if start < 0 {
		start = 0
	}
	for _, d := range history[start:] {
		if d.HiMin > targetHiMaxRange {
			consecutive++
		}
	}
	if consecutive >= 3 {
		flags["consecutive_high"] = true
	}

	return flags
}
