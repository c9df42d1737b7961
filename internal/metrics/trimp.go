// Package metrics holds the pure derived-metric functions: zone-weighted
// training estimates, threshold classifications and the sleep-debt model.
// The coefficients are domain constants; behavioral parity with the
// upstream source matters more than their provenance.
package metrics

import (
	"math"

	"HealthPulse/internal/model"
)

// Per-zone TRIMP weights, zones 1-5.
var trimpZoneWeights = [5]float64{1.0, 1.25, 1.5, 1.75, 2.0}

// TRIMP computes the training-impulse load from per-zone dwell times:
// minutes in each zone weighted by the zone multiplier, rounded to two
// decimals.
func TRIMP(zoneSeconds [5]int) float64 {
	var sum float64
	for i, sec := range zoneSeconds {
		sum += float64(sec) * trimpZoneWeights[i]
	}
	return math.Round(sum/60*100) / 100
}

// SessionTRIMP returns a session's training load. The wearable's native
// cardio-load value always takes precedence; the local TRIMP estimate is
// only a fallback. The second return reports whether the value is native.
func SessionTRIMP(s *model.ExerciseSession) (float64, bool) {
	if s.CardioLoad != nil && *s.CardioLoad > 0 {
		return *s.CardioLoad, true
	}
	return TRIMP(s.ZoneSeconds), false
}
