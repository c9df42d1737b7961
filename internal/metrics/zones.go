package metrics

import "HealthPulse/internal/model"

// AttributeZone finds the heart-rate zone for a session's average HR.
// With zone boundaries available, the zone whose [lower, upper) bracket
// contains avgHR wins; zone 5's upper bound is open-ended. Without
// boundaries, the zone with the most accumulated seconds is used.
// Returns 0 when nothing is attributable.
func AttributeZone(avgHR int, limits []model.ZoneLimit, zoneSeconds [5]int) int {
	if avgHR > 0 && len(limits) == 5 {
		for i, lim := range limits {
			if avgHR < lim.Lower {
				continue
			}
			if i == 4 || avgHR < lim.Upper {
				return i + 1
			}
		}
	}

	// Fallback: most time spent wins.
	best, bestSec := 0, 0
	for i, sec := range zoneSeconds {
		if sec > bestSec {
			best, bestSec = i+1, sec
		}
	}
	return best
}

// ZonePercents returns each zone's share of tracked time, 0-100.
// All zeros when no time was tracked.
func ZonePercents(zoneSeconds [5]int) [5]float64 {
	total := 0
	for _, sec := range zoneSeconds {
		total += sec
	}
	var out [5]float64
	if total == 0 {
		return out
	}
	for i, sec := range zoneSeconds {
		out[i] = float64(sec) / float64(total) * 100
	}
	return out
}

// SessionEstimates computes all zone-weighted estimates for one session.
func SessionEstimates(s *model.ExerciseSession) model.TrainingEstimates {
	trimp, native := SessionTRIMP(s)
	avgHR := 0
	if s.AvgHR != nil {
		avgHR = *s.AvgHR
	}
	return model.TrainingEstimates{
		TRIMP:        trimp,
		TRIMPNative:  native,
		FatGrams:     FatGrams(s.ZoneSeconds, s.Calories),
		AvgHRZone:    AttributeZone(avgHR, s.ZoneLimits, s.ZoneSeconds),
		ZonePercents: ZonePercents(s.ZoneSeconds),
	}
}
