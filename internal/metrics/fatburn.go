package metrics

import "math"

// Fraction of calories burned from fat per heart-rate zone.
var fatRatios = [5]float64{0.85, 0.65, 0.45, 0.25, 0.10}

// caloriesPerFatGram converts fat calories to grams.
const caloriesPerFatGram = 7.7

// FatGrams estimates fat oxidation for a session: the per-zone fat-fuel
// fractions weighted by seconds spent in each zone, applied to the total
// calorie burn. Returns 0 when no zone time was tracked or calories are
// non-positive.
func FatGrams(zoneSeconds [5]int, calories int) int {
	totalSec := 0
	for _, sec := range zoneSeconds {
		totalSec += sec
	}
	if totalSec == 0 || calories <= 0 {
		return 0
	}

	var weighted float64
	for i, sec := range zoneSeconds {
		weighted += float64(sec) * fatRatios[i]
	}
	ratio := weighted / float64(totalSec)

	return int(math.Round(float64(calories) * ratio / caloriesPerFatGram))
}
