package metrics

import (
	"math"
	"sort"
	"time"

	"HealthPulse/internal/model"
)

// Night is one night's total sleep for the debt model.
type Night struct {
	Day         string
	DurationSec int
}

// Sleep-debt model constants.
const (
	debtWindowDays      = 14
	debtMinNights       = 5
	baselineMinNights   = 30
	baselineMinFiltered = 20
	trendShiftMinutes   = 15
)

// SleepDebtEstimate replicates the backend's sleep-debt model on client
// data: a trimmed 90-day baseline, a linearly-weighted 14-day debt, a
// short-term trend, and a 0-100 balance score. nights must be ordered
// newest first and already restricted to <= targetDay. Returns a result
// with DataQuality "insufficient" when fewer than 5 recent nights exist,
// and nil when no baseline can be formed at all.
func SleepDebtEstimate(nights []Night, targetDay string) *model.SleepDebt {
	baseline := baselineSleepMinutes(nights)
	if baseline == 0 {
		return nil
	}

	recent := recentWindow(nights, targetDay)
	if len(recent) < debtMinNights {
		return &model.SleepDebt{
			BaselineMinutes: baseline,
			Trend:           "unknown",
			DataQuality:     "insufficient",
		}
	}

	// Weighted debt: today weighs 1.0, day 13 weighs 0.5, linear between.
	var weightedDebt, totalWeight float64
	for i, n := range recent {
		actual := float64(n.DurationSec) / 60
		weight := 1.0 - float64(i)*0.5/13
		weightedDebt += (float64(baseline) - actual) * weight
		totalWeight += weight
	}
	debt := 0
	if totalWeight > 0 {
		debt = int(weightedDebt / totalWeight)
	}

	var sum float64
	for _, n := range recent {
		sum += float64(n.DurationSec) / 60
	}
	avg := int(sum / float64(len(recent)))

	trend := "stable"
	if len(recent) >= 7 {
		recentAvg := meanMinutes(recent[:3])
		previousAvg := meanMinutes(recent[3:7])
		switch {
		case recentAvg > previousAvg+trendShiftMinutes:
			trend = "improving"
		case recentAvg < previousAvg-trendShiftMinutes:
			trend = "worsening"
		}
	}

	score := balanceScore(debt)

	quality := "limited"
	switch {
	case len(recent) >= 12:
		quality = "good"
	case len(recent) >= 8:
		quality = "moderate"
	}

	return &model.SleepDebt{
		DebtMinutes:     &debt,
		BaselineMinutes: baseline,
		Recent14dAvgMin: &avg,
		Trend:           trend,
		BalanceScore:    &score,
		DataQuality:     quality,
	}
}

// balanceScore maps debt minutes to a 0-100 score: -60 min (surplus) is
// 100, zero debt is 85, +120 min is 0.
func balanceScore(debtMinutes int) int {
	switch {
	case debtMinutes <= -60:
		return 100
	case debtMinutes >= 120:
		return 0
	case debtMinutes <= 0:
		return 85 + int(float64(-debtMinutes)/60*15)
	default:
		s := 85 - int(float64(debtMinutes)/120*85)
		if s < 0 {
			s = 0
		}
		return s
	}
}

// baselineSleepMinutes computes the personal sleep-need baseline: nights
// between 3 and 12 hours, extreme values trimmed by the interquartile
// fence, at least 30 samples required. Returns 0 when no baseline forms.
func baselineSleepMinutes(nights []Night) int {
	var durations []float64
	for _, n := range nights {
		min := float64(n.DurationSec) / 60
		if min >= 180 && min <= 720 {
			durations = append(durations, min)
		}
	}
	if len(durations) < baselineMinNights {
		return 0
	}

	q1 := percentile(durations, 25)
	q3 := percentile(durations, 75)
	iqr := q3 - q1
	lower, upper := q1-1.5*iqr, q3+1.5*iqr

	var filtered []float64
	for _, d := range durations {
		if d >= lower && d <= upper {
			filtered = append(filtered, d)
		}
	}
	if len(filtered) < baselineMinFiltered {
		filtered = durations
	}

	var sum float64
	for _, d := range filtered {
		sum += d
	}
	return int(sum / float64(len(filtered)))
}

// recentWindow selects the nights inside the 14 calendar days ending at
// targetDay, newest first. Nights older than the window are excluded even
// when the window itself has gaps.
func recentWindow(nights []Night, targetDay string) []Night {
	cutoff := ""
	if t, err := time.Parse("2006-01-02", targetDay); err == nil {
		cutoff = t.AddDate(0, 0, -(debtWindowDays - 1)).Format("2006-01-02")
	}
	var out []Night
	for _, n := range nights {
		if n.Day <= targetDay && n.Day >= cutoff {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	if len(out) > debtWindowDays {
		out = out[:debtWindowDays]
	}
	return out
}

func meanMinutes(nights []Night) float64 {
	if len(nights) == 0 {
		return 0
	}
	var sum float64
	for _, n := range nights {
		sum += float64(n.DurationSec) / 60
	}
	return sum / float64(len(nights))
}

// percentile computes the pth percentile with linear interpolation,
// matching numpy's default.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (rank-float64(lo))*(sorted[hi]-sorted[lo])
}
