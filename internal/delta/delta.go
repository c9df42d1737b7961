// Package delta compares today's canonical metrics against yesterday's
// and selects the single highest-priority alert condition.
package delta

import (
	"fmt"

	"HealthPulse/internal/model"
)

// indicator names, stable identifiers used in records and reports.
const (
	IndicatorHRV       = "hrv"
	IndicatorRestingHR = "resting_hr"
	IndicatorDeepSleep = "deep_sleep_min"
	IndicatorRemSleep  = "rem_sleep_min"
)

// tracked defines the core day-over-day indicators and whether a numeric
// increase is the favorable direction. Resting heart rate inverts: lower
// is better.
var tracked = []struct {
	Name           string
	HigherIsBetter bool
}{
	{IndicatorHRV, true},
	{IndicatorRestingHR, false},
	{IndicatorDeepSleep, true},
	{IndicatorRemSleep, true},
}

// Compute builds one DeltaRecord per tracked indicator present on both
// days. An indicator with a missing or zero side is skipped, not errored.
// Direction is normalized: "up" always means the change is favorable.
func Compute(today, yesterday *model.OuraSummary) []model.DeltaRecord {
	if today == nil || yesterday == nil {
		return nil
	}

	var out []model.DeltaRecord
	for _, ind := range tracked {
		t, okT := indicatorValue(today, ind.Name)
		y, okY := indicatorValue(yesterday, ind.Name)
		if !okT || !okY {
			continue
		}

		change := t - y
		favorable := change > 0
		if !ind.HigherIsBetter {
			favorable = change < 0
		}
		direction := "down"
		if favorable {
			direction = "up"
		}
		if change == 0 {
			direction = "up" // holding steady is not a regression
		}

		out = append(out, model.DeltaRecord{
			Indicator: ind.Name,
			Today:     t,
			Yesterday: y,
			Change:    change,
			Direction: direction,
		})
	}
	return out
}

// indicatorValue extracts one indicator from a summary. Zero-like values
// are treated as absent: a zero HRV or resting HR is a sensor dropout,
// not a reading.
func indicatorValue(s *model.OuraSummary, name string) (float64, bool) {
	switch name {
	case IndicatorHRV:
		if s.AverageHRV == nil || *s.AverageHRV == 0 {
			return 0, false
		}
		return float64(*s.AverageHRV), true
	case IndicatorRestingHR:
		if s.RestingHeartRate == nil || *s.RestingHeartRate == 0 {
			return 0, false
		}
		return float64(*s.RestingHeartRate), true
	case IndicatorDeepSleep:
		if s.DeepSleepMin == nil || *s.DeepSleepMin == 0 {
			return 0, false
		}
		return float64(*s.DeepSleepMin), true
	case IndicatorRemSleep:
		if s.RemSleepMin == nil || *s.RemSleepMin == 0 {
			return 0, false
		}
		return float64(*s.RemSleepMin), true
	}
	return 0, false
}

// AlertInput carries the quantities the alert ladder inspects. Nil fields
// are skipped: a rung with missing input cannot fire.
type AlertInput struct {
	TemperatureDeviation *float64
	AverageHRV           *float64
	ReadinessScore       *int
	DeepSleepMin         *int
}

// Alert evaluates the strict priority ladder top to bottom and returns the
// first matching condition, or nil when nothing fires. At most one alert
// surfaces per evaluation; the result is recomputed from scratch on every
// load cycle, never carried over.
func Alert(in AlertInput) *model.Alert {
	if in.TemperatureDeviation != nil {
		dev := *in.TemperatureDeviation
		if dev > 0.5 || dev < -0.5 {
			return &model.Alert{
				Level:   model.AlertDanger,
				Code:    "temp_deviation",
				Message: fmt.Sprintf("体温偏差 %+.1f°C，超出正常范围，注意休息并观察身体状况", dev),
				Value:   dev,
			}
		}
	}
	if in.AverageHRV != nil && *in.AverageHRV < 15 {
		return &model.Alert{
			Level:   model.AlertDanger,
			Code:    "hrv_low",
			Message: fmt.Sprintf("HRV 仅 %.0fms，身体恢复严重不足，建议全天休息", *in.AverageHRV),
			Value:   *in.AverageHRV,
		}
	}
	if in.ReadinessScore != nil && *in.ReadinessScore < 60 {
		return &model.Alert{
			Level:   model.AlertWarning,
			Code:    "readiness_low",
			Message: fmt.Sprintf("准备度评分 %d，今天适合轻量活动", *in.ReadinessScore),
			Value:   float64(*in.ReadinessScore),
		}
	}
	if in.DeepSleepMin != nil && *in.DeepSleepMin < 30 {
		return &model.Alert{
			Level:   model.AlertWarning,
			Code:    "deep_sleep_low",
			Message: fmt.Sprintf("深睡仅 %d 分钟，建议今晚提前入睡", *in.DeepSleepMin),
			Value:   float64(*in.DeepSleepMin),
		}
	}
	return nil
}
