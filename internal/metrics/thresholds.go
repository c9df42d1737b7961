package metrics

import "HealthPulse/internal/model"

// Three-band threshold classifiers. Cutoffs are fixed product constants;
// green = favorable, orange = neutral, red = caution.

// ClassifyDeepSleep classifies deep-sleep minutes.
func ClassifyDeepSleep(minutes int) model.Band {
	switch {
	case minutes >= 60:
		return model.BandGreen
	case minutes >= 45:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyRemSleep classifies REM-sleep minutes.
func ClassifyRemSleep(minutes int) model.Band {
	switch {
	case minutes >= 90:
		return model.BandGreen
	case minutes >= 60:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyEfficiency classifies sleep efficiency percent.
func ClassifyEfficiency(pct int) model.Band {
	switch {
	case pct >= 85:
		return model.BandGreen
	case pct >= 75:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyHRV classifies average nightly HRV in milliseconds.
func ClassifyHRV(ms float64) model.Band {
	switch {
	case ms >= 60:
		return model.BandGreen
	case ms >= 40:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyRestingHR classifies resting heart rate in bpm.
func ClassifyRestingHR(bpm int) model.Band {
	switch {
	case bpm < 55:
		return model.BandGreen
	case bpm <= 65:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyLatency classifies sleep-onset latency in minutes.
func ClassifyLatency(minutes int) model.Band {
	switch {
	case minutes <= 15:
		return model.BandGreen
	case minutes <= 30:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyBreathingRate classifies average breaths per minute.
func ClassifyBreathingRate(brpm float64) model.Band {
	switch {
	case brpm <= 17:
		return model.BandGreen
	case brpm <= 20:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifySteps classifies daily step count.
func ClassifySteps(steps int) model.Band {
	switch {
	case steps >= 8000:
		return model.BandGreen
	case steps >= 5000:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifySedentary classifies sedentary minutes.
func ClassifySedentary(minutes int) model.Band {
	switch {
	case minutes <= 480:
		return model.BandGreen
	case minutes <= 600:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyInactivityAlerts classifies the day's inactivity alert count.
func ClassifyInactivityAlerts(n int) model.Band {
	switch {
	case n == 0:
		return model.BandGreen
	case n <= 2:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// ClassifyMET classifies the day's average MET.
func ClassifyMET(avg float64) model.Band {
	switch {
	case avg >= 1.5:
		return model.BandGreen
	case avg >= 1.3:
		return model.BandOrange
	default:
		return model.BandRed
	}
}

// AssessSleep classifies a canonical day's main-segment metrics. Fields
// with missing input stay unclassified. Idempotent: same input, same output.
func AssessSleep(cd *model.CanonicalDay) model.SleepAssessment {
	var a model.SleepAssessment
	if cd == nil || cd.Main == nil {
		return a
	}
	m := cd.Main
	a.DeepSleep = ClassifyDeepSleep(secToMin(m.DeepSleepDuration))
	a.RemSleep = ClassifyRemSleep(secToMin(m.RemSleepDuration))
	if m.Efficiency != nil {
		a.Efficiency = ClassifyEfficiency(*m.Efficiency)
	}
	if m.AverageHRV != nil {
		a.HRV = ClassifyHRV(*m.AverageHRV)
	}
	if m.LowestHeartRate != nil {
		a.RestingHR = ClassifyRestingHR(*m.LowestHeartRate)
	}
	if m.Latency != nil {
		a.Latency = ClassifyLatency(secToMin(*m.Latency))
	}
	if m.AverageBreath != nil {
		a.BreathingRate = ClassifyBreathingRate(*m.AverageBreath)
	}
	return a
}

// AssessActivity classifies a day's activity record.
func AssessActivity(act *model.ActivityDaily) model.ActivityAssessment {
	var a model.ActivityAssessment
	if act == nil {
		return a
	}
	if act.Steps != nil {
		a.Steps = ClassifySteps(*act.Steps)
	}
	if act.SedentaryMin != nil {
		a.Sedentary = ClassifySedentary(*act.SedentaryMin)
	}
	if act.InactivityAlerts != nil {
		a.InactivityAlerts = ClassifyInactivityAlerts(*act.InactivityAlerts)
	}
	if act.AverageMET != nil {
		a.AverageMET = ClassifyMET(*act.AverageMET)
	}
	return a
}

// secToMin rounds seconds to whole minutes, matching the wearable app's
// displayed values.
func secToMin(sec int) int {
	return int(float64(sec)/60 + 0.5)
}
