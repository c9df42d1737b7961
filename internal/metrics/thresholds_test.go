package metrics

import (
	"testing"

	"HealthPulse/internal/model"
)

func TestClassifyDeepSleep(t *testing.T) {
	tests := []struct {
		minutes int
		want    model.Band
	}{
		{90, model.BandGreen},
		{60, model.BandGreen},
		{59, model.BandOrange},
		{45, model.BandOrange},
		{44, model.BandRed},
		{0, model.BandRed},
	}
	for _, tt := range tests {
		if got := ClassifyDeepSleep(tt.minutes); got != tt.want {
			t.Errorf("ClassifyDeepSleep(%d) = %s, want %s", tt.minutes, got, tt.want)
		}
	}
}

func TestClassifyRemSleep(t *testing.T) {
	tests := []struct {
		minutes int
		want    model.Band
	}{
		{90, model.BandGreen},
		{89, model.BandOrange},
		{60, model.BandOrange},
		{59, model.BandRed},
	}
	for _, tt := range tests {
		if got := ClassifyRemSleep(tt.minutes); got != tt.want {
			t.Errorf("ClassifyRemSleep(%d) = %s, want %s", tt.minutes, got, tt.want)
		}
	}
}

func TestClassifyRestingHR(t *testing.T) {
	tests := []struct {
		bpm  int
		want model.Band
	}{
		{48, model.BandGreen},
		{54, model.BandGreen},
		{55, model.BandOrange},
		{65, model.BandOrange},
		{66, model.BandRed},
	}
	for _, tt := range tests {
		if got := ClassifyRestingHR(tt.bpm); got != tt.want {
			t.Errorf("ClassifyRestingHR(%d) = %s, want %s", tt.bpm, got, tt.want)
		}
	}
}

func TestClassifyHRV(t *testing.T) {
	tests := []struct {
		ms   float64
		want model.Band
	}{
		{75, model.BandGreen},
		{60, model.BandGreen},
		{59.9, model.BandOrange},
		{40, model.BandOrange},
		{39.9, model.BandRed},
	}
	for _, tt := range tests {
		if got := ClassifyHRV(tt.ms); got != tt.want {
			t.Errorf("ClassifyHRV(%v) = %s, want %s", tt.ms, got, tt.want)
		}
	}
}

func TestClassifyActivityBands(t *testing.T) {
	if got := ClassifySteps(8000); got != model.BandGreen {
		t.Errorf("ClassifySteps(8000) = %s, want green", got)
	}
	if got := ClassifySteps(4999); got != model.BandRed {
		t.Errorf("ClassifySteps(4999) = %s, want red", got)
	}
	if got := ClassifySedentary(480); got != model.BandGreen {
		t.Errorf("ClassifySedentary(480) = %s, want green", got)
	}
	if got := ClassifySedentary(601); got != model.BandRed {
		t.Errorf("ClassifySedentary(601) = %s, want red", got)
	}
	if got := ClassifyInactivityAlerts(0); got != model.BandGreen {
		t.Errorf("ClassifyInactivityAlerts(0) = %s, want green", got)
	}
	if got := ClassifyInactivityAlerts(3); got != model.BandRed {
		t.Errorf("ClassifyInactivityAlerts(3) = %s, want red", got)
	}
	if got := ClassifyMET(1.3); got != model.BandOrange {
		t.Errorf("ClassifyMET(1.3) = %s, want orange", got)
	}
}

func TestAssessSleep(t *testing.T) {
	eff := 88
	hrv := 35.0
	rhr := 70
	latency := 900 // 15 min in seconds
	breath := 16.2
	cd := &model.CanonicalDay{
		Day:       "2025-06-01",
		SourceDay: "2025-06-01",
		Main: &model.SleepSegment{
			DeepSleepDuration: 3900, // 65 min
			RemSleepDuration:  4200, // 70 min
			Efficiency:        &eff,
			AverageHRV:        &hrv,
			LowestHeartRate:   &rhr,
			Latency:           &latency,
			AverageBreath:     &breath,
		},
	}
	a := AssessSleep(cd)
	if a.DeepSleep != model.BandGreen {
		t.Errorf("DeepSleep = %s, want green", a.DeepSleep)
	}
	if a.RemSleep != model.BandOrange {
		t.Errorf("RemSleep = %s, want orange", a.RemSleep)
	}
	if a.Efficiency != model.BandGreen {
		t.Errorf("Efficiency = %s, want green", a.Efficiency)
	}
	if a.HRV != model.BandRed {
		t.Errorf("HRV = %s, want red", a.HRV)
	}
	if a.RestingHR != model.BandRed {
		t.Errorf("RestingHR = %s, want red", a.RestingHR)
	}
	if a.Latency != model.BandGreen {
		t.Errorf("Latency = %s, want green", a.Latency)
	}
	if a.BreathingRate != model.BandGreen {
		t.Errorf("BreathingRate = %s, want green", a.BreathingRate)
	}
}

func TestAssessSleep_MissingInputStaysUnclassified(t *testing.T) {
	cd := &model.CanonicalDay{
		Main: &model.SleepSegment{DeepSleepDuration: 3600},
	}
	a := AssessSleep(cd)
	if a.DeepSleep != model.BandGreen {
		t.Errorf("DeepSleep = %s, want green", a.DeepSleep)
	}
	if a.Efficiency != model.BandNone || a.HRV != model.BandNone {
		t.Error("fields without input must stay unclassified")
	}
}

func TestAssessSleep_NilDay(t *testing.T) {
	if a := AssessSleep(nil); a != (model.SleepAssessment{}) {
		t.Errorf("AssessSleep(nil) = %+v, want zero value", a)
	}
	if a := AssessSleep(&model.CanonicalDay{}); a != (model.SleepAssessment{}) {
		t.Errorf("AssessSleep without main = %+v, want zero value", a)
	}
}

func TestAssessActivity(t *testing.T) {
	steps := 6200
	sedentary := 620
	alerts := 1
	met := 1.6
	a := AssessActivity(&model.ActivityDaily{
		Steps:            &steps,
		SedentaryMin:     &sedentary,
		InactivityAlerts: &alerts,
		AverageMET:       &met,
	})
	if a.Steps != model.BandOrange {
		t.Errorf("Steps = %s, want orange", a.Steps)
	}
	if a.Sedentary != model.BandRed {
		t.Errorf("Sedentary = %s, want red", a.Sedentary)
	}
	if a.InactivityAlerts != model.BandOrange {
		t.Errorf("InactivityAlerts = %s, want orange", a.InactivityAlerts)
	}
	if a.AverageMET != model.BandGreen {
		t.Errorf("AverageMET = %s, want green", a.AverageMET)
	}
}
