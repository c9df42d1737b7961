package notifier

import (
	"strings"
	"testing"

	"HealthPulse/internal/model"
	"HealthPulse/internal/orchestrate"
)

func TestFormatDailyReport(t *testing.T) {
	score := 82
	hrv := 48.0
	rhr := 52
	steps := 9200
	readiness := 75
	snap := &orchestrate.Snapshot{
		Date: "2025-06-01",
		Sleep: &model.CanonicalDay{
			Day:           "2025-06-01",
			SourceDay:     "2025-06-01",
			SummaryScore:  &score,
			Boost:         3,
			TotalDuration: 27000,
			Main: &model.SleepSegment{
				DeepSleepDuration: 3900,
				RemSleepDuration:  5400,
				AverageHRV:        &hrv,
				LowestHeartRate:   &rhr,
			},
		},
		SleepAssessment: model.SleepAssessment{
			DeepSleep: model.BandGreen,
			RemSleep:  model.BandGreen,
			HRV:       model.BandOrange,
			RestingHR: model.BandGreen,
		},
		Readiness: &model.ReadinessDaily{Day: "2025-06-01", Score: &readiness},
		TrainingToday: &model.TrainingDaily{
			SessionsCount: 1, TotalDurationMin: 60, Zone2Min: 50, HiMin: 2, TRIMP: 62.5,
		},
		SessionEstimates: []model.TrainingEstimates{
			{TRIMP: 62.5, FatGrams: 40, AvgHRZone: 2},
		},
		Activity:           &model.ActivityDaily{Steps: &steps},
		ActivityAssessment: model.ActivityAssessment{Steps: model.BandGreen},
		Deltas: []model.DeltaRecord{
			{Indicator: "hrv", Today: 48, Yesterday: 45, Change: 3, Direction: "up"},
			{Indicator: "resting_hr", Today: 52, Yesterday: 55, Change: -3, Direction: "up"},
		},
	}

	msg := FormatDailyReport(snap)

	for _, want := range []string{
		"2025-06-01",
		"评分: 82",
		"含午睡加成 +3",
		"深睡 🟢 65min",
		"HRV 🟠 48ms",
		"静息心率 🟢 52bpm",
		"准备度</b>: 75",
		"Zone2 50min",
		"脂肪消耗 ~40g",
		"步数 🟢 9200",
		"与昨日对比",
		"静息心率: 55 → 52",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("report missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "数据）") {
		t.Error("same-day report must not carry a stale-data tag")
	}
}

func TestFormatDailyReport_StaleSleepTagged(t *testing.T) {
	score := 70
	snap := &orchestrate.Snapshot{
		Date: "2025-06-01",
		Sleep: &model.CanonicalDay{
			Day:          "2025-06-01",
			SourceDay:    "2025-05-31",
			SummaryScore: &score,
			Main:         &model.SleepSegment{},
		},
	}
	msg := FormatDailyReport(snap)
	if !strings.Contains(msg, "2025-05-31 数据") {
		t.Errorf("backfilled sleep must be labeled with its source day:\n%s", msg)
	}
}

func TestFormatAlert(t *testing.T) {
	danger := FormatAlert(&model.Alert{
		Level: model.AlertDanger, Code: "hrv_low", Message: "HRV 仅 12ms",
	})
	if !strings.Contains(danger, "🚨") || !strings.Contains(danger, "健康警报") {
		t.Errorf("danger alert = %q", danger)
	}

	warning := FormatAlert(&model.Alert{
		Level: model.AlertWarning, Code: "deep_sleep_low", Message: "深睡仅 20 分钟",
	})
	if !strings.Contains(warning, "⚠️") || !strings.Contains(warning, "健康提醒") {
		t.Errorf("warning alert = %q", warning)
	}
}
