package notifier

import (
	"fmt"
	"strings"

	"HealthPulse/internal/model"
	"HealthPulse/internal/orchestrate"
)

var bandIcons = map[model.Band]string{
	model.BandGreen:  "🟢",
	model.BandOrange: "🟠",
	model.BandRed:    "🔴",
}

func bandIcon(b model.Band) string {
	if icon, ok := bandIcons[b]; ok && b != model.BandNone {
		return icon
	}
	return "⚪"
}

// FormatDailyReport renders a completed load cycle into a Telegram message.
func FormatDailyReport(snap *orchestrate.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("💓 <b>HealthPulse 日报</b> | %s\n\n", snap.Date))

	if snap.Sleep != nil && snap.Sleep.Main != nil {
		m := snap.Sleep.Main
		b.WriteString("😴 <b>睡眠</b>")
		if snap.Sleep.StaleData() {
			b.WriteString(fmt.Sprintf("（%s 数据）", snap.Sleep.SourceDay))
		}
		b.WriteString("\n")
		if snap.Sleep.SummaryScore != nil {
			b.WriteString(fmt.Sprintf("  评分: %d", *snap.Sleep.SummaryScore))
			if snap.Sleep.Boost > 0 {
				b.WriteString(fmt.Sprintf(" (含午睡加成 +%d)", snap.Sleep.Boost))
			}
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("  总时长: %.1fh | 深睡 %s %dmin | REM %s %dmin\n",
			float64(snap.Sleep.TotalDuration)/3600,
			bandIcon(snap.SleepAssessment.DeepSleep), m.DeepSleepDuration/60,
			bandIcon(snap.SleepAssessment.RemSleep), m.RemSleepDuration/60))
		if m.AverageHRV != nil {
			b.WriteString(fmt.Sprintf("  HRV %s %.0fms", bandIcon(snap.SleepAssessment.HRV), *m.AverageHRV))
			if m.LowestHeartRate != nil {
				b.WriteString(fmt.Sprintf(" | 静息心率 %s %dbpm", bandIcon(snap.SleepAssessment.RestingHR), *m.LowestHeartRate))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if snap.Readiness != nil && snap.Readiness.Score != nil {
		b.WriteString(fmt.Sprintf("⚡ <b>准备度</b>: %d\n\n", *snap.Readiness.Score))
	}

	if snap.TrainingToday != nil {
		t := snap.TrainingToday
		b.WriteString("🏃 <b>训练</b>\n")
		b.WriteString(fmt.Sprintf("  %d 次 | %dmin | Zone2 %dmin | 高强度 %dmin\n",
			t.SessionsCount, t.TotalDurationMin, t.Zone2Min, t.HiMin))
		b.WriteString(fmt.Sprintf("  TRIMP: %.1f\n", t.TRIMP))
		for i, est := range snap.SessionEstimates {
			b.WriteString(fmt.Sprintf("  课次%d: 负荷 %.1f | 脂肪消耗 ~%dg | 主区间 Z%d\n",
				i+1, est.TRIMP, est.FatGrams, est.AvgHRZone))
		}
		b.WriteString("\n")
	}

	if snap.Activity != nil && snap.Activity.Steps != nil {
		b.WriteString(fmt.Sprintf("🚶 步数 %s %d\n\n", bandIcon(snap.ActivityAssessment.Steps), *snap.Activity.Steps))
	}

	if snap.SleepDebt != nil && snap.SleepDebt.DebtMinutes != nil {
		b.WriteString(fmt.Sprintf("🛏 睡眠债务: %+dmin (%s)\n\n",
			*snap.SleepDebt.DebtMinutes, snap.SleepDebt.Trend))
	}

	if len(snap.Deltas) > 0 {
		b.WriteString("📊 <b>与昨日对比</b>\n")
		for _, d := range snap.Deltas {
			arrow := "↘️"
			if d.Direction == "up" {
				arrow = "↗️"
			}
			b.WriteString(fmt.Sprintf("  %s %s: %.0f → %.0f\n", arrow, deltaLabel(d.Indicator), d.Yesterday, d.Today))
		}
		b.WriteString("\n")
	}

	if snap.Alert != nil {
		b.WriteString(FormatAlert(snap.Alert))
	}

	return b.String()
}

// FormatAlert renders a single alert message.
func FormatAlert(alert *model.Alert) string {
	icon := "⚠️"
	if alert.Level == model.AlertDanger {
		icon = "🚨"
	}
	return fmt.Sprintf("%s <b>%s</b>\n%s\n", icon, alertTitle(alert.Level), alert.Message)
}

func alertTitle(level string) string {
	if level == model.AlertDanger {
		return "健康警报"
	}
	return "健康提醒"
}

func deltaLabel(indicator string) string {
	switch indicator {
	case "hrv":
		return "HRV"
	case "resting_hr":
		return "静息心率"
	case "deep_sleep_min":
		return "深睡"
	case "rem_sleep_min":
		return "REM"
	}
	return indicator
}
