package orchestrate

import (
	"encoding/json"
	"time"

	"HealthPulse/internal/model"
)

// Snapshot is the presentation-ready aggregate state of one load cycle.
// Nil fields mean "source unavailable": the fetch failed or the backend
// had no data, and consumers degrade by omitting the metric. A snapshot
// is replaced wholesale per tier, never mutated by callers.
type Snapshot struct {
	Generation uint64
	Tier       int // highest tier applied so far (1-3)
	Date       string
	LoadedAt   time.Time

	// Tier 1: critical, first paint.
	Dashboard       *model.DashboardToday
	TrainingToday   *model.TrainingDaily
	TrainingHistory []model.TrainingDaily

	// Tier 2: core metric sets.
	SleepGroups []model.DaySleepGroup
	Sleep       *model.CanonicalDay
	Readiness   *model.ReadinessDaily
	Activity    *model.ActivityDaily
	Spo2        *model.Spo2Daily

	// Tier 3: supplementary.
	TrainingWeekly  *model.TrainingWeekly
	Stress          *model.StressDaily
	HeartRateDetail []model.HeartRateSample
	SleepDebt       *model.SleepDebt
	Trends          json.RawMessage

	// Derived, recomputed after every tier application.
	SleepAssessment    model.SleepAssessment
	ActivityAssessment model.ActivityAssessment
	SessionEstimates   []model.TrainingEstimates
	Deltas             []model.DeltaRecord
	Alert              *model.Alert
}
