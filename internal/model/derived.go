package model

// Band is a three-level threshold classification for a physiological
// quantity. Values match the colors the client renders.
type Band string

const (
	BandGreen  Band = "green"  // favorable
	BandOrange Band = "orange" // neutral
	BandRed    Band = "red"    // caution
	BandNone   Band = ""       // not classifiable (missing input)
)

// SleepAssessment holds the threshold classifications for a canonical
// sleep day.
type SleepAssessment struct {
	DeepSleep     Band
	RemSleep      Band
	Efficiency    Band
	HRV           Band
	RestingHR     Band
	Latency       Band
	BreathingRate Band
}

// ActivityAssessment holds the threshold classifications for a day's
// activity record.
type ActivityAssessment struct {
	Steps            Band
	Sedentary        Band
	InactivityAlerts Band
	AverageMET       Band
}

// TrainingEstimates holds the zone-weighted estimates for one session or
// one day's sessions.
type TrainingEstimates struct {
	TRIMP        float64    // native cardio load when supplied, else fallback
	TRIMPNative  bool       // true when TRIMP came from the wearable
	FatGrams     int        // estimated fat oxidation
	AvgHRZone    int        // 1-5, 0 when unattributable
	ZonePercents [5]float64 // share of tracked time per zone, 0-100
}

// SleepDebt is the client-side replica of the sleep-debt estimate.
type SleepDebt struct {
	DebtMinutes     *int   // positive = owed sleep, negative = surplus
	BaselineMinutes int    // personal sleep need
	Recent14dAvgMin *int
	Trend           string // "improving" | "stable" | "worsening" | "unknown"
	BalanceScore    *int   // 0-100
	DataQuality     string // "good" | "moderate" | "limited" | "insufficient"
}

// DeltaRecord is a day-over-day comparison for one tracked indicator.
// Direction is normalized so "up" always means physiologically better,
// even for indicators where the favorable change is a numeric decrease.
type DeltaRecord struct {
	Indicator string
	Today     float64
	Yesterday float64
	Change    float64 // signed arithmetic difference, today - yesterday
	Direction string  // "up" | "down"
}

// Alert levels, highest severity first.
const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
)

// Alert is the single highest-priority condition surfaced for a day.
// Absence of an alert is a valid terminal state, not an error.
type Alert struct {
	Level   string
	Code    string // stable identifier, e.g. "temp_deviation"
	Message string
	Value   float64
}
