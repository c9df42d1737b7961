package model

// SleepSegment is one sleep bout (main overnight sleep, nap, or fragment)
// as returned by the /api/v1/oura/sleep/grouped endpoint. Durations are in
// seconds; pointer fields are absent when the wearable did not report them.
type SleepSegment struct {
	Day                  string   `json:"day"`
	SleepType            string   `json:"sleep_type"`
	Score                *int     `json:"score"`
	SleepScoreDelta      *int     `json:"sleep_score_delta"`
	ReadinessScoreDelta  *int     `json:"readiness_score_delta"`
	TotalSleepDuration   int      `json:"total_sleep_duration"`
	DeepSleepDuration    int      `json:"deep_sleep_duration"`
	RemSleepDuration     int      `json:"rem_sleep_duration"`
	LightSleepDuration   int      `json:"light_sleep_duration"`
	AwakeTime            int      `json:"awake_time"`
	TimeInBed            int      `json:"time_in_bed"`
	Efficiency           *int     `json:"efficiency"`
	Latency              *int     `json:"latency"`
	AverageHRV           *float64 `json:"average_hrv"`
	AverageHeartRate     *int     `json:"average_heart_rate"`
	LowestHeartRate      *int     `json:"lowest_heart_rate"`
	AverageBreath        *float64 `json:"average_breath"`
	BedtimeStart         string   `json:"bedtime_start"`
	BedtimeEnd           string   `json:"bedtime_end"`
	TemperatureDeviation *float64 `json:"temperature_deviation"`
}

// SleepTypeLong marks the primary overnight sleep for a day.
const SleepTypeLong = "long_sleep"

// DaySleepGroup is one day's worth of segments from /oura/sleep/grouped.
type DaySleepGroup struct {
	Day                  string         `json:"day"`
	SummaryScore         *int           `json:"summary_score"`
	BaseScore            *int           `json:"base_score"`
	TotalDuration        int            `json:"total_duration"`
	TotalDurationMinutes int            `json:"total_duration_minutes"`
	SegmentsCount        int            `json:"segments_count"`
	Segments             []SleepSegment `json:"segments"`
}

// GroupedSleepResponse is the envelope for /oura/sleep/grouped.
type GroupedSleepResponse struct {
	Records   []DaySleepGroup `json:"records"`
	TotalDays int             `json:"total_days"`
}

// CanonicalDay is the reconciled per-day sleep representation: one designated
// main segment (or none), auxiliary segments, and aggregate totals over the
// valid segments only. Constructed fresh on every fetch cycle, never mutated.
type CanonicalDay struct {
	Day           string         // requested target day
	SourceDay     string         // day the data actually came from (may be earlier)
	Main          *SleepSegment  // nil when no segment qualifies as main
	Auxiliary     []SleepSegment // valid non-main segments
	TotalDuration int            // seconds, summed over valid segments
	SummaryScore  *int           // daily aggregate score
	BaseScore     *int           // main segment's score before nap boosts
	Boost         int            // summaryScore - baseScore, clamped to >= 0
	MultiSegment  bool           // more than one valid segment
	ValidCount    int
}

// StaleData reports whether the canonical day was backfilled from an
// earlier day than the one requested.
func (c *CanonicalDay) StaleData() bool {
	return c.SourceDay != c.Day
}
