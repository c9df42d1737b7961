package model

// ExerciseSession is one recorded training session with per-zone dwell
// times. Zone durations are in seconds, zones 1-5 ordered low to high
// intensity. CardioLoad is the wearable's native training-load value;
// when present it takes precedence over the local TRIMP estimate.
type ExerciseSession struct {
	StartTime   string      `json:"start_time"`
	Sport       string      `json:"sport"`
	DurationSec int         `json:"duration_sec"`
	Calories    int         `json:"calories"`
	AvgHR       *int        `json:"avg_hr"`
	MaxHR       *int        `json:"max_hr"`
	CardioLoad  *float64    `json:"cardio_load"`
	ZoneSeconds [5]int      `json:"zone_seconds"`
	ZoneLimits  []ZoneLimit `json:"zone_limits,omitempty"`
}

// ZoneLimit is one heart-rate zone's [Lower, Upper) bracket in bpm.
// Zone 5's upper bound is open-ended and may be zero.
type ZoneLimit struct {
	Lower int `json:"lower"`
	Upper int `json:"upper"`
}

// TrainingDaily is the backend's per-day training summary.
type TrainingDaily struct {
	Date             string            `json:"date"`
	TotalDurationMin int               `json:"total_duration_min"`
	Zone2Min         int               `json:"zone2_min"`
	HiMin            int               `json:"hi_min"`
	TRIMP            float64           `json:"trimp"`
	SessionsCount    int               `json:"sessions_count"`
	TotalCalories    *int              `json:"total_calories"`
	AvgHR            *int              `json:"avg_hr"`
	Flags            map[string]bool   `json:"flags"`
	Sessions         []ExerciseSession `json:"sessions,omitempty"`
}

// TrainingWeekly is the backend's Monday-anchored weekly rollup.
type TrainingWeekly struct {
	WeekStartDate    string  `json:"week_start_date"`
	TotalDurationMin int     `json:"total_duration_min"`
	Zone2Min         int     `json:"zone2_min"`
	HiMin            int     `json:"hi_min"`
	WeeklyTRIMP      float64 `json:"weekly_trimp"`
	TrainingDays     int     `json:"training_days"`
	RestDays         int     `json:"rest_days"`
}

// TrainingHistory is the envelope for /training/history.
type TrainingHistory struct {
	Records []TrainingDaily `json:"records"`
}
