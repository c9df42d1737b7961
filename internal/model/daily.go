package model

// OuraSummary mirrors the dashboard endpoint's flattened wearable summary.
type OuraSummary struct {
	SleepScore       *int     `json:"sleep_score"`
	TotalSleepHours  *float64 `json:"total_sleep_hours"`
	DeepSleepMin     *int     `json:"deep_sleep_min"`
	RemSleepMin      *int     `json:"rem_sleep_min"`
	SleepEfficiency  *int     `json:"sleep_efficiency"`
	AverageHRV       *int     `json:"average_hrv"`
	ReadinessScore   *int     `json:"readiness_score"`
	RecoveryIndex    *int     `json:"recovery_index"`
	RestingHeartRate *int     `json:"resting_heart_rate"`
	ActivityScore    *int     `json:"activity_score"`
	Steps            *int     `json:"steps"`
	ActiveCalories   *int     `json:"active_calories"`
	StressHighMin    *int     `json:"stress_high_min"`
	RecoveryHighMin  *int     `json:"recovery_high_min"`
}

// DashboardToday is the first-paint payload from /dashboard/today.
type DashboardToday struct {
	Date           string          `json:"date"`
	Training       *TrainingDaily  `json:"training"`
	WeeklyTraining *TrainingWeekly `json:"weekly_training"`
	OuraToday      *OuraSummary    `json:"oura_today"`
	OuraYesterday  *OuraSummary    `json:"oura_yesterday"`
}

// ReadinessDaily is one day's readiness record.
type ReadinessDaily struct {
	Day                  string   `json:"day"`
	Score                *int     `json:"score"`
	TemperatureDeviation *float64 `json:"temperature_deviation"`
	RestingHeartRate     *int     `json:"resting_heart_rate"`
	HRVBalance           *int     `json:"hrv_balance"`
	RecoveryIndex        *int     `json:"recovery_index"`
}

// ActivityDaily is one day's activity record.
type ActivityDaily struct {
	Day              string   `json:"day"`
	Score            *int     `json:"score"`
	Steps            *int     `json:"steps"`
	ActiveCalories   *int     `json:"active_calories"`
	SedentaryMin     *int     `json:"sedentary_min"`
	InactivityAlerts *int     `json:"inactivity_alerts"`
	AverageMET       *float64 `json:"average_met"`
}

// StressDaily is one day's stress record.
type StressDaily struct {
	Day             string `json:"day"`
	StressHighMin   *int   `json:"stress_high_min"`
	RecoveryHighMin *int   `json:"recovery_high_min"`
	DaySummary      string `json:"day_summary"`
}

// Spo2Daily is one day's blood-oxygen record.
type Spo2Daily struct {
	Day            string   `json:"day"`
	AveragePercent *float64 `json:"average_percent"`
}

// HeartRateSample is one fine-grained heart-rate reading.
type HeartRateSample struct {
	Timestamp string `json:"timestamp"`
	BPM       int    `json:"bpm"`
	Source    string `json:"source"`
}

// RecordsEnvelope wraps list endpoints that return {"records": [...]}.
type RecordsEnvelope[T any] struct {
	Records []T `json:"records"`
}
