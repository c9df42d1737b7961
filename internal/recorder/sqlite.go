package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"HealthPulse/internal/model"
	"HealthPulse/internal/orchestrate"
)

// SQLiteRecorder persists load-cycle history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external tooling can read while the agent writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS load_cycles (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			date             TEXT,
			generation       INTEGER,
			tier             INTEGER,
			sleep_score      INTEGER,
			sleep_source_day TEXT,
			readiness_score  INTEGER,
			activity_score   INTEGER,
			deep_sleep_min   INTEGER,
			rem_sleep_min    INTEGER,
			avg_hrv          REAL,
			resting_hr       INTEGER,
			steps            INTEGER,
			trimp            REAL,
			sleep_debt_min   INTEGER,
			alert_level      TEXT,
			alert_code       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON load_cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			date      TEXT,
			level     TEXT,
			code      TEXT,
			message   TEXT,
			value     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alert_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCycle inserts one row summarizing a completed load cycle.
func (r *SQLiteRecorder) RecordCycle(snap *orchestrate.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sleepScore, readinessScore, activityScore, deepMin, remMin, restingHR, steps, debtMin any
	var avgHRV, trimp any
	var sleepSourceDay, alertLevel, alertCode any

	if snap.Sleep != nil {
		sleepSourceDay = snap.Sleep.SourceDay
		if snap.Sleep.SummaryScore != nil {
			sleepScore = *snap.Sleep.SummaryScore
		}
		if snap.Sleep.Main != nil {
			deepMin = snap.Sleep.Main.DeepSleepDuration / 60
			remMin = snap.Sleep.Main.RemSleepDuration / 60
			if snap.Sleep.Main.AverageHRV != nil {
				avgHRV = *snap.Sleep.Main.AverageHRV
			}
			if snap.Sleep.Main.LowestHeartRate != nil {
				restingHR = *snap.Sleep.Main.LowestHeartRate
			}
		}
	}
	if snap.Readiness != nil && snap.Readiness.Score != nil {
		readinessScore = *snap.Readiness.Score
	}
	if snap.Activity != nil {
		if snap.Activity.Score != nil {
			activityScore = *snap.Activity.Score
		}
		if snap.Activity.Steps != nil {
			steps = *snap.Activity.Steps
		}
	}
	if snap.TrainingToday != nil {
		trimp = snap.TrainingToday.TRIMP
	}
	if snap.SleepDebt != nil && snap.SleepDebt.DebtMinutes != nil {
		debtMin = *snap.SleepDebt.DebtMinutes
	}
	if snap.Alert != nil {
		alertLevel = snap.Alert.Level
		alertCode = snap.Alert.Code
	}

	_, err := r.db.Exec(`INSERT INTO load_cycles
		(timestamp, date, generation, tier,
		 sleep_score, sleep_source_day, readiness_score, activity_score,
		 deep_sleep_min, rem_sleep_min, avg_hrv, resting_hr, steps,
		 trimp, sleep_debt_min, alert_level, alert_code)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Date, snap.Generation, snap.Tier,
		sleepScore, sleepSourceDay, readinessScore, activityScore,
		deepMin, remMin, avgHRV, restingHR, steps,
		trimp, debtMin, alertLevel, alertCode,
	)
	return err
}

// RecordAlert inserts one alert event row.
func (r *SQLiteRecorder) RecordAlert(date string, alert *model.Alert) error {
	if alert == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_events
		(timestamp, date, level, code, message, value)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), date, alert.Level, alert.Code, alert.Message, alert.Value,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
