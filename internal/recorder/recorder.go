package recorder

import (
	"HealthPulse/internal/model"
	"HealthPulse/internal/orchestrate"
)

// Recorder persists load-cycle history for trend inspection.
type Recorder interface {
	RecordCycle(snap *orchestrate.Snapshot) error
	RecordAlert(date string, alert *model.Alert) error
	Close() error
}
