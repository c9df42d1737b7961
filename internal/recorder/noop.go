package recorder

import (
	"HealthPulse/internal/model"
	"HealthPulse/internal/orchestrate"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *orchestrate.Snapshot) error  { return nil }
func (n *NoopRecorder) RecordAlert(_ string, _ *model.Alert) error { return nil }
func (n *NoopRecorder) Close() error                               { return nil }
