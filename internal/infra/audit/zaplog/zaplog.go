// Package zaplog emits service audit entries as structured zap logs.
package zaplog

import (
	"context"

	"go.uber.org/zap"

	"lodgecore/internal/core"
)

// Recorder implements the core AuditRecorder interface on a zap logger.
// Successful operations log at info level, failures at warn.
type Recorder struct {
	logger *zap.Logger
}

// New returns a Recorder writing to logger. A nil logger uses zap's no-op.
func New(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger}
}

// NewProduction returns a Recorder over a production JSON logger tagged with
// the service name.
func NewProduction() (*Recorder, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(logger.With(zap.String("service", "lodgecore"))), nil
}

// Record implements core.AuditRecorder.
func (r *Recorder) Record(_ context.Context, entry core.AuditEntry) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", string(entry.Status)),
		zap.Duration("duration", entry.Duration),
		zap.Time("at", entry.At),
	}
	if entry.Entity != "" {
		fields = append(fields, zap.String("entity", string(entry.Entity)))
	}
	if entry.EntityID != "" {
		fields = append(fields, zap.String("entity_id", entry.EntityID))
	}
	if len(entry.Violations) > 0 {
		fields = append(fields, zap.Int("violations", len(entry.Violations)))
	}
	if entry.Status == core.AuditStatusError {
		fields = append(fields, zap.String("error", entry.Error))
		r.logger.Warn("operation failed", fields...)
		return
	}
	r.logger.Info("operation completed", fields...)
}

// Sync flushes buffered log entries.
func (r *Recorder) Sync() error {
	return r.logger.Sync()
}
