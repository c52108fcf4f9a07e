package core

import (
	"context"
	"time"
)

// AuditStatus captures the outcome recorded for an audited operation.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

// AuditEntry describes a single service operation for audit sinks. Entries
// are emitted after the transaction resolves; they are not stored by the core.
type AuditEntry struct {
	Operation  string
	Status     AuditStatus
	Entity     EntityType
	EntityID   string
	Error      string
	Violations []Violation
	Duration   time.Duration
	At         time.Time
}

// AuditRecorder receives audit entries for every service operation.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry)
}

// MetricsRecorder observes operation outcomes and latencies.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a span started by a Tracer.
type TraceSpan interface {
	End(err error)
}
