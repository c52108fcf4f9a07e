package zaplog

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lodgecore/internal/core"
)

func TestRecordSuccessLogsInfo(t *testing.T) {
	zcore, logs := observer.New(zap.InfoLevel)
	rec := New(zap.New(zcore))

	rec.Record(context.Background(), core.AuditEntry{
		Operation: "add_floor",
		Status:    core.AuditStatusSuccess,
		Entity:    core.EntityFloor,
		EntityID:  "f1",
		Duration:  3 * time.Millisecond,
		At:        time.Now().UTC(),
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zap.InfoLevel || entry.Message != "operation completed" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	fields := entry.ContextMap()
	if fields["operation"] != "add_floor" || fields["entity_id"] != "f1" {
		t.Fatalf("missing fields: %+v", fields)
	}
}

func TestRecordErrorLogsWarn(t *testing.T) {
	zcore, logs := observer.New(zap.InfoLevel)
	rec := New(zap.New(zcore))

	rec.Record(context.Background(), core.AuditEntry{
		Operation: "assign_tenant",
		Status:    core.AuditStatusError,
		Entity:    core.EntityTenant,
		Error:     "room r1 is fully occupied (capacity 2)",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zap.WarnLevel || entry.Message != "operation failed" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.ContextMap()["error"] != "room r1 is fully occupied (capacity 2)" {
		t.Fatalf("error field missing: %+v", entry.ContextMap())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	rec := New(nil)
	rec.Record(context.Background(), core.AuditEntry{Operation: "stats", Status: core.AuditStatusSuccess})
}
