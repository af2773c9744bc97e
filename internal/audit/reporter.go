// Package audit implements the error-reporting collaborator: storage
// failures are converted into structured events, logged, and queued for
// persistence. Reporting is observability only — it never affects the
// control flow of the operation that failed.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Queue is the Redis list the background worker drains.
const Queue = "audit:events"

// Operations reported on failure.
const (
	OpCreate = "create"
	OpGet    = "get"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
)

// Event is the structured failure report.
type Event struct {
	Path           string          `json:"path"`
	Operation      string          `json:"operation"`
	RequestPayload json.RawMessage `json:"request_payload,omitempty"`
	Detail         string          `json:"detail,omitempty"`
	ReportedAt     time.Time       `json:"reported_at"`
}

// Reporter logs failure events and enqueues them onto a Redis list for the
// audit worker. A nil Redis client degrades to log-only reporting.
type Reporter struct {
	rdb *redis.Client
}

func NewReporter(rdb *redis.Client) *Reporter {
	return &Reporter{rdb: rdb}
}

// Report records a storage failure. payload may be nil; when present it is
// serialized into the event so the failed write can be reconstructed.
// Errors while reporting are themselves only logged — the reporter must
// never become a second failure source for the caller.
func (r *Reporter) Report(ctx context.Context, path, operation string, payload interface{}, cause error) {
	evt := Event{
		Path:       path,
		Operation:  operation,
		ReportedAt: time.Now(),
	}
	if cause != nil {
		evt.Detail = cause.Error()
	}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			evt.RequestPayload = data
		}
	}

	log.Error().
		Str("path", evt.Path).
		Str("operation", evt.Operation).
		Str("detail", evt.Detail).
		Msg("storage operation failed")

	if r.rdb == nil {
		return
	}
	encoded, err := json.Marshal(evt)
	if err != nil {
		return
	}
	if err := r.rdb.LPush(ctx, Queue, encoded).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to enqueue audit event")
	}
}
