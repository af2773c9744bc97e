package worker

import (
	"context"
	"encoding/json"
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/model"
	"schoolcash/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// StartAuditPool launches numWorkers goroutines draining the audit-event
// queue into the audit_events table. Each goroutine blocks on BRPOP — zero
// CPU when idle.
func StartAuditPool(ctx context.Context, rdb *redis.Client, repo repository.AuditRepository, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runAuditWorker(ctx, rdb, repo, i)
	}
	log.Info().Msgf("audit worker pool started with %d workers", numWorkers)
}

func runAuditWorker(ctx context.Context, rdb *redis.Client, repo repository.AuditRepository, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("audit worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, audit.Queue).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			persistAuditEvent(ctx, repo, result[1])
		}
	}
}

func persistAuditEvent(ctx context.Context, repo repository.AuditRepository, raw string) {
	var evt audit.Event
	if err := json.Unmarshal([]byte(raw), &evt); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal audit event")
		return
	}

	record := &model.AuditEvent{
		Path:      evt.Path,
		Operation: evt.Operation,
		Detail:    evt.Detail,
	}
	if len(evt.RequestPayload) > 0 {
		record.RequestPayload = datatypes.JSON(evt.RequestPayload)
	}

	if err := repo.Create(ctx, record); err != nil {
		// Dropped on the floor deliberately: audit persistence must not loop
		// back into the reporter.
		log.Error().Err(err).Str("path", evt.Path).Msg("failed to persist audit event")
	}
}
