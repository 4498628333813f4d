// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/alessandrolsdev/clutch/models"

	"github.com/go-co-op/gocron/v2"
)

const staleSyncAge = 24 * time.Hour

// StartResyncScheduler refreshes Steam integrations whose last sync is
// older than 24h. Best-effort: a failed account is logged and retried
// on the next pass.
func (s *SteamService) StartResyncScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-staleSyncAge)

			var stale []models.PlatformIntegration
			err := s.DB.Where("provider = ? AND last_synced_at <= ?", "STEAM", cutoff).
				Find(&stale).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, integration := range stale {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				_, err := s.syncAccount(ctx, integration.UserID, integration.ExternalID)
				cancel()
				if err != nil {
					log.Printf("[Scheduler] Failed to re-sync steam account for user %s: %v", integration.UserID, err)
				} else {
					log.Printf("✅ Auto re-synced steam account for user %s", integration.UserID)
				}
			}
		}),
	)
}
