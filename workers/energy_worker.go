package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

const maxSocialEnergy = 100

// RegenerateEnergy tops up social energy for every user below the cap,
// clamped at 100. Returns how many rows changed.
func RegenerateEnergy(db *gorm.DB, amount int) (int64, error) {
	result := db.Exec(`
		UPDATE user_stats
		SET social_energy = CASE
			WHEN social_energy + ? > ? THEN ?
			ELSE social_energy + ?
		END
		WHERE social_energy < ?`,
		amount, maxSocialEnergy, maxSocialEnergy, amount, maxSocialEnergy)
	return result.RowsAffected, result.Error
}

// PollEnergy regenerates social energy on a fixed interval until the
// context is cancelled.
func PollEnergy(ctx context.Context, db *gorm.DB, interval time.Duration, amount int) {
	log.Println("Starting social energy regeneration...")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Energy regeneration stopped.")
			return
		case <-ticker.C:
			changed, err := RegenerateEnergy(db, amount)
			if err != nil {
				log.Printf("❌ Energy regen failed: %v", err)
				continue
			}
			if changed > 0 {
				log.Printf("⚡ Regenerated social energy for %d user(s)", changed)
			}
		}
	}
}
