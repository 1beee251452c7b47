// workers/premium_sync_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"gamification-system/models"
	"gamification-system/services"

	"gorm.io/gorm"
)

// PollPremium mirrors subscription state from the billing service into the
// progress records. Billing owns the truth; this service only reads its change
// feed and reflects is_premium/premium_since locally.
func PollPremium(ctx context.Context, db *gorm.DB, billing *services.BillingClient, ledger *services.LedgerService, pollInterval time.Duration) {
	log.Println("Starting premium polling (billing → user_progresses)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Premium polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			changes, err := billing.GetChangedSubscriptions(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling subscriptions: %v", err)
				continue
			}
			if len(changes) == 0 {
				continue
			}

			log.Printf("📥 Received %d subscription change(s) from billing service.", len(changes))

			var applied, errorCount int
			for _, change := range changes {
				if err := applyPremiumState(db, ledger, change); err != nil {
					errorCount++
					log.Printf("⚠️ Failed to mirror premium state for %s: %v", change.ExternalUserID, err)
				} else {
					applied++
				}
			}

			if errorCount > 0 {
				// Retry the same window next tick so failed rows are re-fetched.
				log.Printf("❌ Mirrored %d/%d subscription change(s); retrying window", applied, len(changes))
				continue
			}

			lastSyncTime = logTime
			log.Printf("✅ Mirrored %d subscription change(s) into user_progresses.", applied)
		}
	}
}

// applyPremiumState updates one progress record, creating the default record
// first for users who subscribed before ever earning XP.
func applyPremiumState(db *gorm.DB, ledger *services.LedgerService, change services.PremiumState) error {
	if _, err := ledger.GetOrCreate(change.ExternalUserID); err != nil {
		return err
	}
	return db.Model(&models.UserProgress{}).
		Where("external_user_id = ?", change.ExternalUserID).
		Updates(map[string]interface{}{
			"is_premium":    change.IsPremium,
			"premium_since": change.PremiumSince,
		}).Error
}
