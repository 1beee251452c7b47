// workers/twitch_sync_worker.go
package workers

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"gamification-system/models"
	"gamification-system/services"

	"gorm.io/gorm"
)

const defaultLiveXPPerHour = 60

// TwitchSyncWorker sweeps linked Twitch channels, tracks live state and grants
// XP for time spent streaming. XP always goes through the ledger so the usual
// level recomputation and weekly/monthly counters apply.
type TwitchSyncWorker struct {
	db        *gorm.DB
	twitch    *services.TwitchClient
	ledger    *services.LedgerService
	interval  time.Duration
	xpPerHour int64
}

func NewTwitchSyncWorker(db *gorm.DB, twitch *services.TwitchClient, ledger *services.LedgerService) *TwitchSyncWorker {
	xpPerHour := int64(defaultLiveXPPerHour)
	if v := os.Getenv("TWITCH_LIVE_XP_PER_HOUR"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed >= 0 {
			xpPerHour = parsed
		}
	}
	return &TwitchSyncWorker{
		db:        db,
		twitch:    twitch,
		ledger:    ledger,
		interval:  5 * time.Minute,
		xpPerHour: xpPerHour,
	}
}

func (w *TwitchSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Twitch Sync Worker (helix → twitch_links)…")
	go w.run(ctx)
}

func (w *TwitchSyncWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				log.Printf("❌ Twitch sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Twitch Sync Worker stopped")
			return
		}
	}
}

// sweep checks every linked channel once. Per-channel failures are logged and
// skipped so one expired token does not stall the whole sweep.
func (w *TwitchSyncWorker) sweep(ctx context.Context) error {
	var links []models.TwitchLink
	if err := w.db.Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	now := time.Now()
	var liveCount int
	for i := range links {
		link := &links[i]

		status, err := w.twitch.GetStreamStatus(ctx, link.AccessToken, link.TwitchUserID)
		if err != nil {
			log.Printf("[TWITCH] ⚠️ Status check failed for %s (%s): %v", link.TwitchLogin, link.ExternalUserID, err)
			continue
		}

		if status.IsLive {
			liveCount++
			w.creditLiveTime(link, now)
			if !link.IsLive {
				link.IsLive = true
				link.LiveSince = &status.StartedAt
				log.Printf("[TWITCH] 🔴 %s went live (viewers: %d)", link.TwitchLogin, status.Viewers)
			}
		} else if link.IsLive {
			link.IsLive = false
			link.LiveSince = nil
			log.Printf("[TWITCH] ⚫ %s went offline", link.TwitchLogin)
		}

		link.LastSweepAt = &now
		if err := w.db.Save(link).Error; err != nil {
			log.Printf("[TWITCH] ⚠️ Failed to save link for %s: %v", link.ExternalUserID, err)
		}
	}

	log.Printf("[TWITCH] ✅ Swept %d link(s), %d live", len(links), liveCount)
	return nil
}

// creditLiveTime grants XP for the live window since the previous sweep.
// The first sweep of a stream credits nothing — there is no prior mark yet.
func (w *TwitchSyncWorker) creditLiveTime(link *models.TwitchLink, now time.Time) {
	if !link.IsLive || link.LastSweepAt == nil || w.xpPerHour == 0 {
		return
	}
	elapsed := now.Sub(*link.LastSweepAt)
	if elapsed <= 0 {
		return
	}
	xp := int64(elapsed.Hours() * float64(w.xpPerHour))
	if xp <= 0 {
		return
	}
	if _, err := w.ledger.GrantXP(link.ExternalUserID, xp); err != nil {
		log.Printf("[TWITCH] ⚠️ Failed to grant live XP to %s: %v", link.ExternalUserID, err)
		return
	}
	log.Printf("[TWITCH] ✨ Granted %d live XP to %s (%s)", xp, link.ExternalUserID, link.TwitchLogin)
}
