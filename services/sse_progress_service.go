package services

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gamification-system/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// StreamUserProgressSSE pushes the user's progress record whenever it changes —
// the live-subscription view the dashboard keeps open.
func (s *LedgerService) StreamUserProgressSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	// Use fasthttp stream writer (THIS replaces Flush)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastUpdatedAt time.Time

		// Initialize cursor and send the current snapshot immediately.
		var prog models.UserProgress
		err := s.DB.Where("external_user_id = ?", userID).First(&prog).Error
		if err == nil {
			lastUpdatedAt = prog.UpdatedAt
			payload, _ := json.Marshal(prog)
			fmt.Fprintf(w, "event: progress\ndata: %s\n\n", payload)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("SSE init error for user %s: %v", userID, err)
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				var updated models.UserProgress
				err := s.DB.
					Where("external_user_id = ? AND updated_at > ?", userID, lastUpdatedAt).
					First(&updated).Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}

				lastUpdatedAt = updated.UpdatedAt
				payload, _ := json.Marshal(updated)
				fmt.Fprintf(w, "event: progress\ndata: %s\n\n", payload)

				// This is the REAL "flush"
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
