// services/notification_service.go
package services

import (
	"log"

	"gamification-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService is the reward inbox: one row per level-up, achievement,
// challenge payout or title grant. The UI polls counts and marks rows viewed.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify inserts an inbox row. Failures are logged, not propagated — a lost
// notification must never fail the grant that produced it.
func (s *NotificationService) Notify(externalUserID string, kind models.NotificationKind, refID, message string, xp, coins int64) {
	n := models.RewardNotification{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		Kind:           kind,
		RefID:          refID,
		Message:        message,
		XPAwarded:      xp,
		CoinsAwarded:   coins,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		log.Printf("⚠️ Failed to create %s notification for %s: %v", kind, externalUserID, err)
	}
}

// List returns the newest notifications, optionally only unviewed ones.
func (s *NotificationService) List(externalUserID string, limit int, unviewedOnly bool) ([]models.RewardNotification, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	query := s.DB.Where("external_user_id = ?", externalUserID)
	if unviewedOnly {
		query = query.Where("viewed = ?", false)
	}
	var notifications []models.RewardNotification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// Counts returns total and unviewed notification counts for polling badges.
// Each count builds its own statement — chained finishers on a shared query
// accumulate conditions.
func (s *NotificationService) Counts(externalUserID string) (total, unviewed int64, err error) {
	if err = s.DB.Model(&models.RewardNotification{}).
		Where("external_user_id = ?", externalUserID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = s.DB.Model(&models.RewardNotification{}).
		Where("external_user_id = ? AND viewed = ?", externalUserID, false).
		Count(&unviewed).Error; err != nil {
		return 0, 0, err
	}
	return total, unviewed, nil
}

// MarkViewed marks a single notification as viewed (idempotent). Returns false
// when the row does not exist or belongs to another user.
func (s *NotificationService) MarkViewed(externalUserID, notificationID string) (bool, error) {
	result := s.DB.Model(&models.RewardNotification{}).
		Where("id = ? AND external_user_id = ?", notificationID, externalUserID).
		Update("viewed", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAllViewed marks every unviewed notification as viewed in one statement.
func (s *NotificationService) MarkAllViewed(externalUserID string) (int64, error) {
	result := s.DB.Model(&models.RewardNotification{}).
		Where("external_user_id = ? AND viewed = ?", externalUserID, false).
		Update("viewed", true)
	return result.RowsAffected, result.Error
}
