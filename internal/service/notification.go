package service

import (
	"errors"

	"github.com/damirpristav/dogs-app-backend/internal/models"

	"gorm.io/gorm"
)

// NotificationService exposes the recipient-scoped view over in-app
// notifications. Only recipients may read, mark or delete a notification.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// ListForUser returns all notifications addressed to the user, newest last.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.
		Joins("JOIN notification_recipients nr ON nr.notification_id = notifications.id").
		Where("nr.user_id = ?", userID).
		Order("notifications.created_at, notifications.id").
		Find(&notifications).Error
	if err != nil {
		return nil, Internal("Failed to list notifications.", err)
	}
	return notifications, nil
}

// Get returns one notification if the user is among its recipients.
func (s *NotificationService) Get(notificationID, userID uint) (*models.Notification, error) {
	n, err := s.load(notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRecipient(notificationID, userID, "You are not allowed to see this notification!"); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkSeen flips the seen flag, recipient-gated.
func (s *NotificationService) MarkSeen(notificationID, userID uint) (*models.Notification, error) {
	n, err := s.load(notificationID)
	if err != nil {
		return nil, err
	}
	if err := s.requireRecipient(notificationID, userID, "You are not allowed to edit this notification!"); err != nil {
		return nil, err
	}
	if err := s.DB.Model(n).Update("seen", true).Error; err != nil {
		return nil, Internal("Failed to update notification.", err)
	}
	n.Seen = true
	return n, nil
}

// Delete removes one notification, recipient-gated.
func (s *NotificationService) Delete(notificationID, userID uint) error {
	if _, err := s.load(notificationID); err != nil {
		return err
	}
	if err := s.requireRecipient(notificationID, userID, "You are not allowed to delete this notification!"); err != nil {
		return err
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id = ?", notificationID).Delete(&models.NotificationRecipient{}).Error; err != nil {
			return Internal("Failed to delete notification recipients.", err)
		}
		if err := tx.Delete(&models.Notification{}, notificationID).Error; err != nil {
			return Internal("Failed to delete notification.", err)
		}
		return nil
	})
	return err
}

// DeleteAllForUser removes every notification addressed to the user.
// Returns the number of deleted notifications.
func (s *NotificationService) DeleteAllForUser(userID uint) (int, error) {
	var ids []uint
	err := s.DB.Model(&models.NotificationRecipient{}).
		Where("user_id = ?", userID).
		Pluck("notification_id", &ids).Error
	if err != nil {
		return 0, Internal("Failed to list notifications.", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notification_id IN ?", ids).Delete(&models.NotificationRecipient{}).Error; err != nil {
			return Internal("Failed to delete notification recipients.", err)
		}
		if err := tx.Delete(&models.Notification{}, ids).Error; err != nil {
			return Internal("Failed to delete notifications.", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *NotificationService) load(notificationID uint) (*models.Notification, error) {
	var n models.Notification
	err := s.DB.First(&n, notificationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Notification with this id does not exists!")
		}
		return nil, Internal("Failed to load notification.", err)
	}
	return &n, nil
}

func (s *NotificationService) requireRecipient(notificationID, userID uint, msg string) error {
	var count int64
	err := s.DB.Model(&models.NotificationRecipient{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Count(&count).Error
	if err != nil {
		return Internal("Failed to check notification recipients.", err)
	}
	if count == 0 {
		return Forbidden(msg)
	}
	return nil
}
