package models

import "time"

// Notification is an in-app message created as a side effect of adoption
// state transitions. Recipients own it for read/delete purposes.
type Notification struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Subject string `gorm:"size:128;not null" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`
	Seen    bool   `gorm:"not null;default:false" json:"seen"`

	CreatedAt time.Time `json:"createdAt"`

	Recipients []NotificationRecipient `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// NotificationRecipient links a notification to one of its recipient users.
type NotificationRecipient struct {
	NotificationID uint `gorm:"primaryKey;autoIncrement:false" json:"notificationId"`
	UserID         uint `gorm:"primaryKey;autoIncrement:false;index" json:"userId"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
