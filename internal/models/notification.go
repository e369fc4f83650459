package models

import "time"

// Notification types
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

// Notification records a like or comment event directed at a reel owner
// (PostgreSQL). One is created only when the actor is not the recipient.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:20;index"` // like, comment
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ReelID      string    `json:"reel_id"` // MongoDB ObjectID as string
	Comment     string    `json:"comment,omitempty"` // only for comment notifications
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
