package models

import "time"

// SavedReel is one membership row of a user's saved-reel set. The unique
// index makes the set semantics hold at the store, so a racing double-save
// cannot produce duplicate rows.
type SavedReel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_reel_save"`
	ReelID    string    `json:"reel_id" gorm:"index;uniqueIndex:idx_user_reel_save"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}

// SaveReelRequest defines the request body for the save toggle
type SaveReelRequest struct {
	ReelID string `json:"reelId" validate:"required"`
}
