package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reel is a short video post stored in MongoDB. Engagement state lives inside
// the document: Likes is a set of user IDs (no duplicates, enforced with
// $addToSet at the store) and Comments is append-only in insertion order.
type Reel struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       uint               `json:"user_id" bson:"user_id"`
	VideoURL     string             `json:"videoUrl" bson:"video_url"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
	Caption      string             `json:"caption" bson:"caption"`
	Tags         []string           `json:"tags" bson:"tags"`
	IsPrivate    bool               `json:"isPrivate" bson:"is_private"`
	Likes        []uint             `json:"likes" bson:"likes"`
	Comments     []Comment          `json:"comments" bson:"comments"`
	Shares       int64              `json:"shares" bson:"shares"` // monotonic, informational only
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Comment is a single embedded comment on a reel.
type Comment struct {
	ID        string    `json:"id" bson:"id"` // UUID
	UserID    uint      `json:"user_id" bson:"user_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// HasLiked reports whether the given user is in the liker set.
func (r *Reel) HasLiked(userID uint) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// ReelCompact is the projection embedded in notification responses.
type ReelCompact struct {
	ID           string `json:"id"`
	Caption      string `json:"caption"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ToCompact returns the display projection of the reel.
func (r *Reel) ToCompact() ReelCompact {
	return ReelCompact{ID: r.ID.Hex(), Caption: r.Caption, ThumbnailURL: r.ThumbnailURL}
}

// CreateReelRequest defines the request body for creating a new reel
type CreateReelRequest struct {
	VideoURL     string   `json:"videoUrl" validate:"required,url"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	Caption      string   `json:"caption" validate:"required,min=1,max=500"`
	Tags         []string `json:"tags,omitempty" validate:"omitempty,dive,min=1,max=50"`
	IsPrivate    bool     `json:"isPrivate,omitempty"`
}

// LikeReelRequest defines the request body for the like toggle
type LikeReelRequest struct {
	ReelID string `json:"reelId" validate:"required"`
}

// CommentReelRequest defines the request body for appending a comment
type CommentReelRequest struct {
	ReelID string `json:"reelId" validate:"required"`
	Text   string `json:"text" validate:"required,min=1,max=500"`
}

// ShareReelRequest defines the request body for the share counter
type ShareReelRequest struct {
	ReelID string `json:"reelId" validate:"required"`
}
