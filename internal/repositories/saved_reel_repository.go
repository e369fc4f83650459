package repositories

import (
	"errors"

	"github.com/reelspro/backend/internal/models"
	"gorm.io/gorm"
)

// ErrNotSaved is returned when unsaving a reel that is not in the set.
var ErrNotSaved = errors.New("saved reel not found")

// SavedReelRepository defines the interface for saved-reel set operations
type SavedReelRepository interface {
	SaveReel(savedReel *models.SavedReel) error
	UnsaveReel(userID uint, reelID string) error
	IsReelSaved(userID uint, reelID string) (bool, error)
	GetSavedReelsByUser(userID uint) ([]models.SavedReel, error)
	CountSavedByUser(userID uint) (int64, error)
	GetSavedReelIDs(userID uint, reelIDs []string) (map[string]bool, error)
}

// PostgresSavedReelRepository implements SavedReelRepository
type PostgresSavedReelRepository struct {
	db *gorm.DB
}

// NewPostgresSavedReelRepository creates a new PostgresSavedReelRepository
func NewPostgresSavedReelRepository(db *gorm.DB) *PostgresSavedReelRepository {
	return &PostgresSavedReelRepository{db: db}
}

// SaveReel adds a reel to the user's saved set.
func (r *PostgresSavedReelRepository) SaveReel(savedReel *models.SavedReel) error {
	return r.db.Create(savedReel).Error
}

// UnsaveReel removes a reel from the user's saved set.
func (r *PostgresSavedReelRepository) UnsaveReel(userID uint, reelID string) error {
	res := r.db.Where("user_id = ? AND reel_id = ?", userID, reelID).Delete(&models.SavedReel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotSaved
	}
	return nil
}

// IsReelSaved reports set membership for one user/reel pair.
func (r *PostgresSavedReelRepository) IsReelSaved(userID uint, reelID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SavedReel{}).Where("user_id = ? AND reel_id = ?", userID, reelID).Count(&count).Error
	return count > 0, err
}

// GetSavedReelsByUser lists the user's saved set, newest-saved first.
func (r *PostgresSavedReelRepository) GetSavedReelsByUser(userID uint) ([]models.SavedReel, error) {
	var saved []models.SavedReel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&saved).Error
	return saved, err
}

// CountSavedByUser returns the size of the user's saved set.
func (r *PostgresSavedReelRepository) CountSavedByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SavedReel{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetSavedReelIDs returns which of the given reel IDs the user has saved.
func (r *PostgresSavedReelRepository) GetSavedReelIDs(userID uint, reelIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(reelIDs) == 0 {
		return result, nil
	}
	var saved []models.SavedReel
	err := r.db.Where("user_id = ? AND reel_id IN ?", userID, reelIDs).Find(&saved).Error
	if err != nil {
		return nil, err
	}
	for _, s := range saved {
		result[s.ReelID] = true
	}
	return result, nil
}
