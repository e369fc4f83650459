package handlers

import (
	"context"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reelspro/backend/internal/models"
	"github.com/reelspro/backend/internal/repositories"
	"github.com/reelspro/backend/validators"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// --- test harness ---

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

// newJSONContext builds an Echo context for a handler invocation. userID 0
// means unauthenticated.
func newJSONContext(t *testing.T, e *echo.Echo, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// --- in-memory reel repository ---

type memReelRepo struct {
	mu    sync.Mutex
	reels map[string]*models.Reel
}

func newMemReelRepo() *memReelRepo {
	return &memReelRepo{reels: make(map[string]*models.Reel)}
}

// seed inserts a reel with the given owner and creation time, returning its
// hex ID.
func (m *memReelRepo) seed(ownerID uint, createdAt time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel := &models.Reel{
		ID:        primitive.NewObjectID(),
		UserID:    ownerID,
		VideoURL:  "https://cdn.example.com/v.mp4",
		Caption:   "caption",
		Tags:      []string{},
		Likes:     []uint{},
		Comments:  []models.Comment{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	m.reels[reel.ID.Hex()] = reel
	return reel.ID.Hex()
}

func (m *memReelRepo) lookup(id string) (*models.Reel, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, repositories.ErrInvalidReelID
	}
	reel, ok := m.reels[id]
	if !ok {
		return nil, repositories.ErrReelNotFound
	}
	return reel, nil
}

func (m *memReelRepo) CreateReel(_ context.Context, reel *models.Reel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel.ID = primitive.NewObjectID()
	if reel.Tags == nil {
		reel.Tags = []string{}
	}
	reel.Likes = []uint{}
	reel.Comments = []models.Comment{}
	reel.CreatedAt = time.Now()
	reel.UpdatedAt = reel.CreatedAt
	m.reels[reel.ID.Hex()] = reel
	return nil
}

func (m *memReelRepo) GetReelByID(_ context.Context, id string) (*models.Reel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *reel
	return &cp, nil
}

func (m *memReelRepo) GetReelsByUserID(_ context.Context, userID uint) ([]models.Reel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reel
	for _, r := range m.reels {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (m *memReelRepo) GetAllReels(_ context.Context) ([]models.Reel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Reel
	for _, r := range m.reels {
		out = append(out, *r)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(reels []models.Reel) {
	sort.Slice(reels, func(i, j int) bool {
		return reels[i].CreatedAt.After(reels[j].CreatedAt)
	})
}

func (m *memReelRepo) AddLike(_ context.Context, reelID string, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel, err := m.lookup(reelID)
	if err != nil {
		return false, err
	}
	if reel.HasLiked(userID) {
		return false, nil
	}
	reel.Likes = append(reel.Likes, userID)
	return true, nil
}

func (m *memReelRepo) RemoveLike(_ context.Context, reelID string, userID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel, err := m.lookup(reelID)
	if err != nil {
		return false, err
	}
	for i, id := range reel.Likes {
		if id == userID {
			reel.Likes = append(reel.Likes[:i], reel.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memReelRepo) AppendComment(_ context.Context, reelID string, comment models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel, err := m.lookup(reelID)
	if err != nil {
		return err
	}
	reel.Comments = append(reel.Comments, comment)
	return nil
}

func (m *memReelRepo) IncrementShares(_ context.Context, reelID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reel, err := m.lookup(reelID)
	if err != nil {
		return 0, err
	}
	reel.Shares++
	return reel.Shares, nil
}

// --- in-memory user repository ---

type memUserRepo struct {
	mu          sync.Mutex
	seq         uint
	byID        map[uint]*models.User
	getByIDHits int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[uint]*models.User)}
}

func (m *memUserRepo) seed(name, email string) *models.User {
	u := &models.User{Name: name, Email: email}
	if err := m.CreateUser(u); err != nil {
		panic(err)
	}
	return u
}

func (m *memUserRepo) CreateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.Email = repositories.NormalizeEmail(user.Email)
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	user.ID = m.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.byID[user.ID] = user
	return nil
}

func (m *memUserRepo) GetUserByID(id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByIDHits++
	user, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (m *memUserRepo) GetUserByEmail(email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = repositories.NormalizeEmail(email)
	for _, user := range m.byID {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.byID {
		if user.FirebaseUID != "" && user.FirebaseUID == firebaseUID {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) UpdateUser(user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

// --- in-memory saved-reel repository ---

type memSavedReelRepo struct {
	mu    sync.Mutex
	seq   uint
	saved []models.SavedReel
}

func newMemSavedReelRepo() *memSavedReelRepo {
	return &memSavedReelRepo{}
}

func (m *memSavedReelRepo) SaveReel(savedReel *models.SavedReel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.saved {
		if s.UserID == savedReel.UserID && s.ReelID == savedReel.ReelID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	savedReel.ID = m.seq
	savedReel.CreatedAt = time.Now()
	m.saved = append(m.saved, *savedReel)
	return nil
}

func (m *memSavedReelRepo) UnsaveReel(userID uint, reelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.saved {
		if s.UserID == userID && s.ReelID == reelID {
			m.saved = append(m.saved[:i], m.saved[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotSaved
}

func (m *memSavedReelRepo) IsReelSaved(userID uint, reelID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.saved {
		if s.UserID == userID && s.ReelID == reelID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSavedReelRepo) GetSavedReelsByUser(userID uint) ([]models.SavedReel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SavedReel
	for _, s := range m.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	// newest-saved first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memSavedReelRepo) CountSavedByUser(userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, s := range m.saved {
		if s.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memSavedReelRepo) GetSavedReelIDs(userID uint, reelIDs []string) (map[string]bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]bool)
	for _, s := range m.saved {
		if s.UserID != userID {
			continue
		}
		for _, id := range reelIDs {
			if s.ReelID == id {
				result[id] = true
			}
		}
	}
	return result, nil
}

// --- in-memory notification repository ---

type memNotificationRepo struct {
	mu            sync.Mutex
	seq           uint
	notifications []models.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (m *memNotificationRepo) CreateNotification(notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	notification.ID = m.seq
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *memNotificationRepo) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memNotificationRepo) GetUnreadCount(recipientID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, n := range m.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}
