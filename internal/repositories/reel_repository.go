package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/reelspro/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sentinel errors returned by reel operations so handlers can map them to
// 404 / 400 without string matching.
var (
	ErrReelNotFound  = errors.New("reel not found")
	ErrInvalidReelID = errors.New("invalid reel ID format")
)

// ReelRepository defines the interface for reel data operations.
//
// All engagement writes are atomic field operations against the document
// ($addToSet, $pull, $push, $inc) rather than load-mutate-save, so two
// concurrent toggles from the same user cannot produce a stale overwrite.
type ReelRepository interface {
	CreateReel(ctx context.Context, reel *models.Reel) error
	GetReelByID(ctx context.Context, id string) (*models.Reel, error)
	GetReelsByUserID(ctx context.Context, userID uint) ([]models.Reel, error)
	GetAllReels(ctx context.Context) ([]models.Reel, error)
	AddLike(ctx context.Context, reelID string, userID uint) (bool, error)
	RemoveLike(ctx context.Context, reelID string, userID uint) (bool, error)
	AppendComment(ctx context.Context, reelID string, comment models.Comment) error
	IncrementShares(ctx context.Context, reelID string) (int64, error)
}

// MongoReelRepository implements ReelRepository for MongoDB
type MongoReelRepository struct {
	collection *mongo.Collection
}

// NewMongoReelRepository creates a new MongoReelRepository
func NewMongoReelRepository(db *mongo.Database) *MongoReelRepository {
	return &MongoReelRepository{collection: db.Collection("reels")}
}

// CreateReel inserts a new reel with empty engagement state.
func (r *MongoReelRepository) CreateReel(ctx context.Context, reel *models.Reel) error {
	reel.ID = primitive.NewObjectID()
	if reel.Tags == nil {
		reel.Tags = []string{}
	}
	reel.Likes = []uint{}
	reel.Comments = []models.Comment{}
	reel.Shares = 0
	reel.CreatedAt = time.Now()
	reel.UpdatedAt = reel.CreatedAt
	_, err := r.collection.InsertOne(ctx, reel)
	return err
}

// GetReelByID retrieves a reel by its hex ID.
func (r *MongoReelRepository) GetReelByID(ctx context.Context, id string) (*models.Reel, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidReelID
	}

	var reel models.Reel
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&reel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReelNotFound
		}
		return nil, err
	}
	return &reel, nil
}

// GetReelsByUserID retrieves a user's reels, newest first.
func (r *MongoReelRepository) GetReelsByUserID(ctx context.Context, userID uint) ([]models.Reel, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetAllReels retrieves every reel, newest first.
func (r *MongoReelRepository) GetAllReels(ctx context.Context) ([]models.Reel, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoReelRepository) find(ctx context.Context, filter interface{}) ([]models.Reel, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reels := []models.Reel{}
	if err = cursor.All(ctx, &reels); err != nil {
		return nil, err
	}
	return reels, nil
}

// AddLike adds the user to the reel's liker set. Returns false when the user
// was already in the set (the document was left unchanged).
func (r *MongoReelRepository) AddLike(ctx context.Context, reelID string, userID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(reelID)
	if err != nil {
		return false, ErrInvalidReelID
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$addToSet": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrReelNotFound
	}
	return res.ModifiedCount == 1, nil
}

// RemoveLike removes the user from the reel's liker set. Returns false when
// the user was not in the set.
func (r *MongoReelRepository) RemoveLike(ctx context.Context, reelID string, userID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(reelID)
	if err != nil {
		return false, ErrInvalidReelID
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$pull": bson.M{"likes": userID}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrReelNotFound
	}
	return res.ModifiedCount == 1, nil
}

// AppendComment pushes a comment onto the reel's comment sequence.
func (r *MongoReelRepository) AppendComment(ctx context.Context, reelID string, comment models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(reelID)
	if err != nil {
		return ErrInvalidReelID
	}
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrReelNotFound
	}
	return nil
}

// IncrementShares bumps the share counter and returns the new value.
func (r *MongoReelRepository) IncrementShares(ctx context.Context, reelID string) (int64, error) {
	objID, err := primitive.ObjectIDFromHex(reelID)
	if err != nil {
		return 0, ErrInvalidReelID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var reel models.Reel
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"shares": 1}}, opts).Decode(&reel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, ErrReelNotFound
		}
		return 0, err
	}
	return reel.Shares, nil
}
