package store

import (
	"context"
	"errors"

	"github.com/secondchance/apiserver/internal/db"
	"github.com/secondchance/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// GiftRepository handles persistence for gifts. All external addressing
// goes through the business `id` field, never the document `_id`.
type GiftRepository struct {
	gifts *mongo.Collection
}

func NewGiftRepository(database *mongo.Database) *GiftRepository {
	return &GiftRepository{gifts: database.Collection(db.GiftsCollection)}
}

// List returns every gift in stored order, as a one-shot snapshot.
func (r *GiftRepository) List(ctx context.Context) ([]types.Gift, error) {
	cursor, err := r.gifts.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	gifts := make([]types.Gift, 0)
	if err := cursor.All(ctx, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}

func (r *GiftRepository) GetByGiftID(ctx context.Context, giftID string) (types.Gift, error) {
	var gift types.Gift
	if err := r.gifts.FindOne(ctx, bson.M{"id": giftID}).Decode(&gift); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.Gift{}, ErrNotFound
		}
		return types.Gift{}, err
	}
	return gift, nil
}

// Create inserts the gift and returns it with the store-assigned internal
// id. No uniqueness constraint applies; duplicates are permitted.
func (r *GiftRepository) Create(ctx context.Context, gift types.Gift) (types.Gift, error) {
	result, err := r.gifts.InsertOne(ctx, gift)
	if err != nil {
		return types.Gift{}, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		gift.InternalID = oid
	}
	return gift, nil
}

// Update merges the given fields into the existing document with $set
// semantics: fields absent from the map are left untouched.
func (r *GiftRepository) Update(ctx context.Context, giftID string, fields map[string]any) error {
	result, err := r.gifts.UpdateOne(ctx, bson.M{"id": giftID}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GiftRepository) Delete(ctx context.Context, giftID string) error {
	result, err := r.gifts.DeleteOne(ctx, bson.M{"id": giftID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns the gifts matching the composed filter.
func (r *GiftRepository) Search(ctx context.Context, filter SearchFilter) ([]types.Gift, error) {
	cursor, err := r.gifts.Find(ctx, filter.Query())
	if err != nil {
		return nil, err
	}

	gifts := make([]types.Gift, 0)
	if err := cursor.All(ctx, &gifts); err != nil {
		return nil, err
	}
	return gifts, nil
}
