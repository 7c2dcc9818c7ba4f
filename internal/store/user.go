package store

import (
	"context"
	"errors"
	"time"

	"github.com/secondchance/apiserver/internal/db"
	"github.com/secondchance/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{users: database.Collection(db.UsersCollection)}
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return types.User{}, ErrNotFound
	}

	var user types.User
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// GetByEmail matches the email exactly, case-sensitive as stored.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	if err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Create inserts the user record. The unique email index turns a racing
// duplicate insert into ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	user.CreatedAt = time.Now()

	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}
