package types

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account in the system.
type User struct {
	// ID is the store-assigned identifier of the user. It is the identity
	// carried inside auth tokens.
	ID bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Email is the user's unique email address. Uniqueness is enforced by
	// an index on the users collection.
	Email string `json:"email" bson:"email"`

	// FirstName is the user's given name.
	FirstName string `json:"firstName" bson:"firstName"`

	// LastName is the user's family name.
	LastName string `json:"lastName" bson:"lastName"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"password"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
