package types

import "go.mongodb.org/mongo-driver/v2/bson"

// Gift represents a listed second-hand item in the catalog.
//
// Gifts are addressed externally by the business key GiftID, never by the
// store-assigned InternalID. The two are distinct on purpose: InternalID is
// opaque storage detail, GiftID is the identifier clients create links with.
type Gift struct {
	// InternalID is the store-assigned document identifier. Clients never
	// look gifts up by it.
	InternalID bson.ObjectID `json:"internal_id,omitempty" bson:"_id,omitempty"`

	// GiftID is the application-level identifier used for all external
	// lookups, updates, and deletes. Assigned on creation when the caller
	// does not supply one. No uniqueness is enforced.
	GiftID string `json:"id" bson:"id"`

	// Name is the display name of the gift. Required.
	Name string `json:"name" bson:"name"`

	// Category is the catalog category (e.g. "Appliances"). Required.
	Category string `json:"category" bson:"category"`

	// Condition describes the physical state (e.g. "New", "Like New").
	// Required.
	Condition string `json:"condition" bson:"condition"`

	// PostedBy identifies who listed the gift.
	PostedBy string `json:"posted_by,omitempty" bson:"posted_by,omitempty"`

	// ZipCode is the pickup location's postal code.
	ZipCode string `json:"zipcode,omitempty" bson:"zipcode,omitempty"`

	// DateAdded is the unix timestamp at which the gift was listed.
	DateAdded int64 `json:"date_added,omitempty" bson:"date_added,omitempty"`

	// AgeDays is the age of the item in days.
	AgeDays int `json:"age_days,omitempty" bson:"age_days,omitempty"`

	// AgeYears is the age of the item in years. Search treats a supplied
	// age_years parameter as an upper bound over this field.
	AgeYears float64 `json:"age_years,omitempty" bson:"age_years,omitempty"`

	// Description is the free-form listing text.
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	// Image is the object-store key of the gift's image, when one has been
	// uploaded.
	Image string `json:"image,omitempty" bson:"image,omitempty"`

	// Comments are reader comments attached to the listing.
	Comments []GiftComment `json:"comments,omitempty" bson:"comments,omitempty"`
}

// GiftComment is a single comment left on a gift listing.
type GiftComment struct {
	// AuthorName is the display name of the commenter.
	AuthorName string `json:"author_name" bson:"author_name"`

	// Comment is the comment text.
	Comment string `json:"comment" bson:"comment"`
}
