package store

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// SearchFilter holds the optional gift search parameters. Zero-valued
// fields impose no constraint.
type SearchFilter struct {
	// Name matches as a case-insensitive substring, anywhere in the field.
	Name string
	// Category matches exactly.
	Category string
	// Condition matches exactly.
	Condition string
	// MaxAgeYears selects gifts with age_years <= the given value. It is a
	// range ceiling, not an exact match.
	MaxAgeYears *int
}

// Query composes the filter into a store query document. All present
// filters are ANDed; an empty filter set matches everything.
func (f SearchFilter) Query() bson.M {
	query := bson.M{}
	if strings.TrimSpace(f.Name) != "" {
		query["name"] = bson.M{"$regex": f.Name, "$options": "i"}
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Condition != "" {
		query["condition"] = f.Condition
	}
	if f.MaxAgeYears != nil {
		query["age_years"] = bson.M{"$lte": *f.MaxAgeYears}
	}
	return query
}
