package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSearchFilter_EmptyMatchesEverything(t *testing.T) {
	assert.Equal(t, bson.M{}, SearchFilter{}.Query())
}

func TestSearchFilter_NameIsCaseInsensitiveSubstring(t *testing.T) {
	query := SearchFilter{Name: "lamp"}.Query()
	assert.Equal(t, bson.M{
		"name": bson.M{"$regex": "lamp", "$options": "i"},
	}, query)
}

func TestSearchFilter_BlankNameIgnored(t *testing.T) {
	assert.Equal(t, bson.M{}, SearchFilter{Name: "   "}.Query())
}

func TestSearchFilter_AgeYearsIsUpperBound(t *testing.T) {
	five := 5
	query := SearchFilter{MaxAgeYears: &five}.Query()
	assert.Equal(t, bson.M{
		"age_years": bson.M{"$lte": 5},
	}, query)
}

func TestSearchFilter_Conjunction(t *testing.T) {
	three := 3
	query := SearchFilter{
		Name:        "chair",
		Category:    "Furniture",
		Condition:   "Like New",
		MaxAgeYears: &three,
	}.Query()

	assert.Equal(t, bson.M{
		"name":      bson.M{"$regex": "chair", "$options": "i"},
		"category":  "Furniture",
		"condition": "Like New",
		"age_years": bson.M{"$lte": 3},
	}, query)
}
