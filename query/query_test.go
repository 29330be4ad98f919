package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected Descriptor
	}{
		{
			name:     "no params",
			params:   Params{},
			expected: Descriptor{Filter: bson.M{}},
		},
		{
			name:     "category only",
			params:   Params{Category: "Electronics"},
			expected: Descriptor{Filter: bson.M{"category": "Electronics"}},
		},
		{
			name:     "min price only",
			params:   Params{MinPrice: "50"},
			expected: Descriptor{Filter: bson.M{"price": bson.M{"$gte": 50.0}}},
		},
		{
			name:   "category and decimal min price",
			params: Params{Category: "Books", MinPrice: "9.99"},
			expected: Descriptor{Filter: bson.M{
				"category": "Books",
				"price":    bson.M{"$gte": 9.99},
			}},
		},
		{
			name:   "fields",
			params: Params{Fields: "title, price,,"},
			expected: Descriptor{
				Filter:     bson.M{},
				Projection: bson.M{"title": 1, "price": 1},
			},
		},
		{
			name:     "only separators in fields",
			params:   Params{Fields: " , "},
			expected: Descriptor{Filter: bson.M{}},
		},
		{
			name:   "sort by price",
			params: Params{Sort: "price"},
			expected: Descriptor{
				Filter: bson.M{},
				Sort:   bson.D{{Key: "price", Value: 1}},
			},
		},
		{
			name:     "other sort keys are ignored",
			params:   Params{Sort: "title"},
			expected: Descriptor{Filter: bson.M{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Translate(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestTranslateRejectsNonNumericMinPrice(t *testing.T) {
	for _, minPrice := range []string{"cheap", "NaN", "Inf", "1,5"} {
		t.Run(minPrice, func(t *testing.T) {
			_, err := Translate(Params{MinPrice: minPrice})
			assert.Equal(t, ErrInvalidMinPrice, err)
		})
	}
}

func TestFindOptions(t *testing.T) {
	opts := Descriptor{Filter: bson.M{}}.FindOptions()
	assert.Nil(t, opts.Projection)
	assert.Nil(t, opts.Sort)

	d := Descriptor{
		Filter:     bson.M{},
		Projection: bson.M{"title": 1},
		Sort:       bson.D{{Key: "price", Value: 1}},
	}
	opts = d.FindOptions()
	assert.Equal(t, bson.M{"title": 1}, opts.Projection)
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, opts.Sort)
}
