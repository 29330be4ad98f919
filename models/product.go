package models

import (
	"math"
	"productapi/apperror"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	FieldID       = "_id"
	FieldTitle    = "title"
	FieldPrice    = "price"
	FieldCategory = "category"
)

var (
	ErrTitleAndPriceRequired = apperror.BadRequest("Title and price are required")
	ErrNoFieldsToUpdate      = apperror.BadRequest("No fields to update")
)

// Product is a schema-less product document as submitted by clients. Only
// title, price and category carry meaning; anything else is stored as given.
type Product map[string]interface{}

// NewProduct builds the document inserted on create. Only title, price and
// category are kept.
func NewProduct(body Product) (bson.M, error) {
	if err := body.requireTitleAndPrice(); err != nil {
		return nil, err
	}

	doc := bson.M{
		FieldTitle: body[FieldTitle],
		FieldPrice: body[FieldPrice],
	}
	if category, ok := body[FieldCategory]; ok {
		doc[FieldCategory] = category
	}
	return doc, nil
}

// ReplacementFields returns the fields written by a full update.
func ReplacementFields(body Product) (bson.M, error) {
	if err := body.requireTitleAndPrice(); err != nil {
		return nil, err
	}
	return body.updateFields(), nil
}

// PatchFields returns the fields merged by a partial update.
func PatchFields(body Product) (bson.M, error) {
	fields := body.updateFields()
	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	return fields, nil
}

func (p Product) requireTitleAndPrice() error {
	if !Truthy(p[FieldTitle]) || !Truthy(p[FieldPrice]) {
		return ErrTitleAndPriceRequired
	}
	return nil
}

// _id is immutable in the collection.
func (p Product) updateFields() bson.M {
	fields := bson.M{}
	for k, v := range p {
		if k == FieldID {
			continue
		}
		fields[k] = v
	}
	return fields
}

// Truthy reports whether a decoded JSON value counts as set: null, false, 0,
// NaN and the empty string do not.
func Truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0 && !math.IsNaN(val)
	case float32:
		return val != 0 && !math.IsNaN(float64(val))
	case int:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	default:
		return true
	}
}
