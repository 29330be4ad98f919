package query

import (
	"math"
	"productapi/apperror"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SortByPrice = "price"

var ErrInvalidMinPrice = apperror.BadRequest("Invalid minPrice")

// Params are the list filters accepted on GET /api/products.
type Params struct {
	Category string `form:"category"`
	MinPrice string `form:"minPrice" binding:"omitempty,numeric"`
	Sort     string `form:"sort"`
	Fields   string `form:"fields"`
}

// Descriptor is a storage query. Projection and Sort are nil when the request
// does not restrict fields or order.
type Descriptor struct {
	Filter     bson.M
	Projection bson.M
	Sort       bson.D
}

func Translate(p Params) (Descriptor, error) {
	d := Descriptor{Filter: bson.M{}}

	if p.Category != "" {
		d.Filter["category"] = p.Category
	}

	if p.MinPrice != "" {
		minPrice, err := strconv.ParseFloat(p.MinPrice, 64)
		if err != nil || math.IsNaN(minPrice) || math.IsInf(minPrice, 0) {
			return Descriptor{}, ErrInvalidMinPrice
		}
		d.Filter["price"] = bson.M{"$gte": minPrice}
	}

	if p.Fields != "" {
		for _, field := range strings.Split(p.Fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			if d.Projection == nil {
				d.Projection = bson.M{}
			}
			d.Projection[field] = 1
		}
	}

	if p.Sort == SortByPrice {
		d.Sort = bson.D{{Key: "price", Value: 1}}
	}

	return d, nil
}

func (d Descriptor) FindOptions() *options.FindOptions {
	opts := options.Find()
	if d.Projection != nil {
		opts.SetProjection(d.Projection)
	}
	if d.Sort != nil {
		opts.SetSort(d.Sort)
	}
	return opts
}
