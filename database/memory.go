package database

import (
	"context"
	"productapi/query"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process ProductStore. It understands the subset of
// query operators the list endpoint produces: equality, $gte, inclusion
// projections and sorting on top-level fields.
type MemoryStore struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.M
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[primitive.ObjectID]bson.M{}}
}

func (s *MemoryStore) Find(_ context.Context, q query.Descriptor) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []bson.M{}
	for _, id := range s.order {
		doc := s.docs[id]
		if matches(doc, q.Filter) {
			products = append(products, copyDoc(doc))
		}
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(products, func(i, j int) bool {
			for _, key := range q.Sort {
				c := compareValues(products[i][key.Key], products[j][key.Key])
				if c == 0 {
					continue
				}
				if isDescending(key.Value) {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if len(q.Projection) > 0 {
		for i, doc := range products {
			products[i] = project(doc, q.Projection)
		}
	}
	return products, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id primitive.ObjectID) (bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyDoc(doc), nil
}

func (s *MemoryStore) Insert(_ context.Context, doc bson.M) (primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyDoc(doc)
	id, ok := stored["_id"].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		stored["_id"] = id
	}

	if _, exists := s.docs[id]; !exists {
		s.order = append(s.order, id)
	}
	s.docs[id] = stored
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range copyDoc(fields) {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}

func matches(doc, filter bson.M) bool {
	for key, cond := range filter {
		value, present := doc[key]
		if ops, ok := cond.(bson.M); ok {
			if !matchOperators(value, present, ops) {
				return false
			}
			continue
		}
		if !present || !equalValues(value, cond) {
			return false
		}
	}
	return true
}

func matchOperators(value interface{}, present bool, ops bson.M) bool {
	for op, operand := range ops {
		switch op {
		case "$eq":
			if !present || !equalValues(value, operand) {
				return false
			}
		case "$gte", "$gt", "$lte", "$lt":
			v, ok := toFloat(value)
			o, okOperand := toFloat(operand)
			if !present || !ok || !okOperand {
				return false
			}
			switch {
			case op == "$gte" && !(v >= o),
				op == "$gt" && !(v > o),
				op == "$lte" && !(v <= o),
				op == "$lt" && !(v < o):
				return false
			}
		default:
			return false
		}
	}
	return true
}

func project(doc, projection bson.M) bson.M {
	out := bson.M{}
	if include, ok := projection["_id"]; !ok || isIncluded(include) {
		out["_id"] = doc["_id"]
	}
	for key, include := range projection {
		if key == "_id" || !isIncluded(include) {
			continue
		}
		if value, ok := doc[key]; ok {
			out[key] = value
		}
	}
	return out
}

func isIncluded(v interface{}) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	f, ok := toFloat(v)
	return ok && f != 0
}

func isDescending(v interface{}) bool {
	f, ok := toFloat(v)
	return ok && f < 0
}

func equalValues(a, b interface{}) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders missing values first, then numbers, then strings.
// Values of other types compare equal.
func compareValues(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}

	switch ra {
	case 1:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	case 2:
		sa, sb := a.(string), b.(string)
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
	}
	return 0
}

func typeRank(v interface{}) int {
	if v == nil {
		return 0
	}
	if _, ok := toFloat(v); ok {
		return 1
	}
	if _, ok := v.(string); ok {
		return 2
	}
	return 3
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.M:
		return copyDoc(val)
	case map[string]interface{}:
		return map[string]interface{}(copyDoc(val))
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}
