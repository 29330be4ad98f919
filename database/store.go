package database

import (
	"context"
	"productapi/config"
	"productapi/query"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("product not found")

// ProductStore is the storage used by the product handlers. Implementations
// must be safe for concurrent use. Lookups by id return ErrNotFound when no
// document matches.
type ProductStore interface {
	Find(ctx context.Context, q query.Descriptor) ([]bson.M, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error)
	Insert(ctx context.Context, doc bson.M) (primitive.ObjectID, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Store is a ProductStore that owns a connection.
type Store interface {
	ProductStore
	Close(ctx context.Context) error
}

// Open returns the store selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverMongo:
		store, err := ConnectMongo(ctx, cfg.MongoURI, cfg.DBName, cfg.CollectionName)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
