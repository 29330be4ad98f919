package database

import (
	"context"
	"productapi/query"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore keeps products in a single collection. The client pools its own
// connections and is shared by all requests.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func ConnectMongo(ctx context.Context, uri, dbName, collection string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongo")
	}

	return NewMongoStore(client, client.Database(dbName).Collection(collection)), nil
}

func NewMongoStore(client *mongo.Client, collection *mongo.Collection) *MongoStore {
	return &MongoStore{client: client, collection: collection}
}

func (s *MongoStore) Find(ctx context.Context, q query.Descriptor) ([]bson.M, error) {
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := s.collection.Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, errors.Wrap(err, "finding products")
	}

	products := []bson.M{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "reading products")
	}
	return products, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (bson.M, error) {
	var product bson.M
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "finding product %s", id.Hex())
	}
	return product, nil
}

func (s *MongoStore) Insert(ctx context.Context, doc bson.M) (primitive.ObjectID, error) {
	res, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "inserting product")
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return errors.Wrapf(err, "updating product %s", id.Hex())
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "deleting product %s", id.Hex())
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return errors.Wrap(s.client.Disconnect(ctx), "disconnecting from mongo")
}
