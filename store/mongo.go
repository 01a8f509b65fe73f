package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects, pings and ensures a unique index on "id" for every collection.
func OpenMongo(ctx context.Context, url, database string, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(database)}
	for collection := range collectionModels {
		_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to create id index on %s: %w", collection, err)
		}
	}
	logrus.WithFields(logrus.Fields{"database": database}).Info("✅ MongoDB connected")
	return s, nil
}

func toBSON(filter Filter) bson.M {
	m := bson.M{}
	for _, c := range filter {
		switch c.Op {
		case OpGte:
			m[c.Field] = bson.M{"$gte": c.Value}
		default:
			m[c.Field] = c.Value
		}
	}
	return m
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter Filter, opts FindOptions, out any) error {
	o := options.Find()
	if opts.SortBy != "" {
		dir := 1
		if opts.Desc {
			dir = -1
		}
		o.SetSort(bson.D{{Key: opts.SortBy, Value: dir}})
	}
	if limit := opts.limit(); limit > 0 {
		o.SetLimit(int64(limit))
	}
	cur, err := s.db.Collection(collection).Find(ctx, toBSON(filter), o)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}

func (s *MongoStore) FindOne(ctx context.Context, collection string, filter Filter, out any) error {
	err := s.db.Collection(collection).FindOne(ctx, toBSON(filter)).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc any) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	return err
}

func (s *MongoStore) UpdateFields(ctx context.Context, collection string, filter Filter, fields map[string]any) (int64, error) {
	res, err := s.db.Collection(collection).UpdateMany(ctx, toBSON(filter), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (s *MongoStore) Delete(ctx context.Context, collection string, filter Filter) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, toBSON(filter))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, toBSON(filter))
}

func (s *MongoStore) Distinct(ctx context.Context, collection, field string) ([]string, error) {
	raw, err := s.db.Collection(collection).Distinct(ctx, field, bson.D{})
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if str, ok := v.(string); ok {
			values = append(values, str)
		}
	}
	return values, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
