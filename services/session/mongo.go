package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelsupport/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore keeps sessions in a collection so they survive restarts.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection("sessions")}
}

func (m *MongoStore) Create(ctx context.Context, s *models.Session) (string, error) {
	if _, err := m.coll.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", models.NewInvalidInput("session %s already exists", s.ID)
		}
		return "", fmt.Errorf("insert session: %w", err)
	}
	return s.ID, nil
}

func (m *MongoStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	err := m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if s.Rooms == nil {
		s.Rooms = map[string]models.Room{}
	}
	return s.Clone(), nil
}

func (m *MongoStore) Save(ctx context.Context, s *models.Session) error {
	res, err := m.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound(s.ID)
	}
	return nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (m *MongoStore) PurgeIdle(ctx context.Context, before time.Time) (int, error) {
	res, err := m.coll.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("purge idle sessions: %w", err)
	}
	return int(res.DeletedCount), nil
}
