package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/hospital-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the hospital database.
const (
	UsersCollection               = "users"
	NoticesCollection             = "notices"
	AppointmentRequestsCollection = "appointmentrequests"
	RoomsCollection               = "rooms"
	LeavesCollection              = "leaves"
)

// MongoUsers is the Users collection backed by MongoDB.
type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(db *mongo.Database) *MongoUsers {
	return &MongoUsers{coll: db.Collection(UsersCollection)}
}

// EnsureIndexes creates the unique email index login relies on.
func (m *MongoUsers) EnsureIndexes(ctx context.Context) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.FieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (m *MongoUsers) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := m.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (m *MongoUsers) FindOne(ctx context.Context, match Match) (*models.User, error) {
	var u models.User
	err := m.coll.FindOne(ctx, filterOf(match)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (m *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.FindOne(ctx, Match{models.FieldID: id})
}

func (m *MongoUsers) Find(ctx context.Context, match Match, fields ...string) ([]models.User, error) {
	opts := options.Find()
	if len(fields) > 0 {
		projection := bson.M{}
		for _, f := range fields {
			projection[f] = 1
		}
		opts.SetProjection(projection)
	}
	cursor, err := m.coll.Find(ctx, filterOf(match), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Push appends item unless an entry with the same key is already present.
// The key check is part of the update filter so it holds under concurrency.
func (m *MongoUsers) Push(ctx context.Context, id primitive.ObjectID, field string, key models.NaturalKey, item interface{}) error {
	filter := bson.M{
		models.FieldID: id,
		field:          bson.M{"$not": bson.M{"$elemMatch": keyDoc(key)}},
	}
	res, err := m.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{field: item}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return m.missing(ctx, id, ErrDuplicateEntry)
	}
	return nil
}

func (m *MongoUsers) Pull(ctx context.Context, id primitive.ObjectID, field string, key models.NaturalKey) error {
	filter := bson.M{
		models.FieldID: id,
		field:          bson.M{"$elemMatch": keyDoc(key)},
	}
	res, err := m.coll.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{field: keyDoc(key)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return m.missing(ctx, id, ErrNoEntry)
	}
	return nil
}

func (m *MongoUsers) Set(ctx context.Context, id primitive.ObjectID, fields Match) error {
	res, err := m.coll.UpdateOne(ctx, bson.M{models.FieldID: id}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (m *MongoUsers) SetWhere(ctx context.Context, match Match, fields Match) (int64, error) {
	res, err := m.coll.UpdateMany(ctx, filterOf(match), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// missing tells a filtered update that matched nothing apart: either the
// document is gone or the sub-record condition failed.
func (m *MongoUsers) missing(ctx context.Context, id primitive.ObjectID, otherwise error) error {
	n, err := m.coll.CountDocuments(ctx, bson.M{models.FieldID: id})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoDocument
	}
	return otherwise
}

func filterOf(match Match) bson.M {
	if match == nil {
		return bson.M{}
	}
	return bson.M(match)
}

func keyDoc(key models.NaturalKey) bson.M {
	doc := bson.M{}
	for k, v := range key {
		doc[k] = v
	}
	return doc
}

// MongoRecords is the Records implementation over one Mongo collection.
type MongoRecords[T any] struct {
	coll *mongo.Collection
}

func NewMongoRecords[T any](db *mongo.Database, name string) *MongoRecords[T] {
	return &MongoRecords[T]{coll: db.Collection(name)}
}

func (m *MongoRecords[T]) Insert(ctx context.Context, doc *T) error {
	_, err := m.coll.InsertOne(ctx, doc)
	return err
}

func (m *MongoRecords[T]) Find(ctx context.Context, match Match) ([]T, error) {
	cursor, err := m.coll.Find(ctx, filterOf(match))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
