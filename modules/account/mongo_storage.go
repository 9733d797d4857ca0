package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/authpost/pkg/auth"
	mongox "github.com/dmitrymomot/authpost/pkg/mongo"
)

// UsersCollection is the collection MongoStorage reads and writes.
const UsersCollection = "users"

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	Name         string        `bson:"name"`
	Address      string        `bson:"address"`
	ResetToken   string        `bson:"resetToken"`
	CreatedAt    time.Time     `bson:"created"`
}

func toDocument(u *auth.User) (userDocument, error) {
	doc := userDocument{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Address:      u.Address,
		ResetToken:   u.ResetToken,
		CreatedAt:    u.CreatedAt,
	}
	if u.ID != "" {
		id, err := bson.ObjectIDFromHex(u.ID)
		if err != nil {
			return userDocument{}, auth.ErrNotFound
		}
		doc.ID = id
	}
	return doc, nil
}

func (d userDocument) toUser() *auth.User {
	return &auth.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		Address:      d.Address,
		ResetToken:   d.ResetToken,
		CreatedAt:    d.CreatedAt,
	}
}

// MongoStorage implements auth.Storage on a MongoDB collection with a unique
// index on email.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage ensures the email index exists and returns the storage.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	coll := db.Collection(UsersCollection)
	if err := mongox.EnsureIndexes(ctx, coll, mongox.UniqueIndex("email")); err != nil {
		return nil, err
	}
	return &MongoStorage{coll: coll}, nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, u *auth.User) error {
	doc, err := toDocument(u)
	if err != nil {
		return err
	}
	doc.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert user", err)
	}
	u.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrNotFound
	}
	return s.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStorage) GetUserByEmailAndResetToken(ctx context.Context, email, resetToken string) (*auth.User, error) {
	if resetToken == "" {
		return nil, auth.ErrNotFound
	}
	return s.findOne(ctx, bson.D{
		{Key: "email", Value: email},
		{Key: "resetToken", Value: resetToken},
	})
}

func (s *MongoStorage) UpdateProfile(ctx context.Context, id string, in auth.ProfileInput) (*auth.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, auth.ErrNotFound
	}
	filter := bson.D{{Key: "_id", Value: oid}}
	set := profileSet(in)
	if len(set) == 0 {
		return s.findOne(ctx, filter)
	}
	return s.findOneAndSet(ctx, filter, set)
}

func (s *MongoStorage) SetResetToken(ctx context.Context, id, resetToken string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return auth.ErrNotFound
	}
	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "resetToken", Value: resetToken}}}},
	)
	if err != nil {
		return storeError("set reset token", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrNotFound
	}
	return nil
}

// ConsumeResetToken matches on email and reset token in the update filter,
// so only one of several concurrent calls can succeed.
func (s *MongoStorage) ConsumeResetToken(ctx context.Context, email, resetToken, passwordHash string) (*auth.User, error) {
	if resetToken == "" {
		return nil, auth.ErrNotFound
	}
	return s.findOneAndSet(ctx,
		bson.D{
			{Key: "email", Value: email},
			{Key: "resetToken", Value: resetToken},
		},
		bson.D{
			{Key: "password", Value: passwordHash},
			{Key: "resetToken", Value: ""},
		},
	)
}

// profileSet lists the profile fields an update writes. Empty inputs keep
// the stored value.
func profileSet(in auth.ProfileInput) bson.D {
	set := bson.D{}
	if in.Name != "" {
		set = append(set, bson.E{Key: "name", Value: in.Name})
	}
	if in.Address != "" {
		set = append(set, bson.E{Key: "address", Value: in.Address})
	}
	return set
}

func (s *MongoStorage) findOneAndSet(ctx context.Context, filter, set bson.D) (*auth.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err := s.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts).Decode(&doc)
	if err != nil {
		return nil, storeError("update user", err)
	}
	return doc.toUser(), nil
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.D) (*auth.User, error) {
	var doc userDocument
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, storeError("find user", err)
	}
	return doc.toUser(), nil
}

func storeError(op string, err error) error {
	switch {
	case mongox.IsNotFound(err):
		return auth.ErrNotFound
	case mongox.IsDuplicateKey(err):
		return auth.ErrDuplicateEmail
	}
	return errors.Join(auth.ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}
