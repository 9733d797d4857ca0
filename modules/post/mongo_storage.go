package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	mongox "github.com/dmitrymomot/authpost/pkg/mongo"
)

// PostsCollection is the collection MongoStorage reads and writes.
const PostsCollection = "posts"

type postDocument struct {
	ID         bson.ObjectID  `bson:"_id,omitempty"`
	Title      string         `bson:"title"`
	Body       string         `bson:"body"`
	AuthoredBy *bson.ObjectID `bson:"authoredBy"`
	CreatedAt  time.Time      `bson:"created"`
}

func toDocument(p *Post) postDocument {
	doc := postDocument{Title: p.Title, Body: p.Body, CreatedAt: p.CreatedAt}
	if id, err := bson.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = id
	}
	if author, err := bson.ObjectIDFromHex(p.AuthoredBy); err == nil {
		doc.AuthoredBy = &author
	}
	return doc
}

func (d postDocument) toPost() Post {
	p := Post{ID: d.ID.Hex(), Title: d.Title, Body: d.Body, CreatedAt: d.CreatedAt}
	if d.AuthoredBy != nil {
		p.AuthoredBy = d.AuthoredBy.Hex()
	}
	return p
}

// MongoStorage implements Storage on a MongoDB collection with a unique
// index on title.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage ensures the title index exists and returns the storage.
func NewMongoStorage(ctx context.Context, db *mongo.Database) (*MongoStorage, error) {
	coll := db.Collection(PostsCollection)
	if err := mongox.EnsureIndexes(ctx, coll, mongox.UniqueIndex("title")); err != nil {
		return nil, err
	}
	return &MongoStorage{coll: coll}, nil
}

func (s *MongoStorage) CreatePost(ctx context.Context, p *Post) error {
	doc := toDocument(p)
	doc.ID = bson.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return storeError("insert post", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (s *MongoStorage) GetPost(ctx context.Context, id string) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc postDocument
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, storeError("find post", err)
	}
	p := doc.toPost()
	return &p, nil
}

func (s *MongoStorage) SavePost(ctx context.Context, p *Post) error {
	doc := toDocument(p)
	if doc.ID.IsZero() {
		return ErrNotFound
	}
	res, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc)
	if err != nil {
		return storeError("replace post", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStorage) DeletePost(ctx context.Context, id string) (*Post, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc postDocument
	if err := s.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, storeError("delete post", err)
	}
	p := doc.toPost()
	return &p, nil
}

func (s *MongoStorage) ListPosts(ctx context.Context) ([]Post, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, storeError("list posts", err)
	}
	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decode posts", err)
	}

	posts := make([]Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toPost())
	}
	return posts, nil
}

func storeError(op string, err error) error {
	switch {
	case mongox.IsNotFound(err):
		return ErrNotFound
	case mongox.IsDuplicateKey(err):
		return ErrDuplicateTitle
	}
	return errors.Join(ErrStoreUnavailable, fmt.Errorf("%s: %w", op, err))
}
