package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bjjtracker/internal/apperr"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository is a MongoDB implementation of OwnedRepository. Documents
// use the record's UUID as _id.
type MongoRepository[T any, PT Record[T]] struct {
	coll *mongo.Collection
	name string
}

// NewMongoRepository creates a repository over one collection.
func NewMongoRepository[T any, PT Record[T]](coll *mongo.Collection, name string) *MongoRepository[T, PT] {
	return &MongoRepository[T, PT]{
		coll: coll,
		name: name,
	}
}

// List retrieves the owner's documents matching f.
func (r *MongoRepository[T, PT]) List(ctx context.Context, ownerID string, f Filter) ([]T, error) {
	filter := bson.D{{Key: "user_id", Value: ownerID}}
	for _, c := range f.Where {
		filter = append(filter, bson.E{Key: c.Field, Value: c.Value})
	}
	if !f.Since.IsZero() {
		filter = append(filter, bson.E{Key: "date", Value: bson.M{"$gte": f.Since.UTC()}})
	}

	opts := options.Find()
	if len(f.Sort) > 0 {
		sort := bson.D{}
		for _, s := range f.Sort {
			dir := 1
			if s.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: s.Field, Value: dir})
		}
		opts.SetSort(sort)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage(fmt.Sprintf("failed to list %s records", r.name), err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, apperr.Storage(fmt.Sprintf("failed to decode %s records", r.name), err)
	}
	return records, nil
}

// Get retrieves a single document of the owner by its ID.
func (r *MongoRepository[T, PT]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	rec := new(T)
	err := r.coll.FindOne(ctx, ownedBy(ownerID, id)).Decode(rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.notFound()
		}
		return nil, apperr.Storage(fmt.Sprintf("failed to get %s %s", r.name, id), err)
	}
	return rec, nil
}

// Create inserts rec under ownerID.
func (r *MongoRepository[T, PT]) Create(ctx context.Context, ownerID string, rec *T) error {
	p := PT(rec)
	p.SetUserID(ownerID)
	if p.GetID() == "" {
		p.SetID(uuid.New().String())
	}
	p.Touch(time.Now().UTC())

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return apperr.Storage(fmt.Sprintf("failed to create %s", r.name), err)
	}
	return nil
}

// Update replaces the owner's document with rec.
func (r *MongoRepository[T, PT]) Update(ctx context.Context, ownerID string, rec *T) error {
	p := PT(rec)
	p.SetUserID(ownerID)
	p.Touch(time.Now().UTC())

	res, err := r.coll.ReplaceOne(ctx, ownedBy(ownerID, p.GetID()), rec)
	if err != nil {
		return apperr.Storage(fmt.Sprintf("failed to update %s %s", r.name, p.GetID()), err)
	}
	if res.MatchedCount == 0 {
		return r.notFound()
	}
	return nil
}

// Delete removes a document of the owner by its ID.
func (r *MongoRepository[T, PT]) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.coll.DeleteOne(ctx, ownedBy(ownerID, id))
	if err != nil {
		return apperr.Storage(fmt.Sprintf("failed to delete %s %s", r.name, id), err)
	}
	if res.DeletedCount == 0 {
		return r.notFound()
	}
	return nil
}

func (r *MongoRepository[T, PT]) notFound() error {
	return apperr.NotFound(fmt.Sprintf("%s not found", r.name))
}

func ownedBy(ownerID, id string) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: ownerID}}
}
