package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"gitlab.com/f1hub/f1hub-service/internal/config"
	"gitlab.com/f1hub/f1hub-service/pkg/model"
)

// OpenMongo connects to the document database holding the constructors and
// contacts collections and verifies the connection with a ping.
func OpenMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// wrapMongo maps a mongo driver error onto the store error taxonomy.
func wrapMongo(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return ErrTimeout
	default:
		return &UnavailableError{Op: op, Err: err}
	}
}

// parseObjectID converts a path-supplied id into an ObjectID. Ids that do not
// parse cannot refer to any stored document, so they map to ErrNotFound.
func parseObjectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, ErrNotFound
	}
	return oid, nil
}

// ConstructorStore implements the Constructors interface on top of a MongoDB
// collection.
type ConstructorStore struct {
	coll *mongo.Collection
}

// NewConstructorStore wraps the constructors collection of the given database.
func NewConstructorStore(db *mongo.Database) *ConstructorStore {
	return &ConstructorStore{coll: db.Collection("constructors")}
}

// Create inserts a new constructor and returns it with the assigned id.
func (s *ConstructorStore) Create(ctx context.Context, con model.Constructor) (model.Constructor, error) {
	result, err := s.coll.InsertOne(ctx, con)
	if err != nil {
		return model.Constructor{}, wrapMongo("insert constructor", err)
	}
	con.Id = result.InsertedID.(bson.ObjectID)
	return con, nil
}

// GetByID returns the constructor with the given hex id or ErrNotFound.
func (s *ConstructorStore) GetByID(ctx context.Context, id string) (model.Constructor, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Constructor{}, err
	}
	var con model.Constructor
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&con); err != nil {
		return model.Constructor{}, wrapMongo("find constructor", err)
	}
	return con, nil
}

// List returns the constructors matching the filter, ordered by position
// ascending. All filter predicates are combined into a single conjunctive
// query document.
func (s *ConstructorStore) List(ctx context.Context, f ConstructorFilter) ([]model.Constructor, error) {
	filter := bson.M{}
	if f.Team != "" {
		filter["team"] = f.Team
	}
	if f.Season != nil {
		filter["season"] = *f.Season
	}
	points := bson.M{}
	if f.MinPoints != nil {
		points["$gte"] = *f.MinPoints
	}
	if f.MaxPoints != nil {
		points["$lte"] = *f.MaxPoints
	}
	if len(points) > 0 {
		filter["points"] = points
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	if len(f.Fields) > 0 {
		projection := bson.M{}
		for _, field := range f.Fields {
			projection[field] = 1
		}
		opts = opts.SetProjection(projection)
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapMongo("find constructors", err)
	}
	var constructors []model.Constructor
	if err := cursor.All(ctx, &constructors); err != nil {
		return nil, wrapMongo("find constructors", err)
	}
	return constructors, nil
}

// Update merges the named fields into the existing document and returns the
// full constructor after the update. Fields not present are left unchanged.
func (s *ConstructorStore) Update(ctx context.Context, id string, fields map[string]any) (model.Constructor, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Constructor{}, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var con model.Constructor
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&con)
	if err != nil {
		return model.Constructor{}, wrapMongo("update constructor", err)
	}
	return con, nil
}

// Delete removes the constructor with the given hex id or returns ErrNotFound.
func (s *ConstructorStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapMongo("delete constructor", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ContactStore implements the Contacts interface on top of a MongoDB
// collection.
type ContactStore struct {
	coll *mongo.Collection
}

// NewContactStore wraps the contacts collection of the given database.
func NewContactStore(db *mongo.Database) *ContactStore {
	return &ContactStore{coll: db.Collection("contacts")}
}

// Create inserts a new contact message. The submission timestamp is stamped
// here unless the caller supplied one.
func (s *ContactStore) Create(ctx context.Context, m model.Contact) (model.Contact, error) {
	if m.SubmittedAt == nil {
		now := time.Now().UTC().Truncate(time.Millisecond)
		m.SubmittedAt = &now
	}
	result, err := s.coll.InsertOne(ctx, m)
	if err != nil {
		return model.Contact{}, wrapMongo("insert contact", err)
	}
	m.Id = result.InsertedID.(bson.ObjectID)
	return m, nil
}

// GetByID returns the contact message with the given hex id or ErrNotFound.
func (s *ContactStore) GetByID(ctx context.Context, id string) (model.Contact, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return model.Contact{}, err
	}
	var m model.Contact
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		return model.Contact{}, wrapMongo("find contact", err)
	}
	return m, nil
}

// List returns all contact messages in submission order.
func (s *ContactStore) List(ctx context.Context) ([]model.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapMongo("find contacts", err)
	}
	var contacts []model.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, wrapMongo("find contacts", err)
	}
	return contacts, nil
}

// Delete removes the contact message with the given hex id or returns
// ErrNotFound.
func (s *ContactStore) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapMongo("delete contact", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
