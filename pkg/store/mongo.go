package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// CollectionCharts is the MongoDB collection saved charts live in.
const CollectionCharts = "charts"

// MongoStore stores charts in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

// chartDocument is the BSON form of a Chart. JSON sections are stored as
// text so they round-trip byte for byte.
type chartDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Chart     string    `bson:"chart"`
	Props     string    `bson:"props,omitempty"`
	Data      string    `bson:"data"`
	Theme     string    `bson:"theme,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toDocument(c *Chart) chartDocument {
	return chartDocument{
		ID:        c.ID,
		Name:      c.Name,
		Chart:     c.Chart,
		Props:     string(c.Props),
		Data:      string(c.Data),
		Theme:     string(c.Theme),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d chartDocument) chart() *Chart {
	c := &Chart{
		ID:        d.ID,
		Name:      d.Name,
		Chart:     d.Chart,
		Data:      json.RawMessage(d.Data),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.Props != "" {
		c.Props = json.RawMessage(d.Props)
	}
	if d.Theme != "" {
		c.Theme = json.RawMessage(d.Theme)
	}
	return c
}

// NewMongoStore connects to the MongoDB deployment at uri and uses the
// charts collection of database. The connection is verified with a ping,
// retrying transient failures.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if err := errors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, err
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "configure mongodb client")
	}

	err = cache.ConnectBackoff.Retry(ctx, func() error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "connect to mongodb")
	}

	s := NewMongoStoreFromClient(client, database)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(CollectionCharts),
		now:    time.Now,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		{Keys: bson.D{{Key: "chart", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "create indexes")
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, c *Chart) (*Chart, error) {
	var created time.Time
	if c.ID != "" {
		var prev chartDocument
		err := s.coll.FindOne(ctx, bson.M{"_id": c.ID}).Decode(&prev)
		switch {
		case err == nil:
			created = prev.CreatedAt
		case !stderrors.Is(err, mongo.ErrNoDocuments):
			return nil, unavailable(err, "load chart %s", c.ID)
		}
	}

	// MongoDB stores milliseconds.
	out, err := prepare(c, created, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return nil, err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": out.ID}, toDocument(out), options.Replace().SetUpsert(true))
	if err != nil {
		return nil, unavailable(err, "save chart %s", out.ID)
	}
	return out, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Chart, error) {
	var doc chartDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, unavailable(err, "load chart %s", id)
	}
	return doc.chart(), nil
}

func (s *MongoStore) List(ctx context.Context, opts ListOptions) ([]*Chart, error) {
	filter := bson.M{}
	if opts.Chart != "" {
		filter["chart"] = opts.Chart
	}
	find := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(opts.limit()))

	cur, err := s.coll.Find(ctx, filter, find)
	if err != nil {
		return nil, unavailable(err, "list charts")
	}
	var docs []chartDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable(err, "list charts")
	}

	out := make([]*Chart, len(docs))
	for i, d := range docs {
		out[i] = d.chart()
	}
	return out, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable(err, "delete chart %s", id)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

func unavailable(err error, format string, args ...any) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, format, args...)
	}
	return errors.Wrap(errors.ErrCodeUnavailable, err, format, args...)
}

var _ Store = (*MongoStore)(nil)
