package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo backs Database with a MongoDB database.
type Mongo struct {
	db *mongo.Database
}

func ConnectMongo(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &Mongo{db: client.Database(database)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{coll: m.db.Collection(name)}
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	res, err := c.coll.InsertOne(ctx, toBSON(doc))
	if err != nil {
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (c *mongoCollection) Find(ctx context.Context, filter Document, opts FindOptions) ([]Document, error) {
	bsonFilter, ok := toFilter(filter)
	if !ok {
		return nil, nil
	}

	findOpts := options.Find()
	if opts.SortField != "" {
		order := 1
		if opts.Descending {
			order = -1
		}
		findOpts.SetSort(bson.D{{Key: opts.SortField, Value: order}})
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.coll.Find(ctx, bsonFilter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	result := make([]Document, 0, len(raw))
	for _, doc := range raw {
		result = append(result, fromBSON(doc))
	}
	return result, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter Document) (Document, error) {
	bsonFilter, ok := toFilter(filter)
	if !ok {
		return nil, ErrNotFound
	}

	var raw bson.M
	err := c.coll.FindOne(ctx, bsonFilter).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(raw), nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter Document) (bool, error) {
	bsonFilter, ok := toFilter(filter)
	if !ok {
		return false, nil
	}
	res, err := c.coll.DeleteOne(ctx, bsonFilter)
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// toFilter translates a Document filter into bson, turning "_id" values into
// ObjectIDs. A malformed id can never match anything, reported via ok=false.
func toFilter(filter Document) (bson.M, bool) {
	out := bson.M{}
	for key, value := range filter {
		if key == "_id" {
			hex, isString := value.(string)
			if !isString {
				return nil, false
			}
			oid, err := primitive.ObjectIDFromHex(hex)
			if err != nil {
				return nil, false
			}
			out[key] = oid
			continue
		}
		out[key] = value
	}
	return out, true
}

func toBSON(doc Document) bson.M {
	out := bson.M{}
	for key, value := range doc {
		if nested, ok := value.(Document); ok {
			out[key] = toBSON(nested)
			continue
		}
		out[key] = value
	}
	return out
}

func fromBSON(doc bson.M) Document {
	out := make(Document, len(doc))
	for key, value := range doc {
		switch v := value.(type) {
		case primitive.ObjectID:
			out[key] = v.Hex()
		case bson.M:
			out[key] = fromBSON(v)
		default:
			out[key] = value
		}
	}
	return out
}
