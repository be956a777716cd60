// Package mongo stores the library collections in a MongoDB database, one
// collection per record type, with integer ids allocated from a counters
// collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	workCollection     = "works"
	authorCollection   = "authors"
	categoryCollection = "categories"
	journalCollection  = "journals"
	userCollection     = "users"
	counterCollection  = "counters"
)

const defaultTimeout = 5 * time.Second

type Driver struct {
	// Timeout bounds every single database call, defaults to 5s.
	Timeout time.Duration

	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the server at uri and pings it.
func (d *Driver) Open(uri, database string) error {
	if d.client != nil {
		return errors.New("store already open")
	}

	ctx, cancel := d.context()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("could not reach %s: %v", database, err)
	}

	d.client = client
	d.db = client.Database(database)
	return nil
}

func (d *Driver) Close() error {
	if d.client == nil {
		return nil
	}

	ctx, cancel := d.context()
	defer cancel()

	err := d.client.Disconnect(ctx)
	d.client = nil
	d.db = nil
	return err
}

// Drop removes the whole database. Used by tests.
func (d *Driver) Drop() error {
	ctx, cancel := d.context()
	defer cancel()

	return d.db.Drop(ctx)
}

func (d *Driver) context() (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

type counter struct {
	Name string `bson:"_id"`
	Seq  int    `bson:"seq"`
}

// nextID increments and returns the counter of collection.
func (d *Driver) nextID(ctx context.Context, collection string) (int, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counter
	err := d.db.Collection(counterCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("error incrementing id: %v", err)
	}
	return c.Seq, nil
}

// bumpID makes sure the counter of collection is at least id.
func (d *Driver) bumpID(ctx context.Context, collection string, id int) error {
	_, err := d.db.Collection(counterCollection).UpdateOne(
		ctx,
		bson.M{"_id": collection},
		bson.M{"$max": bson.M{"seq": id}},
		options.Update().SetUpsert(true),
	)
	return err
}

// findOne decodes the first document matching filter into v. It returns
// false when there is no such document.
func (d *Driver) findOne(collection string, filter interface{}, v interface{}) (bool, error) {
	ctx, cancel := d.context()
	defer cancel()

	err := d.db.Collection(collection).FindOne(ctx, filter).Decode(v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (d *Driver) get(collection string, id int, v interface{}) (bool, error) {
	return d.findOne(collection, bson.M{"_id": id}, v)
}

// upsert replaces the document stored under *id, allocating a new id when
// *id is not set. v must point to the record owning id.
func (d *Driver) upsert(collection string, id *int, v interface{}) error {
	ctx, cancel := d.context()
	defer cancel()

	if *id <= 0 {
		next, err := d.nextID(ctx, collection)
		if err != nil {
			return err
		}
		*id = next
	} else if err := d.bumpID(ctx, collection, *id); err != nil {
		return err
	}

	_, err := d.db.Collection(collection).ReplaceOne(
		ctx,
		bson.M{"_id": *id},
		v,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (d *Driver) delete(collection string, id int) error {
	ctx, cancel := d.context()
	defer cancel()

	_, err := d.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// list returns every document of the collection, in id order.
func list[T any](d *Driver, collection string) ([]T, error) {
	ctx, cancel := d.context()
	defer cancel()

	cursor, err := d.db.Collection(collection).Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
