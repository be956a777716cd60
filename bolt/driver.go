package bolt

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

var (
	workBucket     = []byte("works")
	authorBucket   = []byte("authors")
	categoryBucket = []byte("categories")
	journalBucket  = []byte("journals")
	userBucket     = []byte("users")
)

type Driver struct {
	store *bolt.DB
}

// Open opens the connection to the bolt database defined by path and makes
// sure every bucket exists.
func (d *Driver) Open(path string) error {
	if d.store != nil {
		return errors.New("store already open")
	}

	store, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}

	err = store.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			workBucket,
			authorBucket,
			categoryBucket,
			journalBucket,
			userBucket,
		}
		for _, bucket := range buckets {
			_, err := tx.CreateBucketIfNotExists(bucket)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		store.Close()
		return err
	}

	d.store = store
	return nil
}

// Close closes the underlying database.
func (d *Driver) Close() error {
	if d.store != nil {
		err := d.store.Close()
		d.store = nil
		return err
	}
	return nil
}

// get unmarshals the record stored under id into v. It returns false when
// there is no such record.
func (d *Driver) get(bucket []byte, id int, v interface{}) (bool, error) {
	found := false
	err := d.store.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get(itob(id))
		if data == nil {
			return nil
		}

		found = true
		return json.Unmarshal(data, v)
	})
	return found, err
}

// upsert stores v under *id, allocating the next id of the bucket when *id
// is not set. v is marshalled after the id is assigned so it must point to
// the record owning id.
func (d *Driver) upsert(bucket []byte, id *int, v interface{}) error {
	return d.store.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)

		if *id <= 0 {
			seq, err := b.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			*id = int(seq)
		} else if uint64(*id) > b.Sequence() {
			if err := b.SetSequence(uint64(*id)); err != nil {
				return err
			}
		}

		data, err := json.Marshal(v)
		if err != nil {
			return err
		}

		return b.Put(itob(*id), data)
	})
}

func (d *Driver) delete(bucket []byte, id int) error {
	return d.store.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete(itob(id))
	})
}

// list returns every record of the bucket, in id order.
func list[T any](d *Driver, bucket []byte) ([]T, error) {
	records := make([]T, 0)

	err := d.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var record T
			if err := json.Unmarshal(data, &record); err != nil {
				return err
			}
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// itob returns an 8-byte big endian representation of v.
func itob(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
