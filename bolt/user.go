package bolt

import (
	"encoding/json"
	"strings"

	"github.com/boltdb/bolt"

	"github.com/bobinette/deptlib"
)

type UserRepository struct {
	Driver *Driver
}

func (r *UserRepository) Get(id int) (deptlib.User, error) {
	var user deptlib.User
	found, err := r.Driver.get(userBucket, id, &user)
	if err != nil || !found {
		return deptlib.User{}, err
	}
	return user, nil
}

// GetByEmail scans the users, emails are compared case-insensitively.
func (r *UserRepository) GetByEmail(email string) (deptlib.User, error) {
	var user deptlib.User

	err := r.Driver.store.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(userBucket).Cursor()

		for id, data := c.First(); id != nil; id, data = c.Next() {
			var u deptlib.User
			if err := json.Unmarshal(data, &u); err != nil {
				return err
			}

			if strings.EqualFold(u.Email, email) {
				user = u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return deptlib.User{}, err
	}

	return user, nil
}

func (r *UserRepository) List() ([]deptlib.User, error) {
	return list[deptlib.User](r.Driver, userBucket)
}

func (r *UserRepository) Upsert(user *deptlib.User) error {
	return r.Driver.upsert(userBucket, &user.ID, user)
}

func (r *UserRepository) Delete(id int) error {
	return r.Driver.delete(userBucket, id)
}
