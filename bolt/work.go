package bolt

import (
	"github.com/bobinette/deptlib"
)

// WorkRepository is used to store and retrieve works from a bolt database.
type WorkRepository struct {
	Driver *Driver
}

func (r *WorkRepository) Get(id int) (deptlib.Work, error) {
	var work deptlib.Work
	found, err := r.Driver.get(workBucket, id, &work)
	if err != nil || !found {
		return deptlib.Work{}, err
	}
	return work, nil
}

func (r *WorkRepository) List() ([]deptlib.Work, error) {
	return list[deptlib.Work](r.Driver, workBucket)
}

// Upsert inserts or updates a work, depending on work.ID.
func (r *WorkRepository) Upsert(work *deptlib.Work) error {
	return r.Driver.upsert(workBucket, &work.ID, work)
}

func (r *WorkRepository) Delete(id int) error {
	return r.Driver.delete(workBucket, id)
}
