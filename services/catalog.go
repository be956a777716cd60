package services

import (
	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
)

type repository[T any] interface {
	Get(int) (T, error)
	List() ([]T, error)
	Upsert(*T) error
	Delete(int) error
}

// catalog implements the admin-guarded CRUD shared by every collection.
type catalog[T any] struct {
	kind       string
	repository repository[T]

	// id returns the address of the id of the record.
	id func(*T) *int

	// onSave and onDelete are called once the store has been updated.
	onSave   func(T) error
	onDelete func(int) error
}

func (c *catalog[T]) List() ([]T, error) {
	return c.repository.List()
}

func (c *catalog[T]) Get(id int) (T, error) {
	record, err := c.repository.Get(id)
	if err != nil {
		var zero T
		return zero, err
	}

	if *c.id(&record) == 0 {
		var zero T
		return zero, errNotFound(c.kind, id)
	}
	return record, nil
}

func (c *catalog[T]) Create(caller deptlib.Identity, record T) (T, error) {
	var zero T
	if err := requireAdmin(caller); err != nil {
		return zero, err
	}

	if *c.id(&record) != 0 {
		return zero, errors.New("id already set", errors.BadRequest())
	}

	return c.save(record)
}

func (c *catalog[T]) Update(caller deptlib.Identity, id int, record T) (T, error) {
	var zero T
	if err := requireAdmin(caller); err != nil {
		return zero, err
	}

	if _, err := c.Get(id); err != nil {
		return zero, err
	}

	*c.id(&record) = id
	return c.save(record)
}

func (c *catalog[T]) Delete(caller deptlib.Identity, id int) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if _, err := c.Get(id); err != nil {
		return err
	}

	if err := c.repository.Delete(id); err != nil {
		return err
	}

	if c.onDelete != nil {
		return c.onDelete(id)
	}
	return nil
}

func (c *catalog[T]) save(record T) (T, error) {
	var zero T
	if err := validateRecord(c.kind, record); err != nil {
		return zero, err
	}

	if err := c.repository.Upsert(&record); err != nil {
		return zero, err
	}

	if c.onSave != nil {
		if err := c.onSave(record); err != nil {
			return zero, err
		}
	}
	return record, nil
}

// AuthorService is the catalog of authors. When works is not nil, the works
// of a saved or deleted author are reindexed so the indexed names follow.
type AuthorService struct {
	*catalog[deptlib.Author]
}

func NewAuthorService(repo deptlib.AuthorRepository, works *WorkService) *AuthorService {
	c := &catalog[deptlib.Author]{
		kind:       "author",
		repository: repo,
		id:         func(a *deptlib.Author) *int { return &a.ID },
	}
	if works != nil {
		c.onSave = func(a deptlib.Author) error { return works.reindexAuthor(a.ID) }
		c.onDelete = works.reindexAuthor
	}
	return &AuthorService{c}
}

type CategoryService struct {
	*catalog[deptlib.Category]
}

func NewCategoryService(repo deptlib.CategoryRepository) *CategoryService {
	return &CategoryService{&catalog[deptlib.Category]{
		kind:       "category",
		repository: repo,
		id:         func(c *deptlib.Category) *int { return &c.ID },
	}}
}

type JournalService struct {
	*catalog[deptlib.Journal]
}

func NewJournalService(repo deptlib.JournalRepository) *JournalService {
	return &JournalService{&catalog[deptlib.Journal]{
		kind:       "journal",
		repository: repo,
		id:         func(j *deptlib.Journal) *int { return &j.ID },
	}}
}
