package bolt

import (
	"github.com/bobinette/deptlib"
)

type AuthorRepository struct {
	Driver *Driver
}

func (r *AuthorRepository) Get(id int) (deptlib.Author, error) {
	var author deptlib.Author
	found, err := r.Driver.get(authorBucket, id, &author)
	if err != nil || !found {
		return deptlib.Author{}, err
	}
	return author, nil
}

func (r *AuthorRepository) List() ([]deptlib.Author, error) {
	return list[deptlib.Author](r.Driver, authorBucket)
}

func (r *AuthorRepository) Upsert(author *deptlib.Author) error {
	return r.Driver.upsert(authorBucket, &author.ID, author)
}

func (r *AuthorRepository) Delete(id int) error {
	return r.Driver.delete(authorBucket, id)
}

type CategoryRepository struct {
	Driver *Driver
}

func (r *CategoryRepository) Get(id int) (deptlib.Category, error) {
	var category deptlib.Category
	found, err := r.Driver.get(categoryBucket, id, &category)
	if err != nil || !found {
		return deptlib.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) List() ([]deptlib.Category, error) {
	return list[deptlib.Category](r.Driver, categoryBucket)
}

func (r *CategoryRepository) Upsert(category *deptlib.Category) error {
	return r.Driver.upsert(categoryBucket, &category.ID, category)
}

func (r *CategoryRepository) Delete(id int) error {
	return r.Driver.delete(categoryBucket, id)
}

type JournalRepository struct {
	Driver *Driver
}

func (r *JournalRepository) Get(id int) (deptlib.Journal, error) {
	var journal deptlib.Journal
	found, err := r.Driver.get(journalBucket, id, &journal)
	if err != nil || !found {
		return deptlib.Journal{}, err
	}
	return journal, nil
}

func (r *JournalRepository) List() ([]deptlib.Journal, error) {
	return list[deptlib.Journal](r.Driver, journalBucket)
}

func (r *JournalRepository) Upsert(journal *deptlib.Journal) error {
	return r.Driver.upsert(journalBucket, &journal.ID, journal)
}

func (r *JournalRepository) Delete(id int) error {
	return r.Driver.delete(journalBucket, id)
}
