package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bobinette/deptlib"
)

type WorkRepository struct {
	Driver *Driver
}

func (r *WorkRepository) Get(id int) (deptlib.Work, error) {
	var work deptlib.Work
	found, err := r.Driver.get(workCollection, id, &work)
	if err != nil || !found {
		return deptlib.Work{}, err
	}
	return work, nil
}

func (r *WorkRepository) List() ([]deptlib.Work, error) {
	return list[deptlib.Work](r.Driver, workCollection)
}

func (r *WorkRepository) Upsert(work *deptlib.Work) error {
	return r.Driver.upsert(workCollection, &work.ID, work)
}

func (r *WorkRepository) Delete(id int) error {
	return r.Driver.delete(workCollection, id)
}

type AuthorRepository struct {
	Driver *Driver
}

func (r *AuthorRepository) Get(id int) (deptlib.Author, error) {
	var author deptlib.Author
	found, err := r.Driver.get(authorCollection, id, &author)
	if err != nil || !found {
		return deptlib.Author{}, err
	}
	return author, nil
}

func (r *AuthorRepository) List() ([]deptlib.Author, error) {
	return list[deptlib.Author](r.Driver, authorCollection)
}

func (r *AuthorRepository) Upsert(author *deptlib.Author) error {
	return r.Driver.upsert(authorCollection, &author.ID, author)
}

func (r *AuthorRepository) Delete(id int) error {
	return r.Driver.delete(authorCollection, id)
}

type CategoryRepository struct {
	Driver *Driver
}

func (r *CategoryRepository) Get(id int) (deptlib.Category, error) {
	var category deptlib.Category
	found, err := r.Driver.get(categoryCollection, id, &category)
	if err != nil || !found {
		return deptlib.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) List() ([]deptlib.Category, error) {
	return list[deptlib.Category](r.Driver, categoryCollection)
}

func (r *CategoryRepository) Upsert(category *deptlib.Category) error {
	return r.Driver.upsert(categoryCollection, &category.ID, category)
}

func (r *CategoryRepository) Delete(id int) error {
	return r.Driver.delete(categoryCollection, id)
}

type JournalRepository struct {
	Driver *Driver
}

func (r *JournalRepository) Get(id int) (deptlib.Journal, error) {
	var journal deptlib.Journal
	found, err := r.Driver.get(journalCollection, id, &journal)
	if err != nil || !found {
		return deptlib.Journal{}, err
	}
	return journal, nil
}

func (r *JournalRepository) List() ([]deptlib.Journal, error) {
	return list[deptlib.Journal](r.Driver, journalCollection)
}

func (r *JournalRepository) Upsert(journal *deptlib.Journal) error {
	return r.Driver.upsert(journalCollection, &journal.ID, journal)
}

func (r *JournalRepository) Delete(id int) error {
	return r.Driver.delete(journalCollection, id)
}

type UserRepository struct {
	Driver *Driver
}

func (r *UserRepository) Get(id int) (deptlib.User, error) {
	var user deptlib.User
	found, err := r.Driver.get(userCollection, id, &user)
	if err != nil || !found {
		return deptlib.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (deptlib.User, error) {
	filter := bson.M{"email": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(email) + "$",
		Options: "i",
	}}

	var user deptlib.User
	found, err := r.Driver.findOne(userCollection, filter, &user)
	if err != nil || !found {
		return deptlib.User{}, err
	}
	return user, nil
}

func (r *UserRepository) List() ([]deptlib.User, error) {
	return list[deptlib.User](r.Driver, userCollection)
}

func (r *UserRepository) Upsert(user *deptlib.User) error {
	return r.Driver.upsert(userCollection, &user.ID, user)
}

func (r *UserRepository) Delete(id int) error {
	return r.Driver.delete(userCollection, id)
}
