package inmem

import (
	"strings"

	"github.com/bobinette/deptlib"
)

type WorkRepository struct {
	table *table[deptlib.Work]
}

func NewWorkRepository() *WorkRepository {
	return &WorkRepository{table: newTable[deptlib.Work]()}
}

func (r *WorkRepository) Get(id int) (deptlib.Work, error) {
	work, _ := r.table.get(id)
	return work, nil
}

func (r *WorkRepository) List() ([]deptlib.Work, error) { return r.table.list(), nil }

func (r *WorkRepository) Upsert(work *deptlib.Work) error {
	r.table.upsert(&work.ID, work)
	return nil
}

func (r *WorkRepository) Delete(id int) error {
	r.table.delete(id)
	return nil
}

type AuthorRepository struct {
	table *table[deptlib.Author]
}

func NewAuthorRepository() *AuthorRepository {
	return &AuthorRepository{table: newTable[deptlib.Author]()}
}

func (r *AuthorRepository) Get(id int) (deptlib.Author, error) {
	author, _ := r.table.get(id)
	return author, nil
}

func (r *AuthorRepository) List() ([]deptlib.Author, error) { return r.table.list(), nil }

func (r *AuthorRepository) Upsert(author *deptlib.Author) error {
	r.table.upsert(&author.ID, author)
	return nil
}

func (r *AuthorRepository) Delete(id int) error {
	r.table.delete(id)
	return nil
}

type CategoryRepository struct {
	table *table[deptlib.Category]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{table: newTable[deptlib.Category]()}
}

func (r *CategoryRepository) Get(id int) (deptlib.Category, error) {
	category, _ := r.table.get(id)
	return category, nil
}

func (r *CategoryRepository) List() ([]deptlib.Category, error) { return r.table.list(), nil }

func (r *CategoryRepository) Upsert(category *deptlib.Category) error {
	r.table.upsert(&category.ID, category)
	return nil
}

func (r *CategoryRepository) Delete(id int) error {
	r.table.delete(id)
	return nil
}

type JournalRepository struct {
	table *table[deptlib.Journal]
}

func NewJournalRepository() *JournalRepository {
	return &JournalRepository{table: newTable[deptlib.Journal]()}
}

func (r *JournalRepository) Get(id int) (deptlib.Journal, error) {
	journal, _ := r.table.get(id)
	return journal, nil
}

func (r *JournalRepository) List() ([]deptlib.Journal, error) { return r.table.list(), nil }

func (r *JournalRepository) Upsert(journal *deptlib.Journal) error {
	r.table.upsert(&journal.ID, journal)
	return nil
}

func (r *JournalRepository) Delete(id int) error {
	r.table.delete(id)
	return nil
}

type UserRepository struct {
	table *table[deptlib.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{table: newTable[deptlib.User]()}
}

func (r *UserRepository) Get(id int) (deptlib.User, error) {
	user, _ := r.table.get(id)
	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (deptlib.User, error) {
	user, _ := r.table.find(func(u deptlib.User) bool { return strings.EqualFold(u.Email, email) })
	return user, nil
}

func (r *UserRepository) List() ([]deptlib.User, error) { return r.table.list(), nil }

func (r *UserRepository) Upsert(user *deptlib.User) error {
	r.table.upsert(&user.ID, user)
	return nil
}

func (r *UserRepository) Delete(id int) error {
	r.table.delete(id)
	return nil
}
