// Package testutil holds the behaviour every repository implementation must
// share. Storage packages run these against their own drivers.
package testutil

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/deptlib"
)

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func requireDistinct(t *testing.T, ids []int) {
	sort.Ints(ids)
	for i := 0; i < len(ids)-1; i++ {
		require.NotEqual(t, ids[i], ids[i+1], "all ids must be different")
	}
}

func TestWorkRepository(t *testing.T, repo deptlib.WorkRepository) {
	works := []*deptlib.Work{
		{
			Title:            "On graphs",
			Annotation:       "A study of graphs",
			Pages:            12,
			AuthorIDs:        []int{1, 2},
			DigitalReference: "https://doi.org/10.1000/graphs",
			City:             "Kyiv",
			CategoryID:       1,
			JournalID:        3,
			PublishDate:      date(2020, time.March, 14),
		},
		{
			Title:            "Undated notes",
			Annotation:       "Notes",
			Pages:            4,
			AuthorIDs:        []int{2},
			DigitalReference: "urn:notes",
			CategoryID:       2,
		},
	}

	ids := make([]int, len(works))
	for i, work := range works {
		require.NoError(t, repo.Upsert(work), "insert %s must not fail", work.Title)
		require.NotEqual(t, 0, work.ID, "id must be set by insert")
		ids[i] = work.ID
	}
	requireDistinct(t, ids)

	for _, work := range works {
		retrieved, err := repo.Get(work.ID)
		require.NoError(t, err)
		assert.Equal(t, *work, retrieved)
	}

	missing, err := repo.Get(ids[len(ids)-1] + 100)
	require.NoError(t, err, "missing work must not be an error")
	assert.Equal(t, deptlib.Work{}, missing)

	works[1].Pages = 6
	works[1].PublishDate = date(2021, time.June, 1)
	require.NoError(t, repo.Upsert(works[1]))
	retrieved, err := repo.Get(works[1].ID)
	require.NoError(t, err)
	assert.Equal(t, *works[1], retrieved, "update must be persisted")

	all, err := repo.List()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, *works[0], all[0])
	assert.Equal(t, *works[1], all[1])

	require.NoError(t, repo.Delete(works[0].ID))
	all, err = repo.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, works[1].ID, all[0].ID)

	// Inserting after an explicit id must not reuse it.
	explicit := deptlib.Work{ID: works[1].ID + 10, Title: "Explicit", AuthorIDs: []int{1}}
	require.NoError(t, repo.Upsert(&explicit))
	next := deptlib.Work{Title: "Next", AuthorIDs: []int{1}}
	require.NoError(t, repo.Upsert(&next))
	assert.NotEqual(t, explicit.ID, next.ID)
}

func TestAuthorRepository(t *testing.T, repo deptlib.AuthorRepository) {
	authors := []*deptlib.Author{
		{Name: "Ada", Position: "Professor", ThesisDefenseDate: date(2018, time.May, 20)},
		{Name: "Grace", Phone: "+380000000"},
	}

	for _, author := range authors {
		require.NoError(t, repo.Upsert(author))
		require.NotEqual(t, 0, author.ID, "id must be set by insert")
	}
	requireDistinct(t, []int{authors[0].ID, authors[1].ID})

	for _, author := range authors {
		retrieved, err := repo.Get(author.ID)
		require.NoError(t, err)
		assert.Equal(t, *author, retrieved)
	}

	authors[1].ThesisDefenseDate = date(2022, time.January, 10)
	require.NoError(t, repo.Upsert(authors[1]))

	all, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []deptlib.Author{*authors[0], *authors[1]}, all)

	require.NoError(t, repo.Delete(authors[0].ID))
	retrieved, err := repo.Get(authors[0].ID)
	require.NoError(t, err)
	assert.Equal(t, deptlib.Author{}, retrieved)
}

func TestCategoryRepository(t *testing.T, repo deptlib.CategoryRepository) {
	categories := []*deptlib.Category{{Title: "Article"}, {Title: "Monograph"}}
	for _, category := range categories {
		require.NoError(t, repo.Upsert(category))
		require.NotEqual(t, 0, category.ID)
	}

	categories[0].Title = "Journal article"
	require.NoError(t, repo.Upsert(categories[0]))

	all, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []deptlib.Category{*categories[0], *categories[1]}, all)

	require.NoError(t, repo.Delete(categories[1].ID))
	all, err = repo.List()
	require.NoError(t, err)
	assert.Equal(t, []deptlib.Category{*categories[0]}, all)
}

func TestJournalRepository(t *testing.T, repo deptlib.JournalRepository) {
	journal := deptlib.Journal{Title: "Journal of Graphs", Number: 2, Volume: 14, Pages: 120, Edition: "Spring"}
	require.NoError(t, repo.Upsert(&journal))
	require.NotEqual(t, 0, journal.ID)

	retrieved, err := repo.Get(journal.ID)
	require.NoError(t, err)
	assert.Equal(t, journal, retrieved)

	require.NoError(t, repo.Delete(journal.ID))
	all, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserRepository(t *testing.T, repo deptlib.UserRepository) {
	users := []*deptlib.User{
		{Email: "admin@lib.dept", Name: "Admin", Role: deptlib.RoleAdmin, PasswordHash: "hash"},
		{Email: "ada@lib.dept", Name: "Ada", Role: deptlib.RoleAuthor, AuthorID: 4, ThesisDefenseDate: date(2018, time.May, 20)},
	}
	for _, user := range users {
		require.NoError(t, repo.Upsert(user))
		require.NotEqual(t, 0, user.ID)
	}
	requireDistinct(t, []int{users[0].ID, users[1].ID})

	for _, user := range users {
		retrieved, err := repo.Get(user.ID)
		require.NoError(t, err)
		assert.Equal(t, *user, retrieved, "password hash must be persisted")
	}

	byEmail, err := repo.GetByEmail("ADA@lib.dept")
	require.NoError(t, err)
	assert.Equal(t, *users[1], byEmail, "emails are case insensitive")

	unknown, err := repo.GetByEmail("nobody@lib.dept")
	require.NoError(t, err)
	assert.Equal(t, deptlib.User{}, unknown)

	users[0].Email = "root@lib.dept"
	require.NoError(t, repo.Upsert(users[0]))
	byEmail, err = repo.GetByEmail("root@lib.dept")
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, byEmail.ID)

	require.NoError(t, repo.Delete(users[1].ID))
	all, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []deptlib.User{*users[0]}, all)
}
