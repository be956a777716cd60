package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/inmem"
)

func TestCatalog_CRUD(t *testing.T) {
	s := NewCategoryService(inmem.NewCategoryRepository())

	category, err := s.Create(admin, deptlib.Category{Title: "Article"})
	require.NoError(t, err)
	assert.NotEqual(t, 0, category.ID)

	retrieved, err := s.Get(category.ID)
	require.NoError(t, err)
	assert.Equal(t, category, retrieved)

	updated, err := s.Update(admin, category.ID, deptlib.Category{Title: "Journal article"})
	require.NoError(t, err)
	assert.Equal(t, deptlib.Category{ID: category.ID, Title: "Journal article"}, updated)

	all, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []deptlib.Category{updated}, all)

	require.NoError(t, s.Delete(admin, category.ID))
	_, err = s.Get(category.ID)
	errors.AssertCode(t, err, http.StatusNotFound)
}

func TestCatalog_Errors(t *testing.T) {
	s := NewAuthorService(inmem.NewAuthorRepository(), nil)
	existing, err := s.Create(admin, deptlib.Author{Name: "Ada"})
	require.NoError(t, err)

	tts := map[string]struct {
		call func() error
		code int
	}{
		"create requires admin": {
			call: func() error { _, err := s.Create(staff, deptlib.Author{Name: "Grace"}); return err },
			code: http.StatusForbidden,
		},
		"create with id": {
			call: func() error { _, err := s.Create(admin, deptlib.Author{ID: 12, Name: "Grace"}); return err },
			code: http.StatusBadRequest,
		},
		"create invalid": {
			call: func() error { _, err := s.Create(admin, deptlib.Author{}); return err },
			code: http.StatusBadRequest,
		},
		"update requires admin": {
			call: func() error { _, err := s.Update(author(existing.ID), existing.ID, existing); return err },
			code: http.StatusForbidden,
		},
		"update unknown": {
			call: func() error { _, err := s.Update(admin, 100, existing); return err },
			code: http.StatusNotFound,
		},
		"delete requires admin": {
			call: func() error { return s.Delete(staff, existing.ID) },
			code: http.StatusForbidden,
		},
		"delete unknown": {
			call: func() error { return s.Delete(admin, 100) },
			code: http.StatusNotFound,
		},
		"get unknown": {
			call: func() error { _, err := s.Get(100); return err },
			code: http.StatusNotFound,
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			errors.AssertCode(t, tt.call(), tt.code)
		})
	}
}

func TestValidateRecord_ListsFields(t *testing.T) {
	err := validateRecord("work", deptlib.Work{Pages: -1, AuthorIDs: []int{}})
	require.Error(t, err)
	errors.AssertCode(t, err, http.StatusBadRequest)

	for _, field := range []string{"title", "annotation", "pages", "authors", "digitalReference", "category"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.Contains(t, err.Error(), "title is required")
}

func TestWorkService_Index(t *testing.T) {
	authors := inmem.NewAuthorRepository()
	ada := deptlib.Author{Name: "Ada"}
	require.NoError(t, authors.Upsert(&ada))

	index := &fakeIndex{docs: make(map[int][]string)}
	s := NewWorkService(inmem.NewWorkRepository(), authors, index)

	work := deptlib.Work{
		Title:            "On graphs",
		Annotation:       "Graphs",
		Pages:            10,
		AuthorIDs:        []int{ada.ID, 100},
		DigitalReference: "https://doi.org/10.1000/graphs",
		CategoryID:       1,
	}
	created, err := s.Create(admin, work)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada"}, index.docs[created.ID], "unresolvable authors are not indexed")

	res, err := s.Search("graph", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []deptlib.Work{created}, res.Works)

	// An index entry without a stored work is skipped.
	index.docs[42] = nil
	res, err = s.Search("", 0, 0)
	require.NoError(t, err)
	assert.Len(t, res.Works, 1)

	n, err := s.Reindex()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(admin, created.ID))
	_, ok := index.docs[created.ID]
	assert.False(t, ok, "deleted works are removed from the index")
}

func TestAuthorService_ReindexesWorks(t *testing.T) {
	authorRepo := inmem.NewAuthorRepository()
	index := &fakeIndex{docs: make(map[int][]string)}
	works := NewWorkService(inmem.NewWorkRepository(), authorRepo, index)
	s := NewAuthorService(authorRepo, works)

	ada, err := s.Create(admin, deptlib.Author{Name: "Ada"})
	require.NoError(t, err)
	grace, err := s.Create(admin, deptlib.Author{Name: "Grace"})
	require.NoError(t, err)

	newWork := func(title string, authorIDs ...int) deptlib.Work {
		w, err := works.Create(admin, deptlib.Work{
			Title:            title,
			Annotation:       title,
			Pages:            1,
			AuthorIDs:        authorIDs,
			DigitalReference: "https://doi.org/10.1000/" + title,
			CategoryID:       1,
		})
		require.NoError(t, err)
		return w
	}
	joint := newWork("joint", ada.ID, grace.ID)
	solo := newWork("solo", grace.ID)

	_, err = s.Update(admin, ada.ID, deptlib.Author{Name: "Ada Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada Lovelace", "Grace"}, index.docs[joint.ID])
	assert.Equal(t, []string{"Grace"}, index.docs[solo.ID])

	require.NoError(t, s.Delete(admin, grace.ID))
	assert.Equal(t, []string{"Ada Lovelace"}, index.docs[joint.ID], "deleted authors leave the index")
	assert.Empty(t, index.docs[solo.ID])
}

// fakeIndex records the author names of the indexed works and returns every
// indexed id on search, in id order.
type fakeIndex struct {
	docs map[int][]string
}

func (f *fakeIndex) Index(work deptlib.Work, authors []deptlib.Author) error {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.Name
	}
	f.docs[work.ID] = names
	return nil
}

func (f *fakeIndex) Search(search deptlib.WorkSearch) (deptlib.WorkSearchResults, error) {
	ids := make([]int, 0, len(f.docs))
	for id := 1; id <= 100; id++ {
		if _, ok := f.docs[id]; ok {
			ids = append(ids, id)
		}
	}
	return deptlib.WorkSearchResults{
		IDs:        ids,
		Pagination: deptlib.Pagination{Total: uint64(len(ids)), Limit: search.Limit, Offset: search.Offset},
	}, nil
}

func (f *fakeIndex) Delete(id int) error {
	delete(f.docs, id)
	return nil
}
