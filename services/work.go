package services

import (
	"github.com/bobinette/deptlib"
)

// WorkService is the catalog of works. Every write is mirrored in the
// search index.
type WorkService struct {
	*catalog[deptlib.Work]

	authors deptlib.AuthorRepository
	index   deptlib.WorkIndex
}

func NewWorkService(repo deptlib.WorkRepository, authors deptlib.AuthorRepository, index deptlib.WorkIndex) *WorkService {
	s := &WorkService{
		authors: authors,
		index:   index,
	}
	s.catalog = &catalog[deptlib.Work]{
		kind:       "work",
		repository: repo,
		id:         func(w *deptlib.Work) *int { return &w.ID },
		onSave:     s.indexWork,
		onDelete:   index.Delete,
	}
	return s
}

func (s *WorkService) indexWork(work deptlib.Work) error {
	authors := make([]deptlib.Author, 0, len(work.AuthorIDs))
	for _, id := range work.AuthorIDs {
		author, err := s.authors.Get(id)
		if err != nil {
			return err
		}
		if author.ID != 0 {
			authors = append(authors, author)
		}
	}

	return s.index.Index(work, authors)
}

type SearchResults struct {
	Works      []deptlib.Work     `json:"works"`
	Pagination deptlib.Pagination `json:"pagination"`
}

// Search returns the works whose title, annotation or author names match q.
func (s *WorkService) Search(q string, offset, limit int) (SearchResults, error) {
	sp := deptlib.WorkSearch{Q: q}
	if offset > 0 {
		sp.Offset = uint64(offset)
	}
	if limit > 0 {
		sp.Limit = uint64(limit)
	}

	res, err := s.index.Search(sp)
	if err != nil {
		return SearchResults{}, err
	}

	works := make([]deptlib.Work, 0, len(res.IDs))
	for _, id := range res.IDs {
		work, err := s.repository.Get(id)
		if err != nil {
			return SearchResults{}, err
		}
		// The index may lag behind the store.
		if work.ID != 0 {
			works = append(works, work)
		}
	}

	return SearchResults{
		Works:      works,
		Pagination: res.Pagination,
	}, nil
}

// Reindex rebuilds the index entry of every stored work and returns how
// many were indexed.
func (s *WorkService) Reindex() (int, error) {
	works, err := s.repository.List()
	if err != nil {
		return 0, err
	}

	for _, work := range works {
		if err := s.indexWork(work); err != nil {
			return 0, err
		}
	}
	return len(works), nil
}

// reindexAuthor refreshes the index entry of every work signed by authorID.
func (s *WorkService) reindexAuthor(authorID int) error {
	works, err := s.repository.List()
	if err != nil {
		return err
	}

	for _, work := range works {
		for _, id := range work.AuthorIDs {
			if id != authorID {
				continue
			}
			if err := s.indexWork(work); err != nil {
				return err
			}
			break
		}
	}
	return nil
}
