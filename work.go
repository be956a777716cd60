package deptlib

import (
	"time"
)

// Work is a publication registered in the department library.
type Work struct {
	ID               int    `json:"id" bson:"_id"`
	Title            string `json:"title" bson:"title" validate:"required"`
	Annotation       string `json:"annotation" bson:"annotation" validate:"required"`
	SourceReferences string `json:"sourceReferences" bson:"source_references"`
	Pages            int    `json:"pages" bson:"pages_num" validate:"gt=0"`
	AuthorIDs        []int  `json:"authors" bson:"authors" validate:"required,min=1,dive,gt=0"`
	DigitalReference string `json:"digitalReference" bson:"digital_reference" validate:"required"`
	City             string `json:"city" bson:"city"`

	// CategoryID is required on write but stored works may still miss it.
	// JournalID is 0 when the work was not published in a journal.
	CategoryID int `json:"category" bson:"category" validate:"gt=0"`
	JournalID  int `json:"journal,omitempty" bson:"journal,omitempty"`

	// PublishDate is nil when the publication date is unknown.
	PublishDate *time.Time `json:"publishDate,omitempty" bson:"publish_date,omitempty"`
}

// HasAuthor reports whether authorID is among the authors of the work.
func (w Work) HasAuthor(authorID int) bool {
	for _, id := range w.AuthorIDs {
		if id == authorID {
			return true
		}
	}
	return false
}

type WorkRepository interface {
	// Get returns the zero Work when no work has the given id.
	Get(int) (Work, error)
	List() ([]Work, error)
	Upsert(*Work) error
	Delete(int) error
}

type WorkIndex interface {
	Index(Work, []Author) error
	Search(WorkSearch) (WorkSearchResults, error)
	Delete(int) error
}

type WorkSearch struct {
	Q string `json:"q"`

	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type WorkSearchResults struct {
	IDs        []int
	Pagination Pagination
}
