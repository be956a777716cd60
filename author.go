package deptlib

import (
	"time"
)

type Author struct {
	ID       int    `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name" validate:"required"`
	Phone    string `json:"phone" bson:"phone"`
	Position string `json:"position" bson:"position"`

	// ThesisDefenseDate is nil while the author has not defended yet.
	ThesisDefenseDate *time.Time `json:"thesisDefenseDate,omitempty" bson:"thesis_defense_date,omitempty"`
}

type Category struct {
	ID    int    `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title" validate:"required"`
}

type Journal struct {
	ID        int    `json:"id" bson:"_id"`
	Title     string `json:"title" bson:"title" validate:"required"`
	Number    int    `json:"number" bson:"number" validate:"gte=0"`
	Volume    int    `json:"volume" bson:"volume" validate:"gte=0"`
	Pages     int    `json:"pages" bson:"pages" validate:"gte=0"`
	Reference string `json:"reference" bson:"reference"`
	Edition   string `json:"edition" bson:"edition"`
}

type AuthorRepository interface {
	Get(int) (Author, error)
	List() ([]Author, error)
	Upsert(*Author) error
	Delete(int) error
}

type CategoryRepository interface {
	Get(int) (Category, error)
	List() ([]Category, error)
	Upsert(*Category) error
	Delete(int) error
}

type JournalRepository interface {
	Get(int) (Journal, error)
	List() ([]Journal, error)
	Upsert(*Journal) error
	Delete(int) error
}
