package deptlib

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleAuthor = "author"
	RoleStaff  = "staff"
)

type SigningKey struct {
	Key string `json:"k"`
}

type User struct {
	ID       int    `json:"id" bson:"_id"`
	Email    string `json:"email" bson:"email"`
	Name     string `json:"name" bson:"name"`
	Phone    string `json:"phone" bson:"phone"`
	Position string `json:"position" bson:"position"`
	Role     string `json:"role" bson:"role"`

	PasswordHash string `json:"passwordHash,omitempty" bson:"password"`

	// AuthorID links an account with role "author" to its Author record.
	AuthorID int `json:"authorID,omitempty" bson:"author_id,omitempty"`

	ThesisDefenseDate *time.Time `json:"thesisDefenseDate,omitempty" bson:"thesis_defense_date,omitempty"`
}

// Public returns a copy of the user without its password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

type UserRepository interface {
	Get(int) (User, error)
	// GetByEmail returns the zero User when no user has the given email.
	GetByEmail(string) (User, error)
	List() ([]User, error)
	Upsert(*User) error
	Delete(int) error
}

// Identity is what the token layer knows about an authenticated caller.
type Identity struct {
	UserID   int    `json:"userID"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	AuthorID int    `json:"authorID,omitempty"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthorScoped reports whether the caller may only see its own works.
func (id Identity) AuthorScoped() bool {
	return id.Role == RoleAuthor
}
