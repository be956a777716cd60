package services

import (
	"time"

	"github.com/bobinette/deptlib"
)

var (
	admin  = deptlib.Identity{UserID: 1, Role: deptlib.RoleAdmin, IsAdmin: true}
	staff  = deptlib.Identity{UserID: 2, Role: deptlib.RoleStaff}
	author = func(authorID int) deptlib.Identity {
		return deptlib.Identity{UserID: 3, Role: deptlib.RoleAuthor, AuthorID: authorID}
	}
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

type stubEncoder struct{}

func (stubEncoder) Encode(userID int, email, role string) (string, error) {
	return role + ":" + email, nil
}
