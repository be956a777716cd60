package report

import (
	"fmt"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
)

// Filter keeps the works visible to caller whose publish date is in r.
// Undated works are never excluded by the range.
func Filter(works []deptlib.Work, r Range, caller deptlib.Identity) []deptlib.Work {
	kept := make([]deptlib.Work, 0, len(works))
	for _, work := range works {
		if work.PublishDate != nil && !r.Contains(*work.PublishDate) {
			continue
		}

		if caller.AuthorScoped() && !work.HasAuthor(caller.AuthorID) {
			continue
		}

		kept = append(kept, work)
	}
	return kept
}

// checkIdentity fails when caller is restricted to its own works but is not
// linked to any known author.
func checkIdentity(caller deptlib.Identity, authors map[int]deptlib.Author) error {
	if !caller.AuthorScoped() {
		return nil
	}

	if _, ok := authors[caller.AuthorID]; caller.AuthorID == 0 || !ok {
		return errors.New(
			fmt.Sprintf("unknown identity: user %d is not linked to an author", caller.UserID),
			errors.Forbidden(),
			errors.WithCause(ErrUnknownIdentity),
		)
	}
	return nil
}
