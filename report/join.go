package report

import (
	"strings"
	"time"

	"github.com/bobinette/deptlib"
)

// Entry is one (author, work) pair travelling through the pipeline.
type Entry struct {
	Author    deptlib.Author
	Info      WorkInfo
	Effective time.Time
	Era       Era
}

// Collections holds the records a report is computed from.
type Collections struct {
	Works      []deptlib.Work
	Authors    []deptlib.Author
	Categories []deptlib.Category
	Journals   []deptlib.Journal
}

type Lookup struct {
	authors    map[int]deptlib.Author
	categories map[int]string
	journals   map[int]string
}

func NewLookup(c Collections) Lookup {
	l := Lookup{
		authors:    make(map[int]deptlib.Author, len(c.Authors)),
		categories: make(map[int]string, len(c.Categories)),
		journals:   make(map[int]string, len(c.Journals)),
	}
	for _, a := range c.Authors {
		l.authors[a.ID] = a
	}
	for _, cat := range c.Categories {
		l.categories[cat.ID] = cat.Title
	}
	for _, j := range c.Journals {
		l.journals[j.ID] = j.Title
	}
	return l
}

// Join resolves the references of every work and emits one entry per
// resolvable author. Works without any resolvable author produce nothing.
func Join(works []deptlib.Work, l Lookup, fallback time.Time) []Entry {
	entries := make([]Entry, 0, len(works))
	for _, work := range works {
		info := annotate(work, l, fallback)

		seen := make(map[int]bool, len(work.AuthorIDs))
		for _, authorID := range work.AuthorIDs {
			author, ok := l.authors[authorID]
			if !ok || seen[authorID] {
				continue
			}
			seen[authorID] = true

			entries = append(entries, Entry{
				Author:    author,
				Info:      info,
				Effective: info.PublicationDate,
			})
		}
	}
	return entries
}

func annotate(work deptlib.Work, l Lookup, fallback time.Time) WorkInfo {
	info := WorkInfo{
		WorkID:           work.ID,
		Title:            orDefault(work.Title, Untitled),
		Category:         Uncategorized,
		Journal:          NoJournal,
		Pages:            work.Pages,
		DigitalReference: orDefault(work.DigitalReference, NoReference),
	}

	if work.PublishDate != nil {
		info.PublicationDate = work.PublishDate.UTC()
	} else {
		info.PublicationDate = fallback
		info.DateAssumed = true
	}

	if title, ok := l.categories[work.CategoryID]; ok && work.CategoryID != 0 {
		info.Category = orDefault(title, Uncategorized)
	}
	if title, ok := l.journals[work.JournalID]; ok && work.JournalID != 0 {
		info.Journal = orDefault(title, NoJournal)
	}

	return info
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
