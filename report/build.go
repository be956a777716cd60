package report

import (
	"github.com/bobinette/deptlib"
)

// Request describes a report computation.
type Request struct {
	Range    Range
	Caller   deptlib.Identity
	Fallback FallbackPolicy
}

// Build runs the pipeline over c: filter the works, join them with their
// references, partition by thesis defense and group by author.
func Build(c Collections, req Request) (Report, error) {
	l := NewLookup(c)
	if err := checkIdentity(req.Caller, l.authors); err != nil {
		return Report{}, err
	}

	fallback := req.Fallback
	if fallback == nil {
		fallback = MidpointFallback
	}

	works := Filter(c.Works, req.Range, req.Caller)
	entries := Partition(Join(works, l, fallback(req.Range)))
	authors := Aggregate(entries)

	return Report{
		Authors: authors,
		Stats:   computeStats(authors),
	}, nil
}

func computeStats(authors []AuthorReportData) Stats {
	stats := Stats{
		Authors:   len(authors),
		Anomalies: make([]Anomaly, 0),
	}

	categories := make(map[string]struct{})
	journals := make(map[string]struct{})
	flagged := make(map[int]struct{})
	for _, a := range authors {
		for _, works := range [][]WorkInfo{a.WorksBeforeThesis, a.WorksAfterThesis} {
			for _, w := range works {
				stats.Works++
				stats.Pages += w.Pages
				categories[w.Category] = struct{}{}
				journals[w.Journal] = struct{}{}

				if _, ok := flagged[w.WorkID]; w.Pages <= 0 && !ok {
					flagged[w.WorkID] = struct{}{}
					stats.Anomalies = append(stats.Anomalies, Anomaly{WorkID: w.WorkID, Title: w.Title, Pages: w.Pages})
				}
			}
		}
	}
	stats.Categories = len(categories)
	stats.Journals = len(journals)
	return stats
}
