package report

import (
	"sort"
)

// Aggregate groups entries by author, in the order authors are first seen.
// Within each list, works are sorted by publication date and keep their
// pipeline order on ties.
func Aggregate(entries []Entry) []AuthorReportData {
	index := make(map[int]int)
	sections := make([]AuthorReportData, 0)

	for _, e := range entries {
		i, ok := index[e.Author.ID]
		if !ok {
			i = len(sections)
			index[e.Author.ID] = i
			sections = append(sections, AuthorReportData{
				AuthorID:          e.Author.ID,
				AuthorName:        e.Author.Name,
				WorksBeforeThesis: make([]WorkInfo, 0),
				WorksAfterThesis:  make([]WorkInfo, 0),
			})
		}

		switch e.Era {
		case PreDefense:
			sections[i].WorksBeforeThesis = append(sections[i].WorksBeforeThesis, e.Info)
		case PostDefense:
			sections[i].WorksAfterThesis = append(sections[i].WorksAfterThesis, e.Info)
		}
	}

	kept := sections[:0]
	for _, s := range sections {
		if s.Empty() {
			continue
		}
		sortByDate(s.WorksBeforeThesis)
		sortByDate(s.WorksAfterThesis)
		kept = append(kept, s)
	}
	return kept
}

func sortByDate(works []WorkInfo) {
	sort.SliceStable(works, func(i, j int) bool {
		return works[i].PublicationDate.Before(works[j].PublicationDate)
	})
}
