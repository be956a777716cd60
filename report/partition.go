package report

// Era tells on which side of the thesis defense a work was published.
type Era int

const (
	PreDefense Era = iota
	PostDefense
)

func (e Era) String() string {
	if e == PostDefense {
		return "post-defense"
	}
	return "pre-defense"
}

// Partition tags every entry. An author without a defense date only has
// pre-defense works; a work published on the defense day is post-defense,
// whatever the time of day of either date.
func Partition(entries []Entry) []Entry {
	for i := range entries {
		entries[i].Era = classify(entries[i])
	}
	return entries
}

func classify(e Entry) Era {
	defense := e.Author.ThesisDefenseDate
	if defense == nil {
		return PreDefense
	}

	if day(e.Effective).Before(day(*defense)) {
		return PreDefense
	}
	return PostDefense
}
