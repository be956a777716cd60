package report

import (
	"time"
)

// Placeholders substituted for missing values.
const (
	Untitled         = "Untitled"
	Uncategorized    = "Uncategorized"
	NoJournal        = "No Journal"
	NoReference      = "N/A"
	DateLayout       = "02/01/2006"
	DateTimeLayout   = "02/01/2006 15:04"
	DefaultTitle     = "Department Library Report"
	BeforeDefenseTag = "Works Before Dissertation Defense"
	AfterDefenseTag  = "Works After Dissertation Defense"
)

// WorkInfo is the display form of a work inside an author section.
type WorkInfo struct {
	WorkID           int       `json:"workID"`
	Title            string    `json:"title"`
	PublicationDate  time.Time `json:"publicationDate"`
	DateAssumed      bool      `json:"dateAssumed"`
	Category         string    `json:"category"`
	Journal          string    `json:"journal"`
	Pages            int       `json:"pages"`
	DigitalReference string    `json:"digitalReference"`
}

// AuthorReportData is one author section of the report.
type AuthorReportData struct {
	AuthorID          int        `json:"authorID"`
	AuthorName        string     `json:"authorName"`
	WorksBeforeThesis []WorkInfo `json:"worksBeforeThesis"`
	WorksAfterThesis  []WorkInfo `json:"worksAfterThesis"`
}

// Empty reports whether the section has nothing to show.
func (a AuthorReportData) Empty() bool {
	return len(a.WorksBeforeThesis) == 0 && len(a.WorksAfterThesis) == 0
}

type Meta struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Anomaly flags a work that is included in the report but looks wrong.
type Anomaly struct {
	WorkID int    `json:"workID"`
	Title  string `json:"title"`
	Pages  int    `json:"pages"`
}

type Stats struct {
	Authors    int       `json:"authors"`
	Works      int       `json:"works"`
	Pages      int       `json:"pages"`
	Categories int       `json:"categories"`
	Journals   int       `json:"journals"`
	Anomalies  []Anomaly `json:"anomalies"`
}

type Report struct {
	Authors []AuthorReportData `json:"authors"`
	Stats   Stats              `json:"stats"`
}
