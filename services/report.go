package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/log"
	"github.com/bobinette/deptlib/report"
)

const filenameLayout = "20060102_150405"

// Document is a rendered report.
type Document struct {
	Meta     report.Meta
	Data     []byte
	Filename string
}

type ReportService struct {
	works      deptlib.WorkRepository
	authors    deptlib.AuthorRepository
	categories deptlib.CategoryRepository
	journals   deptlib.JournalRepository

	renderer report.Renderer
	logger   log.Logger

	// Title is printed on top of every page.
	Title string
	// Fallback dates the works without a publish date, defaults to the
	// midpoint of the range.
	Fallback report.FallbackPolicy

	now func() time.Time
}

func NewReportService(
	works deptlib.WorkRepository,
	authors deptlib.AuthorRepository,
	categories deptlib.CategoryRepository,
	journals deptlib.JournalRepository,
	renderer report.Renderer,
	logger log.Logger,
) *ReportService {
	return &ReportService{
		works:      works,
		authors:    authors,
		categories: categories,
		journals:   journals,

		renderer: renderer,
		logger:   logger,

		Title:    report.DefaultTitle,
		Fallback: report.MidpointFallback,

		now: time.Now,
	}
}

// GenerateReport builds the authors report of the works published between
// start and end, as seen by caller, and renders it.
func (s *ReportService) GenerateReport(ctx context.Context, start, end time.Time, caller deptlib.Identity) (Document, error) {
	now := s.now()

	r, err := report.NewRange(start, end, now)
	if err != nil {
		return Document{}, err
	}

	logger := s.logger.WithField("user", caller.UserID)
	logger.Infof("generating report from %s to %s", r.Start.Format(report.DateLayout), r.End.Format(report.DateLayout))

	collections, err := s.load()
	if err != nil {
		return Document{}, err
	}

	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	rep, err := report.Build(collections, report.Request{
		Range:    r,
		Caller:   caller,
		Fallback: s.Fallback,
	})
	if err != nil {
		return Document{}, err
	}

	stats := rep.Stats
	logger.Infof(
		"report stats: %d authors, %d works, %d pages, %d categories, %d journals",
		stats.Authors, stats.Works, stats.Pages, stats.Categories, stats.Journals,
	)
	for _, a := range stats.Anomalies {
		logger.Warnf("work %d (%s) has a page count of %d", a.WorkID, a.Title, a.Pages)
	}

	meta := report.Meta{
		ID:          uuid.NewString(),
		Title:       s.Title,
		StartDate:   r.Start,
		EndDate:     r.End,
		GeneratedAt: now,
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, rep, meta); err != nil {
		return Document{}, errors.New(
			"could not render report",
			errors.WithCause(fmt.Errorf("%w: %w", report.ErrRender, err)),
		)
	}

	return Document{
		Meta:     meta,
		Data:     buf.Bytes(),
		Filename: fmt.Sprintf("AuthorsReport_%s.pdf", now.Format(filenameLayout)),
	}, nil
}

// load reads the four collections once. Any failure aborts the report.
func (s *ReportService) load() (report.Collections, error) {
	var c report.Collections
	var err error

	if c.Works, err = s.works.List(); err != nil {
		return report.Collections{}, errLoad("works", err)
	}
	if c.Authors, err = s.authors.List(); err != nil {
		return report.Collections{}, errLoad("authors", err)
	}
	if c.Categories, err = s.categories.List(); err != nil {
		return report.Collections{}, errLoad("categories", err)
	}
	if c.Journals, err = s.journals.List(); err != nil {
		return report.Collections{}, errLoad("journals", err)
	}
	return c, nil
}

func errLoad(collection string, err error) error {
	return errors.New(
		fmt.Sprintf("could not load %s", collection),
		errors.WithCause(fmt.Errorf("%w: %w", report.ErrStore, err)),
	)
}
