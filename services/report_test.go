package services

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/inmem"
	"github.com/bobinette/deptlib/log"
	"github.com/bobinette/deptlib/report"
)

type recordingRenderer struct {
	report report.Report
	meta   report.Meta
	err    error
}

func (r *recordingRenderer) Render(w io.Writer, rep report.Report, meta report.Meta) error {
	if r.err != nil {
		return r.err
	}
	r.report = rep
	r.meta = meta
	_, err := io.WriteString(w, "%PDF-1.4")
	return err
}

type failingWorks struct {
	*inmem.WorkRepository
}

func (failingWorks) List() ([]deptlib.Work, error) { return nil, stderrors.New("disk on fire") }

func newReportService(t *testing.T, works deptlib.WorkRepository, renderer report.Renderer) *ReportService {
	authors := inmem.NewAuthorRepository()
	for _, a := range []deptlib.Author{
		{ID: 1, Name: "Ada", ThesisDefenseDate: datePtr(2019, time.January, 1)},
		{ID: 2, Name: "Grace"},
	} {
		a := a
		require.NoError(t, authors.Upsert(&a))
	}

	categories := inmem.NewCategoryRepository()
	require.NoError(t, categories.Upsert(&deptlib.Category{ID: 1, Title: "Article"}))

	s := NewReportService(works, authors, categories, inmem.NewJournalRepository(), renderer, log.Discard())
	s.now = func() time.Time { return time.Date(2024, time.March, 2, 10, 30, 15, 0, time.UTC) }
	return s
}

func seedWorks(t *testing.T) *inmem.WorkRepository {
	works := inmem.NewWorkRepository()
	for _, w := range []deptlib.Work{
		{ID: 1, Title: "Early", AuthorIDs: []int{1}, CategoryID: 1, Pages: 10, PublishDate: datePtr(2018, time.June, 1)},
		{ID: 2, Title: "Late", AuthorIDs: []int{1, 2}, CategoryID: 1, Pages: 0, PublishDate: datePtr(2020, time.June, 1)},
	} {
		w := w
		require.NoError(t, works.Upsert(&w))
	}
	return works
}

func TestReportService_GenerateReport(t *testing.T) {
	renderer := &recordingRenderer{}
	s := newReportService(t, seedWorks(t), renderer)
	s.Title = "Physics department"

	doc, err := s.GenerateReport(context.Background(), time.Time{}, time.Time{}, admin)
	require.NoError(t, err)

	assert.Equal(t, "AuthorsReport_20240302_103015.pdf", doc.Filename)
	assert.Equal(t, []byte("%PDF-1.4"), doc.Data)
	assert.NotEmpty(t, doc.Meta.ID)
	assert.Equal(t, "Physics department", doc.Meta.Title)
	assert.Equal(t, report.DefaultStart, doc.Meta.StartDate)
	assert.Equal(t, renderer.meta, doc.Meta)

	rep := renderer.report
	require.Len(t, rep.Authors, 2)
	assert.Equal(t, "Ada", rep.Authors[0].AuthorName)
	assert.Len(t, rep.Authors[0].WorksBeforeThesis, 1)
	assert.Len(t, rep.Authors[0].WorksAfterThesis, 1)
	assert.Equal(t, "Grace", rep.Authors[1].AuthorName)
	assert.Equal(t, []report.Anomaly{{WorkID: 2, Title: "Late", Pages: 0}}, rep.Stats.Anomalies)
}

func TestReportService_AuthorRole(t *testing.T) {
	renderer := &recordingRenderer{}
	s := newReportService(t, seedWorks(t), renderer)

	_, err := s.GenerateReport(context.Background(), time.Time{}, time.Time{}, author(2))
	require.NoError(t, err)
	require.Len(t, renderer.report.Authors, 2, "co-authors of visible works are kept")
	assert.Empty(t, renderer.report.Authors[0].WorksBeforeThesis)

	_, err = s.GenerateReport(context.Background(), time.Time{}, time.Time{}, author(99))
	errors.AssertCode(t, err, http.StatusForbidden)
	assert.True(t, stderrors.Is(err, report.ErrUnknownIdentity))
}

func TestReportService_Errors(t *testing.T) {
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	tts := map[string]struct {
		works    deptlib.WorkRepository
		renderer *recordingRenderer
		start    time.Time
		end      time.Time
		cause    error
		code     int
		message  string
	}{
		"invalid range": {
			works:    seedWorks(t),
			renderer: &recordingRenderer{},
			start:    start,
			end:      end,
			cause:    report.ErrInvalidRange,
			code:     http.StatusBadRequest,
			message:  "invalid range",
		},
		"store error": {
			works:    failingWorks{inmem.NewWorkRepository()},
			renderer: &recordingRenderer{},
			cause:    report.ErrStore,
			code:     http.StatusInternalServerError,
			message:  "could not load works",
		},
		"render error": {
			works:    seedWorks(t),
			renderer: &recordingRenderer{err: stderrors.New("out of ink")},
			cause:    report.ErrRender,
			code:     http.StatusInternalServerError,
			message:  "could not render report",
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			s := newReportService(t, tt.works, tt.renderer)
			doc, err := s.GenerateReport(context.Background(), tt.start, tt.end, admin)
			require.Error(t, err)
			assert.Empty(t, doc.Data, "no partial report")
			assert.True(t, stderrors.Is(err, tt.cause))
			assert.Contains(t, err.Error(), tt.message)
			errors.AssertCode(t, err, tt.code)
		})
	}
}

func TestReportService_Cancelled(t *testing.T) {
	s := newReportService(t, seedWorks(t), &recordingRenderer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.GenerateReport(ctx, time.Time{}, time.Time{}, admin)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInstrumentingReportService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewInstrumentingReportService(newReportService(t, seedWorks(t), &recordingRenderer{}), reg)

	_, err := s.GenerateReport(context.Background(), time.Time{}, time.Time{}, admin)
	require.NoError(t, err)
	_, err = s.GenerateReport(context.Background(), time.Time{}, time.Time{}, author(99))
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.GetName()
	}
	assert.ElementsMatch(t, []string{
		"deptlib_report_requests_total",
		"deptlib_report_duration_seconds",
		"deptlib_report_size_bytes",
	}, names)

	count, err := promtestutil.GatherAndCount(reg, "deptlib_report_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per outcome")
}
