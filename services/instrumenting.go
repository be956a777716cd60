package services

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bobinette/deptlib"
)

// ReportGenerator is implemented by ReportService and its middlewares.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, start, end time.Time, caller deptlib.Identity) (Document, error)
}

type instrumentingReportService struct {
	next ReportGenerator

	requests metrics.Counter
	latency  metrics.Histogram
	size     metrics.Histogram
}

// NewInstrumentingReportService counts the generated reports by outcome and
// observes their latency and size. The collectors are registered on reg.
func NewInstrumentingReportService(next ReportGenerator, reg prometheus.Registerer) ReportGenerator {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "deptlib",
		Subsystem: "report",
		Name:      "requests_total",
		Help:      "Number of report generations, by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "deptlib",
		Subsystem: "report",
		Name:      "duration_seconds",
		Help:      "Time spent generating a report.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})
	size := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "deptlib",
		Subsystem: "report",
		Name:      "size_bytes",
		Help:      "Size of the rendered reports.",
		Buckets:   prometheus.ExponentialBuckets(4096, 4, 8),
	}, []string{})
	reg.MustRegister(requests, latency, size)

	return &instrumentingReportService{
		next:     next,
		requests: kitprometheus.NewCounter(requests),
		latency:  kitprometheus.NewHistogram(latency),
		size:     kitprometheus.NewHistogram(size),
	}
}

func (s *instrumentingReportService) GenerateReport(ctx context.Context, start, end time.Time, caller deptlib.Identity) (doc Document, err error) {
	defer func(begin time.Time) {
		outcome := "success"
		if err != nil {
			outcome = "error"
		} else {
			s.size.Observe(float64(len(doc.Data)))
		}
		s.requests.With("outcome", outcome).Add(1)
		s.latency.With("outcome", outcome).Observe(time.Since(begin).Seconds())
	}(time.Now())

	return s.next.GenerateReport(ctx, start, end, caller)
}
