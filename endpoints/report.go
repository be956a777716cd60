package endpoints

import (
	"context"
	"time"

	"github.com/bobinette/deptlib/services"
	"github.com/bobinette/deptlib/users"
)

type ReportEndpoint struct {
	service services.ReportGenerator
}

func NewReportEndpoint(s services.ReportGenerator) ReportEndpoint {
	return ReportEndpoint{
		service: s,
	}
}

// ReportRequest bounds the publication dates, zero values select the
// default bounds.
type ReportRequest struct {
	Start time.Time
	End   time.Time
}

func (ep ReportEndpoint) AuthorsReport(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(ReportRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.GenerateReport(ctx, req.Start, req.End, caller)
}
