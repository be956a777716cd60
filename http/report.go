package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/deptlib/endpoints"
	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/services"
)

const queryDateLayout = "2006-01-02"

func RegisterReportEndpoints(srv Server, service services.ReportGenerator, guards Guards) {
	ep := endpoints.NewReportEndpoint(service)

	authorsReportHandler := kithttp.NewServer(
		guards.Authenticated(ep.AuthorsReport),
		decodeReportRequest,
		encodeDocument,
		options()...,
	)

	srv.RegisterHandler("/reports/authors", "GET", authorsReportHandler)
}

func decodeReportRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	start, err := queryDate(r, "start")
	if err != nil {
		return nil, err
	}
	end, err := queryDate(r, "end")
	if err != nil {
		return nil, err
	}

	return endpoints.ReportRequest{Start: start, End: end}, nil
}

func queryDate(r *http.Request, key string) (time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return time.Time{}, nil
	}

	t, err := time.Parse(queryDateLayout, v)
	if err != nil {
		return time.Time{}, errors.New(fmt.Sprintf("invalid %s date %q, expected YYYY-MM-DD", key, v), errors.BadRequest())
	}
	return t, nil
}

// encodeDocument sends the rendered report as an attachment.
func encodeDocument(_ context.Context, w http.ResponseWriter, response interface{}) error {
	doc, ok := response.(services.Document)
	if !ok {
		return errors.New("invalid response")
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("X-Report-Id", doc.Meta.ID)
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(doc.Data)
	return err
}
