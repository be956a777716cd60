package endpoints

import (
	"context"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/services"
)

type WorkEndpoint struct {
	CatalogEndpoint[deptlib.Work]

	service *services.WorkService
}

func NewWorkEndpoint(s *services.WorkService) WorkEndpoint {
	return WorkEndpoint{
		CatalogEndpoint: NewCatalogEndpoint[deptlib.Work](s),
		service:         s,
	}
}

type SearchRequest struct {
	Q      string
	Offset int
	Limit  int
}

func (ep WorkEndpoint) Search(ctx context.Context, r interface{}) (interface{}, error) {
	req, ok := r.(SearchRequest)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Search(req.Q, req.Offset, req.Limit)
}
