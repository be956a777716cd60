package http

import (
	"context"
	"net/http"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/endpoints"
	"github.com/bobinette/deptlib/services"
)

// registerCatalog routes the CRUD of a collection under path. Reads are
// open to every authenticated user, writes to admins.
func registerCatalog[T any](srv Server, path string, ep endpoints.CatalogEndpoint[T], guards Guards) {
	opts := options()

	listHandler := kithttp.NewServer(
		guards.Authenticated(ep.List),
		decodeNoRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	getHandler := kithttp.NewServer(
		guards.Authenticated(ep.Get),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	createHandler := kithttp.NewServer(
		guards.Admin(ep.Create),
		decodeUpsertRequest[T](false),
		kithttp.EncodeJSONResponse,
		opts...,
	)

	updateHandler := kithttp.NewServer(
		guards.Admin(ep.Update),
		decodeUpsertRequest[T](true),
		kithttp.EncodeJSONResponse,
		opts...,
	)

	deleteHandler := kithttp.NewServer(
		guards.Admin(ep.Delete),
		decodeIDRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)

	srv.RegisterHandler(path, "GET", listHandler)
	srv.RegisterHandler(path+"/:id", "GET", getHandler)
	srv.RegisterHandler(path, "POST", createHandler)
	srv.RegisterHandler(path+"/:id", "PUT", updateHandler)
	srv.RegisterHandler(path+"/:id", "DELETE", deleteHandler)
}

func decodeUpsertRequest[T any](withID bool) kithttp.DecodeRequestFunc {
	return func(ctx context.Context, r *http.Request) (interface{}, error) {
		var req endpoints.UpsertRequest[T]
		if withID {
			id, err := pathID(ctx)
			if err != nil {
				r.Body.Close()
				return nil, err
			}
			req.ID = id
		}

		if err := decodeJSON(r, &req.Record); err != nil {
			return nil, err
		}
		return req, nil
	}
}

func RegisterAuthorEndpoints(srv Server, service *services.AuthorService, guards Guards) {
	registerCatalog[deptlib.Author](srv, "/authors", endpoints.NewCatalogEndpoint[deptlib.Author](service), guards)
}

func RegisterCategoryEndpoints(srv Server, service *services.CategoryService, guards Guards) {
	registerCatalog[deptlib.Category](srv, "/categories", endpoints.NewCatalogEndpoint[deptlib.Category](service), guards)
}

func RegisterJournalEndpoints(srv Server, service *services.JournalService, guards Guards) {
	registerCatalog[deptlib.Journal](srv, "/journals", endpoints.NewCatalogEndpoint[deptlib.Journal](service), guards)
}

func RegisterWorkEndpoints(srv Server, service *services.WorkService, guards Guards) {
	ep := endpoints.NewWorkEndpoint(service)

	searchHandler := kithttp.NewServer(
		guards.Authenticated(ep.Search),
		decodeSearchRequest,
		kithttp.EncodeJSONResponse,
		options()...,
	)
	srv.RegisterHandler("/works/search", "GET", searchHandler)

	registerCatalog[deptlib.Work](srv, "/works", ep.CatalogEndpoint, guards)
}

func decodeSearchRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	offset, err := queryInt(r, "offset")
	if err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}

	return endpoints.SearchRequest{
		Q:      r.URL.Query().Get("q"),
		Offset: offset,
		Limit:  limit,
	}, nil
}
