package endpoints

import (
	"context"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/users"
)

// CatalogService is the CRUD interface shared by the collection services.
type CatalogService[T any] interface {
	List() ([]T, error)
	Get(id int) (T, error)
	Create(caller deptlib.Identity, record T) (T, error)
	Update(caller deptlib.Identity, id int, record T) (T, error)
	Delete(caller deptlib.Identity, id int) error
}

type CatalogEndpoint[T any] struct {
	service CatalogService[T]
}

func NewCatalogEndpoint[T any](s CatalogService[T]) CatalogEndpoint[T] {
	return CatalogEndpoint[T]{
		service: s,
	}
}

// UpsertRequest carries a record to create, or to update when ID is set.
type UpsertRequest[T any] struct {
	ID     int
	Record T
}

func (ep CatalogEndpoint[T]) List(ctx context.Context, _ interface{}) (interface{}, error) {
	records, err := ep.service.List()
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": records,
	}, nil
}

func (ep CatalogEndpoint[T]) Get(ctx context.Context, r interface{}) (interface{}, error) {
	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Get(id)
}

func (ep CatalogEndpoint[T]) Create(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpsertRequest[T])
	if !ok {
		return nil, errInvalidRequest
	}

	record, err := ep.service.Create(caller, req.Record)
	if err != nil {
		return nil, err
	}

	return created{Data: record}, nil
}

func (ep CatalogEndpoint[T]) Update(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	req, ok := r.(UpsertRequest[T])
	if !ok {
		return nil, errInvalidRequest
	}

	return ep.service.Update(caller, req.ID, req.Record)
}

func (ep CatalogEndpoint[T]) Delete(ctx context.Context, r interface{}) (interface{}, error) {
	caller, err := users.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	id, ok := r.(int)
	if !ok {
		return nil, errInvalidRequest
	}

	if err := ep.service.Delete(caller, id); err != nil {
		return nil, err
	}

	return noContent, nil
}
