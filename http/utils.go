package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/bobinette/deptlib/errors"
	"github.com/bobinette/deptlib/jwt"
)

func options() []kithttp.ServerOption {
	return []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(jwt.ToHTTPContext()),
	}
}

// encodeError writes an error as an HTTP response. It handles the status code
// contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(errors.CodeOf(err))

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": err.Error(),
	})
}

func params(ctx context.Context) map[string]string {
	p, _ := ctx.Value(paramsKey{}).(map[string]string)
	return p
}

func decodeNoRequest(_ context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return nil, nil
}

func decodeIDRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close() // Close body
	return pathID(ctx)
}

func pathID(ctx context.Context) (int, error) {
	id, err := strconv.Atoi(params(ctx)["id"])
	if err != nil {
		return 0, errors.New("invalid id", errors.BadRequest(), errors.WithCause(err))
	}
	return id, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}
	return nil
}

func queryInt(r *http.Request, key string) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("invalid "+key, errors.BadRequest(), errors.WithCause(err))
	}
	return i, nil
}
