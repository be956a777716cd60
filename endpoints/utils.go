package endpoints

import (
	"net/http"

	"github.com/bobinette/deptlib/errors"
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

// statusCoder is useful to return http responses with a status that is not 200 but is not
// an error either.
type statusCoder struct {
	code int
}

func (s statusCoder) StatusCode() int { return s.code }

var noContent = statusCoder{code: http.StatusNoContent}

// created wraps a freshly created record so that it is sent with a 201.
type created struct {
	Data interface{} `json:"data"`
}

func (created) StatusCode() int { return http.StatusCreated }
