package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCode checks that err carries code. A plain error is only accepted
// when the expected code is DefaultCode.
func AssertCode(t *testing.T, err error, code int) {
	switch err := err.(type) {
	case nil:
		assert.Fail(t, fmt.Sprintf("expected an error with code %d, got nil", code))
	case Error:
		assert.Equal(t, code, err.Code(), "code should be equal")
	default:
		if code != DefaultCode {
			assert.Fail(t, fmt.Sprintf("error is not Error and expected code != %d (default)", DefaultCode))
		}
	}
}
