package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/recipes-api/internal/auth"
)

func TestClassify(t *testing.T) {
	type testCase struct {
		err    error
		status int
		msg    string
	}
	for _, tc := range []testCase{
		{fmt.Errorf("%w: token is expired", auth.ErrInvalidToken), http.StatusUnauthorized, "Invalid token"},
		{auth.ErrBadCredentials, http.StatusUnauthorized, "Unauthorized"},
		{auth.ErrAccessDenied, http.StatusUnauthorized, "Unauthorized"},
		{errUnknownUser, http.StatusUnauthorized, "Unauthorized"},
		{ErrNotFound, http.StatusNotFound, "Not found"},
		{fmt.Errorf("%w: eof", ErrBadRequest), http.StatusBadRequest, "Bad request"},
		{errTimeout, http.StatusGatewayTimeout, "Gateway Timeout"},
		{errors.New("sql: database is closed"), http.StatusInternalServerError, "Internal Server Error"},
	} {
		status, msg, _ := classify(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.msg, msg, tc.err.Error())
	}
}

func TestETagMatches(t *testing.T) {
	tag := etag([]byte(`{"id":1}`))
	assert.Equal(t, tag, etag([]byte(`{"id":1}`)))
	assert.NotEqual(t, tag, etag([]byte(`{"id":2}`)))

	assert.True(t, etagMatches(tag, tag))
	assert.True(t, etagMatches(`"abc", `+tag, tag))
	assert.True(t, etagMatches("W/"+tag, tag))
	assert.True(t, etagMatches("*", tag))
	assert.False(t, etagMatches("", tag))
	assert.False(t, etagMatches(`"abc"`, tag))
}
