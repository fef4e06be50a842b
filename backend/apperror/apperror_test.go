package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindAuthentication:  http.StatusUnauthorized,
		KindAuthorization:   http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindPaymentRequired: http.StatusPaymentRequired,
		KindUpstream:        http.StatusInternalServerError,
		KindInternal:        http.StatusInternalServerError,
		Kind(99):            http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	sentinel := New(KindNotFound, "Result not found.")
	err := errors.Wrap(errors.WithStack(sentinel), "load result")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.Equal(t, "Result not found.", MessageOf(err, "fallback"))
	assert.True(t, errors.Is(err, sentinel))
}

func TestUnclassifiedIsInternal(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := errors.New("smtp: connection refused")
	err := Upstream("Email could not be sent. Try again later.", cause)

	assert.Equal(t, KindUpstream, KindOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Email could not be sent. Try again later.", MessageOf(err, ""))
}

func TestWrapMatchesSentinel(t *testing.T) {
	sentinel := New(KindUpstream, "Email could not be sent. Try again later.")
	cause := errors.New("dial tcp: refused")

	err := Wrap(sentinel, cause)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, New(KindUpstream, "other")))
}
