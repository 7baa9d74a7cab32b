package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCodeFollowsWrappedChain(t *testing.T) {
	base := errors.New("pq: duplicate key")
	err := fmt.Errorf("create organization: %w", Wrap(base, CodeConflict, "Registration number already exists"))

	assert.True(t, HasCode(err, CodeConflict))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.ErrorIs(t, err, base)
	assert.False(t, HasCode(base, CodeConflict))
}

func TestToHTTPStatusAndTitle(t *testing.T) {
	cases := []struct {
		code   Code
		status int
		title  string
	}{
		{CodeBadRequest, http.StatusBadRequest, "Bad request"},
		{CodeValidation, http.StatusBadRequest, "Bad request"},
		{CodeUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{CodeForbidden, http.StatusForbidden, "Forbidden"},
		{CodeNotFound, http.StatusNotFound, "Not found"},
		{CodeConflict, http.StatusConflict, "Conflict"},
		{CodeRateLimited, http.StatusTooManyRequests, "Too many requests"},
		{CodeInternal, http.StatusInternalServerError, "Internal server error"},
		{Code("something_else"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.status, ToHTTPStatus(tc.code))
			assert.Equal(t, tc.title, Title(tc.code))
		})
	}
}

func TestRequiredNamesField(t *testing.T) {
	err := Required("registrationNumber")
	assert.Equal(t, "registrationNumber is required", err.Message)
	assert.Equal(t, CodeBadRequest, err.Code)
}
