package testutil

import (
	"net/http"

	"github.com/google/uuid"

	"registrar/pkg/requestcontext"
)

// WithCaller attaches an authenticated caller to the request, as the auth
// middleware would.
func WithCaller(req *http.Request, caller requestcontext.Caller) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// AsRole attaches a caller with a fresh id and the given role code.
func AsRole(req *http.Request, role string) (*http.Request, requestcontext.Caller) {
	c := requestcontext.Caller{UserID: uuid.New(), Username: "tester", Email: "tester@example.org", Role: role}
	return WithCaller(req, c), c
}
