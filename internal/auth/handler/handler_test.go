package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	"registrar/internal/auth/service"
	"registrar/internal/auth/store/revocation"
	userStore "registrar/internal/auth/store/user"
	jwttoken "registrar/internal/jwt_token"
	refstore "registrar/internal/reference/store"
	authmw "registrar/pkg/platform/middleware/auth"
	"registrar/pkg/testutil"
)

type captureNotifier struct {
	last string
}

func (c *captureNotifier) NotifyReset(_ context.Context, _ *models.User, token *jwttoken.IssuedToken) error {
	c.last = token.Token
	return nil
}

// HandlerSuite drives the auth routes end to end over in-memory stores and
// the real token signer, so the guard and the handlers are exercised together.
type HandlerSuite struct {
	suite.Suite
	router   http.Handler
	users    *userStore.InMemoryUserStore
	notifier *captureNotifier
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir, err := refstore.NewSeededInMemory(ctx)
	s.Require().NoError(err)

	s.users = userStore.New()
	s.notifier = &captureNotifier{}
	tokens := jwttoken.NewJWTService("test-signing-key", "registrar")
	svc, err := service.New(s.users, dir, tokens, revocation.NewInMemoryTRL(nil), service.Config{
		TokenTTL:            time.Hour,
		ResetTokenTTL:       time.Hour,
		DefaultRoleCode:     "DATA_ENTRY",
		DefaultPositionCode: "DLIROIR356",
	}, service.WithLogger(logger), service.WithResetNotifier(s.notifier))
	s.Require().NoError(err)

	guard := authmw.RequireAuth(authmw.Guard{
		Validator:  tokens,
		Revocation: svc,
		Principals: svc,
		Logger:     logger,
	})
	r := chi.NewRouter()
	r.Route("/api/auth", func(r chi.Router) {
		New(svc, logger).Register(r, guard, nil)
	})
	s.router = r
}

func (s *HandlerSuite) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) register(username, email string) string {
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/register", map[string]any{
		"username":  username,
		"email":     email,
		"password":  "s3cret-pass",
		"firstName": "Test",
		"lastName":  "User",
	}), "")
	s.Require().Equal(http.StatusCreated, rr.Code, rr.Body.String())
	env := testutil.DecodeEnvelope[models.TokenResult](s.T(), rr)
	s.Equal("User registered successfully", env.Message)
	return env.Data.Token
}

func (s *HandlerSuite) TestRegisterLoginProfileLogout() {
	s.register("alice", "alice@example.org")

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/login", map[string]any{
		"email": "alice@example.org", "password": "s3cret-pass",
	}), "")
	s.Require().Equal(http.StatusOK, rr.Code)
	login := testutil.DecodeEnvelope[models.TokenResult](s.T(), rr)
	s.Equal("Login successful", login.Message)
	s.Equal("alice", login.Data.User.Username)
	s.Equal("DATA_ENTRY", login.Data.User.Role.RoleCode)

	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/profile"), login.Data.Token)
	s.Require().Equal(http.StatusOK, rr.Code)
	profile := testutil.DecodeEnvelope[models.UserView](s.T(), rr)
	s.Equal("alice@example.org", profile.Data.Email)
	s.NotNil(profile.Data.LastLogin)

	rr = s.do(testutil.NewRequest(s.T(), http.MethodPost, "/api/auth/logout"), login.Data.Token)
	s.Require().Equal(http.StatusOK, rr.Code)

	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/verify"), login.Data.Token)
	testutil.AssertFailure(s.T(), rr, http.StatusUnauthorized, "Token has been revoked")
}

func (s *HandlerSuite) TestRegisterConflicts() {
	s.register("bob", "bob@example.org")

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/register", map[string]any{
		"username": "BOB", "email": "other@example.org", "password": "p", "firstName": "B", "lastName": "B",
	}), "")
	testutil.AssertFailure(s.T(), rr, http.StatusConflict, "Username already exists")

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/register", map[string]any{
		"username": "bobby", "email": "bob@example.org", "password": "p", "firstName": "B", "lastName": "B",
	}), "")
	testutil.AssertFailure(s.T(), rr, http.StatusConflict, "Email already exists")
}

func (s *HandlerSuite) TestLoginFailures() {
	s.register("carol", "carol@example.org")

	cases := []struct {
		name   string
		body   string
		status int
		msg    string
	}{
		{"empty body", "", http.StatusBadRequest, "No data provided"},
		{"missing password", `{"email":"carol@example.org"}`, http.StatusBadRequest, "Email and password are required"},
		{"wrong password", `{"email":"carol@example.org","password":"nope"}`, http.StatusUnauthorized, "Invalid email or password"},
		{"unknown email", `{"email":"zed@example.org","password":"nope"}`, http.StatusUnauthorized, "Invalid email or password"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := s.do(testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/auth/login", tc.body), "")
			testutil.AssertFailure(s.T(), rr, tc.status, tc.msg)
		})
	}
}

func (s *HandlerSuite) TestGuardedRoutesNeedToken() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/profile"), "")
	testutil.AssertFailure(s.T(), rr, http.StatusUnauthorized, "Token is missing")

	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/profile"), "not-a-jwt")
	testutil.AssertFailure(s.T(), rr, http.StatusUnauthorized, "Invalid token")
}

func (s *HandlerSuite) TestRolesNeedsCapability() {
	token := s.register("dave", "dave@example.org")

	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/roles"), token)
	testutil.AssertFailure(s.T(), rr, http.StatusForbidden, "You do not have permission to view roles")

	rr = s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/positions"), token)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal("Positions retrieved successfully", testutil.UnmarshalErrorResponse(s.T(), rr).Message)
}

func (s *HandlerSuite) TestPasswordResetFlow() {
	s.register("erin", "erin@example.org")

	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/request-reset", map[string]any{
		"email": "nobody@example.org",
	}), "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Empty(s.notifier.last)

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/request-reset", map[string]any{
		"email": "erin@example.org",
	}), "")
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Equal(resetRequestedMessage, testutil.UnmarshalErrorResponse(s.T(), rr).Message)
	s.Require().NotEmpty(s.notifier.last)

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token": "garbage", "newPassword": "brand-new",
	}), "")
	testutil.AssertFailure(s.T(), rr, http.StatusBadRequest, "Invalid token")

	rr = s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token": s.notifier.last, "newPassword": "brand-new",
	}), "")
	s.Require().Equal(http.StatusOK, rr.Code)

	u, err := s.users.FindByEmail(context.Background(), "erin@example.org")
	s.Require().NoError(err)
	s.NoError(secrets.Verify("brand-new", u.PasswordHash))
}

func (s *HandlerSuite) TestAccessTokenIsNotAResetToken() {
	token := s.register("frank", "frank@example.org")
	rr := s.do(testutil.NewJSONRequest(s.T(), http.MethodPost, "/api/auth/reset-password", map[string]any{
		"token": token, "newPassword": "brand-new",
	}), "")
	testutil.AssertFailure(s.T(), rr, http.StatusBadRequest, "Invalid token")
}

func (s *HandlerSuite) TestCSRFTokenIsPublic() {
	rr := s.do(testutil.NewRequest(s.T(), http.MethodGet, "/api/auth/csrf-token"), "")
	s.Require().Equal(http.StatusOK, rr.Code)
	env := testutil.DecodeEnvelope[models.CSRFToken](s.T(), rr)
	s.NotEmpty(env.Data.CSRFToken)
}
