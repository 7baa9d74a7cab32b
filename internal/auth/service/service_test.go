package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"registrar/internal/auth/models"
	"registrar/internal/auth/secrets"
	"registrar/internal/auth/service/mocks"
	userStore "registrar/internal/auth/store/user"
	jwttoken "registrar/internal/jwt_token"
	"registrar/internal/platform/metrics"
	refstore "registrar/internal/reference/store"
	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/audit"
	"registrar/pkg/platform/patch"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// Service tests cover credential checks, error translation and the audit
// side effects. Stores and the token signer are mocked; reference data is
// the real seeded in-memory directory.
type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	users     *mocks.MockUserStore
	tokens    *mocks.MockTokenIssuer
	revoker   *mocks.MockTokenRevoker
	notifier  *mocks.MockResetNotifier
	publisher *mocks.MockAuditPublisher
	directory *refstore.InMemoryStore
	metrics   *metrics.Metrics
	service   *Service
	now       time.Time
	hash      string
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupSuite() {
	hash, err := secrets.Hash("correct-horse")
	s.Require().NoError(err)
	s.hash = hash
	s.now = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserStore(s.ctrl)
	s.tokens = mocks.NewMockTokenIssuer(s.ctrl)
	s.revoker = mocks.NewMockTokenRevoker(s.ctrl)
	s.notifier = mocks.NewMockResetNotifier(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	s.metrics = metrics.New(prometheus.NewRegistry())

	dir, err := refstore.NewSeededInMemory(context.Background())
	s.Require().NoError(err)
	s.directory = dir

	s.service, err = New(s.users, dir, s.tokens, s.revoker, Config{
		TokenTTL:            time.Hour,
		ResetTokenTTL:       time.Hour,
		DefaultRoleCode:     "DATA_ENTRY",
		DefaultPositionCode: "DLIROIR356",
	},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.publisher),
		WithMetrics(s.metrics),
		WithResetNotifier(s.notifier),
	)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), s.now)
}

func (s *ServiceSuite) callerCtx(u *models.User) context.Context {
	return requestcontext.WithCaller(s.ctx(), requestcontext.Caller{
		UserID:    u.ID,
		Username:  u.Username,
		TokenID:   "jti-1",
		ExpiresAt: s.now.Add(30 * time.Minute),
	})
}

func (s *ServiceSuite) activeUser() *models.User {
	role, err := s.directory.RoleByCode(context.Background(), "REGISTRAR")
	s.Require().NoError(err)
	return &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.org",
		PasswordHash: s.hash,
		FirstName:    "Alice",
		LastName:     "Banda",
		RoleID:       &role.ID,
		Status:       models.StatusActive,
	}
}

func (s *ServiceSuite) assertCode(err error, code dErrors.Code, msg string) {
	s.T().Helper()
	s.Require().Error(err)
	de, ok := dErrors.As(err)
	s.Require().True(ok, "expected a domain error, got %v", err)
	s.Equal(code, de.Code)
	if msg != "" {
		s.Equal(msg, de.Message)
	}
}

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	_, err := New(nil, s.directory, s.tokens, s.revoker, Config{})
	s.Error(err)
}

func (s *ServiceSuite) TestLogin() {
	s.Run("missing fields", func() {
		_, err := s.service.Login(s.ctx(), models.LoginRequest{Email: "alice@example.org"})
		s.assertCode(err, dErrors.CodeBadRequest, "Email and password are required")
	})

	s.Run("unknown email", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "nobody@example.org").Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Login(s.ctx(), models.LoginRequest{Email: "nobody@example.org", Password: "x"})
		s.assertCode(err, dErrors.CodeUnauthorized, "Invalid email or password")
	})

	s.Run("wrong password", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByEmail(gomock.Any(), u.Email).Return(u, nil)
		_, err := s.service.Login(s.ctx(), models.LoginRequest{Email: u.Email, Password: "wrong"})
		s.assertCode(err, dErrors.CodeUnauthorized, "Invalid email or password")
		s.InDelta(1, testutil.ToFloat64(s.metrics.AuthFailures.WithLabelValues("bad_password")), 0)
	})

	s.Run("inactive account", func() {
		u := s.activeUser()
		u.Status = models.StatusInactive
		s.users.EXPECT().FindByEmail(gomock.Any(), u.Email).Return(u, nil)
		_, err := s.service.Login(s.ctx(), models.LoginRequest{Email: u.Email, Password: "correct-horse"})
		s.assertCode(err, dErrors.CodeUnauthorized, "User account is inactive")
	})

	s.Run("store failure is internal", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
		_, err := s.service.Login(s.ctx(), models.LoginRequest{Email: "a@b.c", Password: "x"})
		s.assertCode(err, dErrors.CodeInternal, "")
	})

	s.Run("success issues token with role and records login", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByEmail(gomock.Any(), u.Email).Return(u, nil)
		s.tokens.EXPECT().GenerateAccessToken(u.ID, "REGISTRAR", time.Hour).
			Return(&jwttoken.IssuedToken{Token: "tok", ID: "jti", ExpiresAt: s.now.Add(time.Hour)}, nil)
		s.users.EXPECT().TouchLastLogin(gomock.Any(), u.ID, s.now).Return(nil)

		res, err := s.service.Login(s.ctx(), models.LoginRequest{Email: " " + u.Email + " ", Password: "correct-horse"})
		s.Require().NoError(err)
		s.Equal("tok", res.Token)
		s.Require().NotNil(res.User.Role)
		s.Equal("REGISTRAR", res.User.Role.RoleCode)
		s.Require().NotNil(res.User.LastLogin)
		s.Equal(s.now, *res.User.LastLogin)
	})
}

func (s *ServiceSuite) registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:  patch.Val("bob"),
		Email:     patch.Val("bob@example.org"),
		Password:  patch.Val("s3cret-pass"),
		FirstName: patch.Val("Bob"),
		LastName:  patch.Val("Phiri"),
	}
}

func (s *ServiceSuite) TestRegister() {
	s.Run("first missing field is reported", func() {
		req := s.registerRequest()
		req.Email = patch.Field[string]{}
		req.FirstName = patch.Val("")
		_, err := s.service.Register(s.ctx(), req)
		s.assertCode(err, dErrors.CodeBadRequest, "email is required")
	})

	s.Run("username taken", func() {
		s.users.EXPECT().FindByUsername(gomock.Any(), "bob").Return(&models.User{ID: uuid.New()}, nil)
		_, err := s.service.Register(s.ctx(), s.registerRequest())
		s.assertCode(err, dErrors.CodeConflict, "Username already exists")
	})

	s.Run("email taken", func() {
		s.users.EXPECT().FindByUsername(gomock.Any(), "bob").Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByEmail(gomock.Any(), "bob@example.org").Return(&models.User{ID: uuid.New()}, nil)
		_, err := s.service.Register(s.ctx(), s.registerRequest())
		s.assertCode(err, dErrors.CodeConflict, "Email already exists")
	})

	s.Run("administrative role is forbidden", func() {
		admin, err := s.directory.RoleByCode(context.Background(), "ADMIN")
		s.Require().NoError(err)
		req := s.registerRequest()
		req.RoleID = patch.Val(admin.ID)
		s.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		_, err = s.service.Register(s.ctx(), req)
		s.assertCode(err, dErrors.CodeForbidden, "")
	})

	s.Run("unknown position", func() {
		req := s.registerRequest()
		req.PositionID = patch.Val(9999)
		s.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.Register(s.ctx(), req)
		s.assertCode(err, dErrors.CodeBadRequest, "Invalid positionId")
	})

	s.Run("storage conflict after pre-check", func() {
		s.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(userStore.ErrEmailTaken)
		_, err := s.service.Register(s.ctx(), s.registerRequest())
		s.assertCode(err, dErrors.CodeConflict, "Email already exists")
	})

	s.Run("defaults role and position", func() {
		var created *models.User
		s.users.EXPECT().FindByUsername(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
			created = u
			return nil
		})
		s.tokens.EXPECT().GenerateAccessToken(gomock.Any(), "DATA_ENTRY", time.Hour).
			Return(&jwttoken.IssuedToken{Token: "tok", ExpiresAt: s.now.Add(time.Hour)}, nil)

		res, err := s.service.Register(s.ctx(), s.registerRequest())
		s.Require().NoError(err)
		s.Require().NotNil(created)
		s.Equal(models.StatusActive, created.Status)
		s.NoError(secrets.Verify("s3cret-pass", created.PasswordHash))
		s.Equal(s.now, created.CreatedAt)
		s.Require().NotNil(res.User.Position)
		s.Equal("DLIROIR356", res.User.Position.PositionCode)
		s.Equal("DATA_ENTRY", res.User.Role.RoleCode)
	})
}

func (s *ServiceSuite) TestUpdateProfile() {
	s.Run("email change to a taken address", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		s.users.EXPECT().FindByEmail(gomock.Any(), "taken@example.org").Return(&models.User{ID: uuid.New()}, nil)
		_, err := s.service.UpdateProfile(s.callerCtx(u), models.UpdateProfileRequest{Email: patch.Val("taken@example.org")})
		s.assertCode(err, dErrors.CodeConflict, "Email already exists")
	})

	s.Run("only present fields change", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		view, err := s.service.UpdateProfile(s.callerCtx(u), models.UpdateProfileRequest{FirstName: patch.Val("Alicia")})
		s.Require().NoError(err)
		s.Equal("Alicia", view.FirstName)
		s.Equal("Banda", view.LastName)
		s.Equal("alice@example.org", view.Email)
		s.Equal(s.now, view.UpdatedAt)
	})

	s.Run("null name rejected", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		_, err := s.service.UpdateProfile(s.callerCtx(u), models.UpdateProfileRequest{LastName: patch.NullField[string]()})
		s.assertCode(err, dErrors.CodeBadRequest, "lastName cannot be null")
	})
}

func (s *ServiceSuite) TestChangePassword() {
	s.Run("missing fields", func() {
		err := s.service.ChangePassword(s.ctx(), models.ChangePasswordRequest{NewPassword: "x"})
		s.assertCode(err, dErrors.CodeBadRequest, "Current password and new password are required")
	})

	s.Run("wrong current password", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		err := s.service.ChangePassword(s.callerCtx(u), models.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "next"})
		s.assertCode(err, dErrors.CodeUnauthorized, "Current password is incorrect")
	})

	s.Run("stores a new hash", func() {
		u := s.activeUser()
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, updated *models.User) error {
			s.NoError(secrets.Verify("next-pass", updated.PasswordHash))
			return nil
		})
		s.NoError(s.service.ChangePassword(s.callerCtx(u), models.ChangePasswordRequest{CurrentPassword: "correct-horse", NewPassword: "next-pass"}))
	})
}

func (s *ServiceSuite) TestRequestReset() {
	s.Run("email required", func() {
		err := s.service.RequestReset(s.ctx(), models.RequestResetRequest{})
		s.assertCode(err, dErrors.CodeBadRequest, "Email is required")
	})

	s.Run("unknown email is silent", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.org").Return(nil, sentinel.ErrNotFound)
		s.NoError(s.service.RequestReset(s.ctx(), models.RequestResetRequest{Email: "ghost@example.org"}))
	})

	s.Run("known email notifies", func() {
		u := s.activeUser()
		tok := &jwttoken.IssuedToken{Token: "reset", ExpiresAt: s.now.Add(time.Hour)}
		s.users.EXPECT().FindByEmail(gomock.Any(), u.Email).Return(u, nil)
		s.tokens.EXPECT().GenerateResetToken(u.ID, time.Hour).Return(tok, nil)
		s.notifier.EXPECT().NotifyReset(gomock.Any(), u, tok).Return(errors.New("smtp down"))
		s.NoError(s.service.RequestReset(s.ctx(), models.RequestResetRequest{Email: u.Email}))
	})

	s.Run("store failure is internal", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
		err := s.service.RequestReset(s.ctx(), models.RequestResetRequest{Email: "x@example.org"})
		s.assertCode(err, dErrors.CodeInternal, "")
	})
}

func (s *ServiceSuite) TestResetPassword() {
	s.Run("missing fields", func() {
		err := s.service.ResetPassword(s.ctx(), models.ResetPasswordRequest{Token: "t"})
		s.assertCode(err, dErrors.CodeBadRequest, "Token and new password are required")
	})

	s.Run("expired token", func() {
		s.tokens.EXPECT().ValidateResetToken("old").Return(uuid.Nil, jwttoken.ErrTokenExpired)
		err := s.service.ResetPassword(s.ctx(), models.ResetPasswordRequest{Token: "old", NewPassword: "n"})
		s.assertCode(err, dErrors.CodeBadRequest, "Token has expired")
	})

	s.Run("invalid token", func() {
		s.tokens.EXPECT().ValidateResetToken("junk").Return(uuid.Nil, jwttoken.ErrTokenInvalid)
		err := s.service.ResetPassword(s.ctx(), models.ResetPasswordRequest{Token: "junk", NewPassword: "n"})
		s.assertCode(err, dErrors.CodeBadRequest, "Invalid token")
	})

	s.Run("deleted subject", func() {
		u := s.activeUser()
		u.IsDeleted = true
		s.tokens.EXPECT().ValidateResetToken("tok").Return(u.ID, nil)
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		err := s.service.ResetPassword(s.ctx(), models.ResetPasswordRequest{Token: "tok", NewPassword: "n"})
		s.assertCode(err, dErrors.CodeBadRequest, "Invalid token")
	})

	s.Run("success", func() {
		u := s.activeUser()
		s.tokens.EXPECT().ValidateResetToken("tok").Return(u.ID, nil)
		s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)
		s.users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		s.NoError(s.service.ResetPassword(s.ctx(), models.ResetPasswordRequest{Token: "tok", NewPassword: "fresh-pass"}))
	})
}

func (s *ServiceSuite) TestLogoutRevokesForRemainingLifetime() {
	u := s.activeUser()
	s.revoker.EXPECT().RevokeToken(gomock.Any(), "jti-1", 30*time.Minute).Return(nil)
	s.NoError(s.service.Logout(s.callerCtx(u)))

	s.Run("revoker failure is internal", func() {
		s.revoker.EXPECT().RevokeToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
		s.assertCode(s.service.Logout(s.callerCtx(u)), dErrors.CodeInternal, "")
	})

	s.Run("no caller is a no-op", func() {
		s.NoError(s.service.Logout(s.ctx()))
	})
}

func (s *ServiceSuite) TestLookupPrincipal() {
	u := s.activeUser()
	u.IsDeleted = true
	s.users.EXPECT().FindByID(gomock.Any(), u.ID).Return(u, nil)

	p, err := s.service.LookupPrincipal(s.ctx(), u.ID)
	s.Require().NoError(err)
	s.Equal("REGISTRAR", p.RoleCode)
	s.False(p.Active)

	missing := uuid.New()
	s.users.EXPECT().FindByID(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)
	_, err = s.service.LookupPrincipal(s.ctx(), missing)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *ServiceSuite) TestCSRFTokenIsRandom() {
	a, err := s.service.CSRFToken()
	s.Require().NoError(err)
	b, err := s.service.CSRFToken()
	s.Require().NoError(err)
	s.NotEqual(a.CSRFToken, b.CSRFToken)
	s.Len(a.CSRFToken, 43)
}

func TestLogNotifierDoesNotLogToken(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	err := n.NotifyReset(context.Background(), &models.User{ID: uuid.New()}, &jwttoken.IssuedToken{Token: "super-secret-token"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "password reset issued")
	assert.NotContains(t, buf.String(), "super-secret-token")
}

var _ audit.Emitter = (*mocks.MockAuditPublisher)(nil)
