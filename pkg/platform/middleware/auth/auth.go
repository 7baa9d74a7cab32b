// Package auth resolves the bearer token on every guarded request into a
// requestcontext.Caller.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "registrar/pkg/domain-errors"
	"registrar/pkg/platform/httputil"
	request "registrar/pkg/platform/middleware/request"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/requestcontext"
)

// Failure reasons, logged and counted.
const (
	ReasonMissing     = "missing"
	ReasonExpired     = "expired"
	ReasonInvalid     = "invalid"
	ReasonRevoked     = "revoked"
	ReasonUnknownUser = "unknown_user"
	ReasonInactive    = "inactive"
)

// Claims are the access-token facts the guard needs.
type Claims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// TokenValidator validates access tokens. Expired tokens are reported with an
// error wrapping sentinel.ErrExpired.
type TokenValidator interface {
	ValidateAccessToken(token string) (*Claims, error)
}

// TokenRevocationChecker reports whether a token id was revoked by logout.
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

// Principal is the stored account behind a token subject.
type Principal struct {
	Username string
	Email    string
	RoleCode string
	Active   bool
}

// PrincipalLookup loads the account for a subject; unknown ids return
// sentinel.ErrNotFound.
type PrincipalLookup interface {
	LookupPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error)
}

// FailureRecorder counts rejected requests by reason.
type FailureRecorder interface {
	IncrementAuthFailure(reason string)
}

// Guard holds the collaborators of RequireAuth.
type Guard struct {
	Validator  TokenValidator
	Revocation TokenRevocationChecker
	Principals PrincipalLookup
	Failures   FailureRecorder
	Logger     *slog.Logger
}

func (g Guard) reject(w http.ResponseWriter, r *http.Request, reason, message string, err error) {
	ctx := r.Context()
	attrs := []any{"reason", reason, "request_id", request.GetRequestID(ctx)}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	g.Logger.WarnContext(ctx, "unauthorized access", attrs...)
	if g.Failures != nil {
		g.Failures.IncrementAuthFailure(reason)
	}
	httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, message))
}

// BearerToken extracts the token from "Authorization: Bearer <t>".
func BearerToken(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid, unrevoked token of an active
// user and stores the caller in the context.
func RequireAuth(g Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token := BearerToken(r)
			if token == "" {
				g.reject(w, r, ReasonMissing, "Token is missing", nil)
				return
			}

			claims, err := g.Validator.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, sentinel.ErrExpired) {
					g.reject(w, r, ReasonExpired, "Token has expired", err)
					return
				}
				g.reject(w, r, ReasonInvalid, "Invalid token", err)
				return
			}

			if g.Revocation != nil && claims.TokenID != "" {
				revoked, err := g.Revocation.IsTokenRevoked(ctx, claims.TokenID)
				if err != nil {
					g.Logger.ErrorContext(ctx, "failed to check token revocation",
						"error", err,
						"request_id", request.GetRequestID(ctx),
					)
					httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "revocation check failed"))
					return
				}
				if revoked {
					g.reject(w, r, ReasonRevoked, "Token has been revoked", nil)
					return
				}
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				g.reject(w, r, ReasonInvalid, "Invalid token", err)
				return
			}
			p, err := g.Principals.LookupPrincipal(ctx, userID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					g.reject(w, r, ReasonUnknownUser, "Invalid token", nil)
					return
				}
				g.Logger.ErrorContext(ctx, "failed to load token subject",
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "subject lookup failed"))
				return
			}
			if !p.Active {
				g.reject(w, r, ReasonInactive, "User account is inactive", nil)
				return
			}

			ctx = requestcontext.WithCaller(ctx, requestcontext.Caller{
				UserID:    userID,
				Username:  p.Username,
				Email:     p.Email,
				Role:      p.RoleCode,
				TokenID:   claims.TokenID,
				ExpiresAt: claims.ExpiresAt,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
