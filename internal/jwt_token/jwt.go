package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"registrar/pkg/platform/sentinel"
)

// Token purposes. A token is only accepted by the validator for its purpose.
const (
	PurposeAccess        = "access"
	PurposePasswordReset = "password_reset"
)

var (
	// ErrTokenExpired wraps sentinel.ErrExpired so transport can tell an
	// expired token from a malformed one.
	ErrTokenExpired = fmt.Errorf("token has expired: %w", sentinel.ErrExpired)
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the JWT claims of both token kinds.
type Claims struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// IssuedToken is a signed token and the facts callers need about it.
type IssuedToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	now        func() time.Time
}

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock overrides time.Now for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewJWTService(signingKey string, issuer string, opts ...Option) *JWTService {
	s := &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateAccessToken issues a bearer token for userID carrying its role code.
func (s *JWTService) GenerateAccessToken(userID uuid.UUID, roleCode string, expiresIn time.Duration) (*IssuedToken, error) {
	return s.generate(userID, roleCode, PurposeAccess, expiresIn)
}

// GenerateResetToken issues a password-reset token for userID.
func (s *JWTService) GenerateResetToken(userID uuid.UUID, expiresIn time.Duration) (*IssuedToken, error) {
	return s.generate(userID, "", PurposePasswordReset, expiresIn)
}

func (s *JWTService) generate(userID uuid.UUID, roleCode, purpose string, expiresIn time.Duration) (*IssuedToken, error) {
	now := s.now()
	expiresAt := now.Add(expiresIn)
	jti := uuid.NewString()
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:  userID.String(),
		Role:    roleCode,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        jti,
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &IssuedToken{Token: signedToken, ID: jti, ExpiresAt: expiresAt}, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (s *JWTService) ParseAccessToken(tokenString string) (*Claims, error) {
	return s.parse(tokenString, PurposeAccess)
}

// ValidateResetToken validates a password-reset token and returns its subject.
func (s *JWTService) ValidateResetToken(tokenString string) (uuid.UUID, error) {
	claims, err := s.parse(tokenString, PurposePasswordReset)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(claims.UserID)
}

func (s *JWTService) parse(tokenString, purpose string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Purpose != purpose {
		return nil, fmt.Errorf("%w: purpose %q", ErrTokenInvalid, claims.Purpose)
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, fmt.Errorf("%w: subject", ErrTokenInvalid)
	}
	return claims, nil
}
