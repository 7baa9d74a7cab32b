package jwttoken

import (
	authmw "registrar/pkg/platform/middleware/auth"
)

func ToMiddlewareClaims(claims *Claims) *authmw.Claims {
	mc := &authmw.Claims{
		UserID:  claims.UserID,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		mc.ExpiresAt = claims.ExpiresAt.Time
	}
	return mc
}

// ValidateAccessToken satisfies the auth middleware's TokenValidator.
func (s *JWTService) ValidateAccessToken(tokenString string) (*authmw.Claims, error) {
	claims, err := s.ParseAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return ToMiddlewareClaims(claims), nil
}
