package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the JWT payload for access tokens issued by the
// identity service. This API only consumes them; it never issues tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	ClassID  string   `json:"class_id,omitempty"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}

// Viewer is the authenticated actor requesting a schedule view, built per
// request from the token claims.
type Viewer struct {
	Role    UserRole `json:"role"`
	UserID  string   `json:"user_id"`
	ClassID string   `json:"class_id,omitempty"`
}

// ViewerFromClaims constructs a Viewer from validated token claims.
func ViewerFromClaims(claims *JWTClaims) Viewer {
	if claims == nil {
		return Viewer{}
	}
	return Viewer{
		Role:    claims.Role,
		UserID:  claims.UserID,
		ClassID: claims.ClassID,
	}
}
