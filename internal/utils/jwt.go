package utils

import (
	"time" // Time for token expiration

	"foodcourt/internal/config" // Token settings
	"foodcourt/internal/domain" // Role type

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Unique token id (jti)
)

// TokenValidity is the fixed lifetime of issued tokens
const TokenValidity = 3 * time.Hour

// Claims carried by every issued token
type Claims struct {
	Username             string      `json:"username"` // Account username
	Role                 domain.Role `json:"role"`     // Account role
	jwt.RegisteredClaims             // Standard JWT claims (jti, iss, aud, iat, exp)
}

// GenerateJWT issues a signed HS256 token for the given account. Tokens
// are stateless: nothing is recorded server-side.
func GenerateJWT(username string, role domain.Role, cfg *config.Config) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenValidity)
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),             // Unique token id
			Issuer:    cfg.JWTIssuer,                // Configured issuer
			Audience:  jwt.ClaimStrings{cfg.JWTAudience}, // Configured audience
			ExpiresAt: jwt.NewNumericDate(expiresAt), // Fixed 3 hour validity
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(cfg.JWTSecret))   // Sign with the symmetric secret
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT parses and validates a token string. It rejects on signature
// mismatch, expiry, malformed structure, or wrong issuer/audience.
func ParseJWT(tokenStr string, cfg *config.Config) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.JWTIssuer),
		jwt.WithAudience(cfg.JWTAudience),
	)
	if err != nil {
		return nil, err // Signature, expiry or structure error
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
