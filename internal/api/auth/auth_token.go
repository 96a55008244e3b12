package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kitchenbuddy/kitchenbuddy/config"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

// IssueToken mints a signed session token for the given subject and role.
// Claims: sub (username), role, jti (random per token), iat, exp
// (iat + TokenTTL), iss, aud. Signing is HS256 only.
func IssueToken(username, role string, jwtCfg config.JWTConfig) (string, error) {
	if jwtCfg.SecretKey == "" {
		return "", errors.New("jwt secret key is not configured")
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtCfg.TokenTTL)),
			Issuer:    jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{jwtCfg.Audience},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token. It rejects tokens with
// an invalid signature, any signing method other than HMAC (no downgrade,
// no "none"), a mismatched issuer or audience, or an expiry in the past.
func ValidateToken(tokenString string, jwtCfg config.JWTConfig) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtCfg.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrUnauthenticated, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", api.ErrUnauthenticated)
	}

	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, fmt.Errorf("%w: token has expired", api.ErrUnauthenticated)
	}
	if claims.Issuer != jwtCfg.Issuer {
		return nil, fmt.Errorf("%w: invalid token issuer", api.ErrUnauthenticated)
	}
	if !api.VerifyAudience(claims.Audience, jwtCfg.Audience) {
		return nil, fmt.Errorf("%w: invalid token audience", api.ErrUnauthenticated)
	}

	return claims, nil
}
