package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	cfgpkg "github.com/homedeco/marketplace/pkg/config"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Claims is the token payload the verifier accepts. The email claim is the
// caller's identity; nothing else in the token is trusted.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTVerifier resolves an opaque bearer credential to a verified email.
// It implements the identity check of the authorization gate; credential
// issuance lives outside this service.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(cfg *cfgpkg.Config) *JWTVerifier {
	return &JWTVerifier{secret: []byte(cfg.Auth.JWTSecret)}
}

func (v *JWTVerifier) Verify(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", ErrInvalidCredential
	}
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCredential, err.Error())
	}
	if !tkn.Valid || claims.Email == "" {
		return "", ErrInvalidCredential
	}
	return claims.Email, nil
}
