// Package identity resolves the calling user from the bearer token minted
// by the external identity provider. The provider owns credentials,
// password resets and profile data; this package only verifies the token
// signature and extracts the stable user id from the subject claim.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("identity: invalid token")
	ErrExpiredToken = errors.New("identity: token expired")
)

// Claims is the subset of the identity provider's token we care about.
type Claims struct {
	Subject string // stable user id
	Email   string
	Name    string
}

// Verifier turns a raw bearer token into verified Claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256Verifier verifies tokens signed with a shared HMAC secret. The
// secret is provisioned to both the identity provider and this service.
type HS256Verifier struct {
	Secret []byte
	Issuer string // optional; enforced when non-empty
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.Issuer))
	}

	var mc jwt.MapClaims
	token, err := jwt.ParseWithClaims(raw, &mc, func(t *jwt.Token) (any, error) {
		return v.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return Claims{
		Subject: sub,
		Email:   stringClaim(mc, "email"),
		Name:    stringClaim(mc, "name"),
	}, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	if v, ok := mc[key].(string); ok {
		return v
	}
	return ""
}
