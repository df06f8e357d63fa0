package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const issuerName = "mixlist"

// ErrInvalidToken covers tokens with a bad signature, wrong signing method,
// or a missing subject claim.
var ErrInvalidToken = errors.New("token: invalid")

// Issue signs a bearer token binding the account id as the subject claim.
// Tokens carry no expiry; they stay valid until the signing secret rotates.
func Issue(accountID, secret string) (string, error) {
	claims := jwtlib.RegisteredClaims{
		Issuer:   issuerName,
		Subject:  accountID,
		IssuedAt: jwtlib.NewNumericDate(time.Now()),
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString([]byte(secret))
}

// Parse verifies the signature against secret and returns the subject
// account id. Anything unsigned, tampered with, or signed by a different
// secret yields ErrInvalidToken.
func Parse(raw, secret string) (string, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, &jwtlib.RegisteredClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}))
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwtlib.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
