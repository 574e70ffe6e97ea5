// Package token handles creation and validation of the bearer tokens used to
// authenticate admin requests against the server. A single shared API key
// (never stored in plaintext) is exchanged for a short-lived signed token;
// the token, not the key, accompanies every subsequent request.
package token

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/parattice/server/serr"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is the value placed in the "iss" claim of tokens minted by Generate.
const Issuer = "parattice"

// expireTime is the amount of time a generated token remains valid for.
const expireTime = 1 * time.Hour

// leeway is the amount of clock drift tolerated when checking a token's
// expiration and not-before times.
const leeway = 1 * time.Minute

// Claims is the set of JWT claims carried by tokens issued by this package.
type Claims struct {
	jwt.RegisteredClaims
}

// Authenticate checks candidateKey against the bcrypt hash of the configured
// admin API key. It returns serr.ErrBadCredentials if they do not match.
func Authenticate(candidateKey string, keyHash string) error {
	if keyHash == "" {
		return serr.New("no admin key is configured", serr.ErrBadCredentials)
	}

	err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(candidateKey))
	if err != nil {
		return serr.New("incorrect API key", serr.ErrBadCredentials)
	}
	return nil
}

// Generate creates a new signed bearer token good for expireTime, signed
// with secret using HS512.
func Generate(secret []byte) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expireTime)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Get extracts the bearer token string from the Authorization header of req.
// It does not validate the token; call Validate for that.
func Get(req *http.Request) (string, error) {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return "", serr.New("no authorization header present", serr.ErrBadCredentials)
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", serr.New("authorization header is not a bearer token", serr.ErrBadCredentials)
	}

	tokStr := strings.TrimSpace(authHeader[len(prefix):])
	if tokStr == "" {
		return "", serr.New("bearer token is empty", serr.ErrBadCredentials)
	}

	return tokStr, nil
}

// Validate parses and checks tokStr's signature, issuer, and expiration
// against secret.
func Validate(tokStr string, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(tokStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithLeeway(leeway), jwt.WithIssuer(Issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return serr.New("token has expired", serr.ErrBadCredentials)
		}
		return serr.New("token is invalid", serr.ErrBadCredentials)
	}

	if !parsed.Valid {
		return serr.New("token is invalid", serr.ErrBadCredentials)
	}

	return nil
}
