// Package tabauth handles API key provisioning and JWT issuance/validation
// for the tableau daemon.
package tabauth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/tableau/internal/tqerr"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// APIKey is a single provisioned API key, stored only as a bcrypt hash. The
// plaintext secret is returned to the operator exactly once, at provision
// time, and never persisted.
type APIKey struct {
	Name string // human-readable label for the key, e.g. an owning team
	Hash string // base64-encoded bcrypt hash of the key's secret
}

// Provision generates a new random API key secret and returns the APIKey
// record (hash only) to persist alongside the plaintext secret to hand back
// to the caller exactly once.
func Provision(name string) (key APIKey, plaintext string, err error) {
	secret, err := randomSecret(32)
	if err != nil {
		return APIKey{}, "", fmt.Errorf("generate secret: %w", err)
	}

	hash, err := hashSecret(secret)
	if err != nil {
		return APIKey{}, "", err
	}

	return APIKey{Name: name, Hash: hash}, secret, nil
}

func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), 14)
	if err != nil {
		if err == bcrypt.ErrPasswordTooLong {
			return "", tqerr.New("API key secret is too long", err, tqerr.ErrBadArgument)
		}
		return "", tqerr.New("API key secret could not be hashed", err)
	}
	return base64.StdEncoding.EncodeToString(hash), nil
}

// Authenticate checks secret against every provisioned key and returns the
// matching APIKey's Name. Returns tqerr.ErrBadCredentials if no key matches.
func Authenticate(keys []APIKey, secret string) (string, error) {
	for _, k := range keys {
		hash, err := base64.StdEncoding.DecodeString(k.Hash)
		if err != nil {
			continue
		}
		if bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil {
			return k.Name, nil
		}
	}
	return "", tqerr.ErrBadCredentials
}

const issuer = "tableaud"

// IssueToken generates a short-lived HS512 JWT for the given API key name,
// signed with secret. There is no per-user password to fold into the
// signing key here, so the configured daemon secret alone signs the token.
func IssueToken(secret []byte, keyName string, ttl time.Duration) (token string, expires time.Time, err error) {
	expires = time.Now().Add(ttl)
	claims := &jwt.MapClaims{
		"iss": issuer,
		"sub": keyName,
		"exp": expires.Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)

	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken parses and verifies tok, returning the API key name it was
// issued for.
func ValidateToken(secret []byte, tok string) (keyName string, err error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))
	if err != nil {
		return "", tqerr.New("token is invalid", err, tqerr.ErrBadCredentials)
	}

	subj, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", tqerr.New("token has no subject", err, tqerr.ErrBadCredentials)
	}

	return subj, nil
}

func randomSecret(n int) (string, error) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
