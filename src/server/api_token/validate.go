package api_token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/stemnote/vocal-extract-be/src/shared/lib/errors/mark"
)

type Validator interface {
	ValidateHeader(authHeader string) error
}

var (
	InvalidTokenMark = errors.New("invalid_token")
	BadHeaderMark    = errors.New("bad_header")
)

var _ Validator = StaticValidator{}

// StaticValidator checks bearer tokens against one shared secret
type StaticValidator struct {
	Token string
}

func (s StaticValidator) ValidateHeader(authHeader string) error {
	token, err := ParseBearerHeader(authHeader)
	if err != nil {
		return mark.Wrap(err, BadHeaderMark, "The authorization header is not a bearer token")
	}

	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		return mark.Message(InvalidTokenMark, "The token does not match the configured API token")
	}

	return nil
}

func ParseBearerHeader(authHeader string) (string, error) {
	const bearerPrefix = "Bearer "

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("The authorization header doesn't start with Bearer")
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", errors.New("The authorization header carries an empty token")
	}

	return token, nil
}

// GenerateToken makes a fresh URL safe API token
func GenerateToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", errors.Wrap(err, "Failed to read random bytes for the token")
	}

	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
