package auth

import (
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/api"
)

const (
	InvalidTokenCode           = api.ErrorCode("invalid_token")
	BadAuthorizationHeaderCode = api.ErrorCode("bad_header")
)
