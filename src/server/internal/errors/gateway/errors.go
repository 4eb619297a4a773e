package gateway

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/stemnote/vocal-extract-be/src/server/api_error"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/api"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/auth"
	extracterrors "github.com/stemnote/vocal-extract-be/src/server/internal/extract/errors"
)

var httpStatusCodeMap = map[api.ErrorCode]int{
	api.DefaultErrorCode:               http.StatusInternalServerError,
	auth.InvalidTokenCode:              http.StatusUnauthorized,
	auth.BadAuthorizationHeaderCode:    http.StatusUnauthorized,
	extracterrors.BadRequestDataCode:   http.StatusBadRequest,
	extracterrors.DownloadFailedCode:   http.StatusBadRequest,
	extracterrors.SeparationFailedCode: http.StatusInternalServerError,
	extracterrors.EncodingFailedCode:   http.StatusInternalServerError,
	extracterrors.UploadFailedCode:     http.StatusInternalServerError,
}

func ErrorResponse(c echo.Context, err *api.Error) error {
	statusCode, ok := httpStatusCodeMap[err.ErrorCode]
	if !ok {
		msg := fmt.Sprintf("Error code %s has no HTTP status code mapping", err.ErrorCode)
		panic(msg)
	}

	return c.JSON(statusCode, api_error.JSONAPIError{
		Code:         string(err.ErrorCode),
		Msg:          err.UserMessage,
		ErrorDetails: err.Error(),
	})
}
