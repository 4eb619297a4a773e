package extractgateway

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"
	"github.com/stemnote/vocal-extract-be/src/server/api_token"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/api"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/auth"
	"github.com/stemnote/vocal-extract-be/src/server/internal/errors/gateway"
	extractentity "github.com/stemnote/vocal-extract-be/src/server/internal/extract/entity"
	extracterrors "github.com/stemnote/vocal-extract-be/src/server/internal/extract/errors"
	extractusecase "github.com/stemnote/vocal-extract-be/src/server/internal/extract/usecase"
	"github.com/stemnote/vocal-extract-be/src/server/internal/lib/request"
)

type Gateway struct {
	usecase   extractusecase.Usecase
	validator api_token.Validator
}

func NewGateway(usecase extractusecase.Usecase, validator api_token.Validator) Gateway {
	return Gateway{
		usecase:   usecase,
		validator: validator,
	}
}

func (g Gateway) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, extractentity.HealthResponse{
		Status:         "healthy",
		SeparatorReady: true,
	})
}

func (g Gateway) ExtractVocals(c echo.Context) error {
	ctx := request.Context(c)

	authHeader, apiErr := request.AuthHeader(c)
	if apiErr != nil {
		return gateway.ErrorResponse(c, apiErr)
	}

	if err := g.validator.ValidateHeader(authHeader); err != nil {
		err = errors.Wrap(err, "Failed to validate the API token")
		apiErr := api.CommitError(err,
			auth.InvalidTokenCode,
			"Invalid authentication token")
		return gateway.ErrorResponse(c, apiErr)
	}

	requestBody := extractentity.ExtractRequest{}
	if err := c.Bind(&requestBody); err != nil {
		err = errors.Wrap(err, "Failed to bind request body to the extract request object")
		apiErr := api.CommitError(err,
			extracterrors.BadRequestDataCode,
			"The request data received was malformed")
		return gateway.ErrorResponse(c, apiErr)
	}

	response, apiErr := g.usecase.ExtractVocals(ctx, requestBody.MP3URL)
	if apiErr != nil {
		apiErr = api.WrapError(apiErr, "Failed to extract vocals")
		return gateway.ErrorResponse(c, apiErr)
	}

	return c.JSON(http.StatusOK, response)
}
