package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-match/internal/apperror"
)

type errorResponse struct {
	Error string `json:"error"`
}

// sendError - answers with the status and message that belong to the error kind.
func sendError(c echo.Context, err error) error {
	return c.JSON(apperror.HTTPStatus(err), errorResponse{Error: apperror.Message(err)})
}

// bind - decodes the request body, reporting malformed JSON as a validation error.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperror.ErrInvalidJSON
	}

	return nil
}
