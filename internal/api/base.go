// Package api exposes the workflow over HTTP, mirroring the shapes the
// frontend consumes.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/draftdesk/draftdesk/internal/auth"
)

// ErrorResponse carries a failure detail to the caller.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Action string `json:"action,omitempty"`
}

func httpBadRequest(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// serviceError maps a workflow failure onto the HTTP surface: a missing or
// revoked credential asks the caller to re-authenticate, anything else is a
// plain provider failure.
func serviceError(c echo.Context, err error) error {
	if errors.Is(err, auth.ErrAuthRequired) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{
			Detail: err.Error(),
			Action: "re-authenticate",
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}
