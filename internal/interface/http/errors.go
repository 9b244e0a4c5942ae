package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/application"
	"github.com/Lucas-Nascimentto/projeto-fan/pkg/response"
)

// respondError classifies a core failure once, at the boundary, and
// writes the envelope. Unclassified storage errors surface as 500
// without leaking their message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrForbidden):
		response.Error[any](c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, application.ErrAlreadyDecided):
		response.Error[any](c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, application.ErrStorage):
		response.Error[any](c, http.StatusBadGateway, "photo upload failed", nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
