package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docmindhq/docmind-be/types"
)

// statusFor maps the shared error taxonomy onto HTTP statuses. Upstream
// failures keep their own status when it is a client error.
func statusFor(err error) int {
	var reqErr *types.RequestFailedError
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnsupportedFormat), errors.Is(err, types.ErrCorruptFile):
		return http.StatusBadRequest
	case errors.As(err, &reqErr):
		if reqErr.StatusCode >= 400 && reqErr.StatusCode < 500 {
			return reqErr.StatusCode
		}
		return http.StatusBadGateway
	}
	var optErr *types.UnsupportedModelOptionError
	if errors.As(err, &optErr) {
		return http.StatusBadRequest
	}
	var schemaErr *types.SchemaParseError
	if errors.As(err, &schemaErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func sendError(c *gin.Context, err error) {
	c.JSON(statusFor(err), types.DataResponse{
		Status:  false,
		Message: err.Error(),
	})
}

func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, types.DataResponse{
		Status: true,
		Data:   data,
	})
}
