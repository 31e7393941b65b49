package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/apiclient"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/media/sniffer"
	"github.com/Arohance-KV/RoopJewelersAdmin/internal/store"
)

// fail answers a failed intent. state is the store snapshot after the
// failure, so the UI can render the recorded error next to the data it kept.
func fail(c *gin.Context, err error, state any) {
	status, code := classify(err)
	_ = c.Error(err)

	body := gin.H{
		"error":   code,
		"message": apiclient.Message(err, apiclient.DefaultMessage),
	}
	if state != nil {
		body["state"] = state
	}
	c.JSON(status, body)
}

func classify(err error) (int, string) {
	var (
		validation *sniffer.ValidationError
		apiErr     *apiclient.APIError
		transport  *apiclient.TransportError
	)
	switch {
	case errors.As(err, &validation), errors.Is(err, store.ErrTooManyImages):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, apiclient.ErrSessionExpired):
		return http.StatusUnauthorized, "session_expired"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			return apiErr.StatusCode, "upstream_rejected"
		}
		return http.StatusBadGateway, "upstream_error"
	case errors.As(err, &transport):
		return http.StatusBadGateway, "upstream_unavailable"
	case errors.Is(err, store.ErrMissingToken):
		return http.StatusBadGateway, "upstream_error"
	}
	return http.StatusInternalServerError, "internal_server_error"
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
}

func respond(c *gin.Context, state any) {
	c.JSON(http.StatusOK, gin.H{"state": state})
}
