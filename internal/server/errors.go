package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/fr4nk3nst1ner/salaryscenes/internal/navigation"
)

// HTTPStatus maps an error to the HTTP status code it should produce
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, navigation.ErrNotReady), errors.Is(err, errStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, navigation.ErrSelectorHidden):
		return http.StatusConflict
	case errors.Is(err, navigation.ErrUnknownJob):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
