package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
)

// Classification is total and status-driven: the decision never depends on
// message text, which the service localizes for display.

// classifyTransportError maps a failure that produced no HTTP response.
func classifyTransportError(err error) *apperrors.APIError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.KindTimeout, "request timed out")
	case errors.As(err, &netErr) && netErr.Timeout():
		return apperrors.Wrap(err, apperrors.KindTimeout, "request timed out")
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.KindUnknown, "request canceled")
	default:
		// http.Client.Do wraps everything else in *url.Error: DNS failures,
		// refused connections, TLS handshakes, resets.
		return apperrors.Wrap(err, apperrors.KindNetwork, "connection failed")
	}
}

// classifyStatus maps a non-2xx status to a classified error carrying the
// display message and the status itself.
func classifyStatus(status int, message string) *apperrors.APIError {
	var apiErr *apperrors.APIError
	switch {
	case status == http.StatusUnauthorized:
		apiErr = apperrors.AuthRequired(message)
	case status == http.StatusNotFound:
		apiErr = apperrors.NotFound(message)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		apiErr = apperrors.Validation(message)
	case status >= http.StatusInternalServerError:
		apiErr = apperrors.ServerInternal(message)
	default:
		// Includes 402: insufficient balance surfaces through the preserved
		// status, not through a kind of its own.
		apiErr = apperrors.Unknown(message)
	}
	return apiErr.WithStatus(status)
}
