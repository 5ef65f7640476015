package vaultstore

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/hashicorp/vault/api"
)

// verdict is the classification of a failed store round trip. It decides
// whether the accessor surfaces a typed error or re-authenticates and
// retries once.
type verdict int

const (
	// verdictDeniedFatal surfaces the original error unwrapped.
	verdictDeniedFatal verdict = iota
	// verdictNotFound maps to NotFoundError.
	verdictNotFound
	// verdictUnavailable maps to UnavailableError.
	verdictUnavailable
	// verdictDeniedTransient triggers one re-authenticate-and-retry cycle.
	// Permission denied is treated as a stale session token rather than a
	// genuine authorization failure; in this deployment model tokens expire
	// far more often than policies change.
	verdictDeniedTransient
)

// classify maps a raw backend failure to a verdict. Status codes from the
// store client are authoritative; message matching is only a fallback for
// errors that arrive wrapped by the transport.
func classify(err error) verdict {
	var respErr *api.ResponseError
	if errors.As(err, &respErr) {
		switch respErr.StatusCode {
		case http.StatusNotFound:
			return verdictNotFound
		case http.StatusForbidden:
			return verdictDeniedTransient
		}
		return verdictDeniedFatal
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return verdictUnavailable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return verdictUnavailable
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "i/o timeout"),
		strings.Contains(msg, "timeout"):
		return verdictUnavailable
	case strings.Contains(msg, "status 404"),
		strings.Contains(msg, "not found"):
		return verdictNotFound
	case strings.Contains(msg, "permission denied"):
		return verdictDeniedTransient
	}

	return verdictDeniedFatal
}
