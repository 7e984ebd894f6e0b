package reliability

import (
	"context"
	"errors"
	"net"
)

// IsRetryableHTTPStatus classifies retryable HTTP status codes.
func IsRetryableHTTPStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

// ClassifyHTTPStatus maps an upstream HTTP status to a short error code
// suitable for metric labels.
func ClassifyHTTPStatus(code int) string {
	switch {
	case code == 401 || code == 403:
		return "auth"
	case code == 404:
		return "not_found"
	case code == 408:
		return "timeout"
	case code == 429:
		return "rate_limited"
	case code >= 500:
		return "upstream_5xx"
	case code >= 400:
		return "bad_request"
	default:
		return "unknown"
	}
}

// ClassifyTransportError labels errors that happened before an HTTP status
// was received.
func ClassifyTransportError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "timeout"
		}
		return "network"
	}
	return "unknown"
}

// IsRetryableCode reports whether a classified failure is worth retrying.
func IsRetryableCode(code string) bool {
	switch code {
	case "timeout", "network", "rate_limited", "upstream_5xx":
		return true
	default:
		return false
	}
}
