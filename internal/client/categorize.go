package client

import (
	"context"
	"errors"
	"net"
	"strings"
)

// ErrorCategory is a stable label for transport error classification in metrics.
type ErrorCategory string

// Error category constants used as the weatherApiErrorsTotal label.
const (
	ErrorCategoryTimeout  ErrorCategory = "timeout"
	ErrorCategoryCanceled ErrorCategory = "canceled"
	ErrorCategoryDNS      ErrorCategory = "dns"
	ErrorCategoryNetwork  ErrorCategory = "network"
	ErrorCategoryUnknown  ErrorCategory = "unknown"
)

// CategorizeError maps a transport error to a stable ErrorCategory for metrics.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCategoryCanceled
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ErrorCategoryDNS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorCategoryTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrorCategoryNetwork
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection") || strings.Contains(errStr, "EOF") {
		return ErrorCategoryNetwork
	}

	return ErrorCategoryUnknown
}
