package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil", nil, ""},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), ErrorCategoryTimeout},
		{"canceled", context.Canceled, ErrorCategoryCanceled},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.invalid"}, ErrorCategoryDNS},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ErrorCategoryNetwork},
		{"reset text", errors.New("read: connection reset by peer"), ErrorCategoryNetwork},
		{"unexpected EOF", errors.New("unexpected EOF"), ErrorCategoryNetwork},
		{"other", errors.New("boom"), ErrorCategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.err); got != tt.want {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
