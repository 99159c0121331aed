package errors

import (
	"context"
	"errors"
	"net"
)

// MapTransportError maps errors returned by the HTTP transport to AppError instances.
// It handles:
// - Context timeouts/cancellations → Timeout/Canceled
// - net.Error timeouts (client-level deadline) → Timeout
// - Anything else (DNS, dial, TLS, unexpected EOF) → Transport
//
// The original error is always kept as the cause so callers can still unwrap it.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}

	return &AppError{
		Code:    ErrCodeTransport,
		Message: "admin API unreachable",
		Cause:   err,
	}
}

// IsAppError reports whether err is an AppError carrying code.
func IsAppError(err error, code ErrorCode) bool {
	return isCode(err, code)
}
