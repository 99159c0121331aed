package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeRequestFailed,
				Message: "title is required",
			},
			want: "title is required",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeTransport,
				Message: "admin API unreachable",
				Cause:   errors.New("connection refused"),
			},
			want: "admin API unreachable: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{
		Code:    ErrCodeInternal,
		Message: "wrapped error",
		Cause:   cause,
	}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestUnauthorized(t *testing.T) {
	err := Unauthorized()
	if err.Code != ErrCodeUnauthorized {
		t.Errorf("Unauthorized().Code = %v, want %v", err.Code, ErrCodeUnauthorized)
	}
	if err.Error() != "Unauthorized" {
		t.Errorf("Unauthorized().Error() = %v, want Unauthorized", err.Error())
	}
	if err.Status != http.StatusUnauthorized {
		t.Errorf("Unauthorized().Status = %v, want 401", err.Status)
	}
}

func TestRequestFailed(t *testing.T) {
	err := RequestFailed(http.StatusBadRequest, "title is required")
	if err.Code != ErrCodeRequestFailed {
		t.Errorf("RequestFailed().Code = %v, want %v", err.Code, ErrCodeRequestFailed)
	}
	if err.Message != "title is required" {
		t.Errorf("RequestFailed().Message = %v, want %v", err.Message, "title is required")
	}
	if GetStatus(err) != http.StatusBadRequest {
		t.Errorf("GetStatus() = %v, want 400", GetStatus(err))
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("title", "title is required")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "title" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "title")
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrapf(cause, ErrCodeInternal, "persist %s", "admin_token")
	if err.Message != "persist admin_token" {
		t.Errorf("Wrapf().Message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Wrapf() does not unwrap to cause")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "nothing"); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestPredicates(t *testing.T) {
	wrappedUnauthorized := fmt.Errorf("list contests: %w", Unauthorized())

	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"unauthorized direct", IsUnauthorized, Unauthorized(), true},
		{"unauthorized wrapped", IsUnauthorized, wrappedUnauthorized, true},
		{"unauthorized vs failed", IsUnauthorized, RequestFailed(500, "oops"), false},
		{"request failed", IsRequestFailed, RequestFailed(500, "oops"), true},
		{"request failed plain error", IsRequestFailed, errors.New("oops"), false},
		{"validation", IsValidation, Validation("bad"), true},
		{"internal", IsInternal, Internalf("x %d", 1), true},
		{"transport", IsTransport, Wrap(errors.New("eof"), ErrCodeTransport, "x"), true},
		{"timeout", IsTimeout, &AppError{Code: ErrCodeTimeout}, true},
		{"canceled", IsCanceled, &AppError{Code: ErrCodeCanceled}, true},
		{"nil", IsUnauthorized, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(RequestFailed(502, "bad gateway")); got != ErrCodeRequestFailed {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeRequestFailed)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestGetField(t *testing.T) {
	if got := GetField(ValidationField("rankEnd", "must be >= rankStart")); got != "rankEnd" {
		t.Errorf("GetField() = %v, want rankEnd", got)
	}
	if got := GetField(errors.New("plain")); got != "" {
		t.Errorf("GetField(plain) = %v, want empty", got)
	}
}
