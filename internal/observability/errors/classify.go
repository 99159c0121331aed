package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// Classify returns a normalized error class suitable for tagging metrics and logs.
// AppErrors are classified by their code; anything else by the innermost concrete type
// (e.g. "net_operror"), converted to snake_case-ish.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if code := apperrors.GetCode(err); code != "" {
		if cause := goerrors.Unwrap(err); cause != nil && code == apperrors.ErrCodeTransport {
			return string(code) + "." + typeName(cause)
		}
		return string(code)
	}
	return typeName(err)
}

func typeName(err error) string {
	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
