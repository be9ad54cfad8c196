package exceptions

import (
	"errors"
	"fmt"
	"roombook-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Kind          string     `json:"kind,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

// BuildNewCustomError carries the locations of a wrapped CustomError forward,
// so the response log shows the whole path the error travelled.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	locations := []Location{}

	var existing *CustomError
	if errors.As(err, &existing) {
		locations = append(locations, existing.Locations...)
	}
	locations = append(locations, getLocation(3))

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, devMessageOf(err))
	}

	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kindFromStatus(statusCode),
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
	}
}

func devMessageOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.DevMessage
	}
	return err.Error()
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kindFromStatus(statusCode),
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

func WrapWithError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		Kind:          kindFromStatus(statusCode),
		ClientMessage: clientMessage,
		DevMessage:    fmt.Sprintf("%s: %s", devMessage, err.Error()),
		Locations:     []Location{getLocation(2)},
	}
}

// KindOf reports the error kind of err, or ErrKindInternal for foreign errors.
func KindOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.Kind != "" {
		return customErr.Kind
	}
	return constvars.ErrKindInternal
}

func IsValidationError(err error) bool {
	return KindOf(err) == constvars.ErrKindValidation
}

func IsAuthError(err error) bool {
	return KindOf(err) == constvars.ErrKindAuth
}

func IsWriteError(err error) bool {
	return KindOf(err) == constvars.ErrKindWrite
}

func kindFromStatus(statusCode int) string {
	switch statusCode {
	case constvars.StatusBadRequest, constvars.StatusConflict, constvars.StatusForbidden, constvars.StatusNotFound:
		return constvars.ErrKindValidation
	case constvars.StatusUnauthorized:
		return constvars.ErrKindAuth
	case constvars.StatusBadGateway:
		return constvars.ErrKindWrite
	default:
		return constvars.ErrKindInternal
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
