// Package dto holds the JSON shapes served by the ECN APIs.
package dto

import (
	"time"

	"github.com/ecnlab/ecn/pkg/constants"
	"github.com/ecnlab/ecn/pkg/errors"
)

// MessageResponse is the payload of the root routes.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewErrorResponse maps err to its status and body. Errors outside the
// application taxonomy get a generic message so internals never leak.
func NewErrorResponse(err error) (int, *ErrorResponse) {
	if appErr, ok := errors.AsAppError(err); ok {
		return errors.HTTPStatus(appErr), &ErrorResponse{Error: appErr.Message, Code: string(appErr.Code)}
	}
	return errors.ErrInternal.HTTPStatus, &ErrorResponse{
		Error: errors.ErrInternal.Message,
		Code:  string(errors.ErrInternal.Code),
	}
}

// FormatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SSZ, or nil when absent.
func FormatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(constants.TimestampLayout)
	return &s
}
