// Package rest response bodies shared by handlers and middlewares
package rest

import (
	"net/http"

	"github.com/pot-code/coursehub/internal/infrastructure/validate"
)

// RESTStandardError response error
type RESTStandardError struct {
	Type    string            `json:"type,omitempty"`
	Code    int               `json:"code"`
	Title   string            `json:"title"`
	Detail  string            `json:"detail,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
}

// NewRESTStandardError title is derived from code
func NewRESTStandardError(code int, detail string) *RESTStandardError {
	return &RESTStandardError{
		Code:   code,
		Title:  http.StatusText(code),
		Detail: detail,
	}
}

func (re RESTStandardError) Error() string {
	return re.Detail
}

// SetTraceID returns a copy carrying traceID
func (re RESTStandardError) SetTraceID(traceID string) RESTStandardError {
	re.TraceID = traceID
	return re
}

// WithLink returns a copy with an extra named link
func (re RESTStandardError) WithLink(name, href string) RESTStandardError {
	links := make(map[string]string, len(re.Links)+1)
	for k, v := range re.Links {
		links[k] = v
	}
	links[name] = href
	re.Links = links
	return re
}

// RESTValidationError standard validation error
type RESTValidationError struct {
	RESTStandardError
	InvalidParams []*validate.FieldError `json:"invalid_params"`
}

// NewRESTValidationError .
func NewRESTValidationError(code int, detail string, internal []*validate.FieldError) *RESTValidationError {
	return &RESTValidationError{
		RESTStandardError: RESTStandardError{
			Code:   code,
			Title:  http.StatusText(code),
			Detail: detail,
		},
		InvalidParams: internal,
	}
}

func (rve RESTValidationError) Error() string {
	return rve.Detail
}

// SetTraceID returns a copy carrying traceID
func (rve RESTValidationError) SetTraceID(traceID string) RESTValidationError {
	rve.RESTStandardError.TraceID = traceID
	return rve
}
