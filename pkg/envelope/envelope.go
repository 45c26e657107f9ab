// Package envelope builds the uniform JSON response wrapper used by every
// Veridian API surface.
package envelope

import (
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Metadata carries response bookkeeping. The pagination fields are only set
// when the wrapped data is a list.
type Metadata struct {
	Version      string `json:"version"`
	APIVersion   string `json:"api_version"`
	RequestID    string `json:"request_id"`
	ResponseTime string `json:"response_time,omitempty"`
	Count        *int   `json:"count,omitempty"`
	HasMore      *bool  `json:"has_more,omitempty"`
	Page         *int   `json:"page,omitempty"`
	PerPage      *int   `json:"per_page,omitempty"`
}

// ErrorDetail describes a failed request. It is present exactly when the
// status code is 400 or above.
type ErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// Envelope is the wire shape of every response.
type Envelope struct {
	Success    bool         `json:"success"`
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message"`
	Timestamp  string       `json:"timestamp"`
	Data       any          `json:"data"`
	Metadata   Metadata     `json:"metadata"`
	Error      *ErrorDetail `json:"error,omitempty"`
}

// New wraps data in an envelope for the given status code. Success is
// derived from the status code, never set independently.
func New(statusCode int, message string, data any) Envelope {
	env := Envelope{
		Success:    statusCode < 400,
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Data:       data,
		Metadata: Metadata{
			Version:    "1.0",
			APIVersion: "v1",
			RequestID:  "req_" + uuid.NewString(),
		},
	}

	if data != nil {
		if rv := reflect.ValueOf(data); rv.Kind() == reflect.Slice {
			count := rv.Len()
			hasMore := false
			page := 1
			perPage := count
			env.Metadata.Count = &count
			env.Metadata.HasMore = &hasMore
			env.Metadata.Page = &page
			env.Metadata.PerPage = &perPage
		}
	}

	if statusCode >= 400 {
		env.Error = &ErrorDetail{Code: statusCode, Message: message}
	}

	return env
}

// WithResponseTime records the measured handling duration, formatted in
// seconds to match the envelope contract.
func (e Envelope) WithResponseTime(d time.Duration) Envelope {
	e.Metadata.ResponseTime = formatSeconds(d)
	return e
}

// WithErrorDetails attaches structured details to the error block. It is a
// no-op for success envelopes.
func (e Envelope) WithErrorDetails(details any) Envelope {
	if e.Error != nil {
		detail := *e.Error
		detail.Details = details
		e.Error = &detail
	}
	return e
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64) + "s"
}
