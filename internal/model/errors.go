package model

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload matches every PayloadError via errors.Is.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// PayloadError reports a webhook body that could not be turned into a canonical record.
type PayloadError struct {
	Source WebhookSource
	Field  string // JSON path of the missing or invalid field, empty for decode failures
	Err    error
}

func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s webhook: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s webhook: %s: %v", e.Source, e.Field, e.Err)
}

func (e *PayloadError) Unwrap() error { return e.Err }

func (e *PayloadError) Is(target error) bool { return target == ErrMalformedPayload }

// ErrFieldMissing is wrapped by PayloadError when a required field is absent.
var ErrFieldMissing = errors.New("required field missing")
