package errors

import (
	"encoding/json"
	"fmt"
)

// ErrValidation is returned when client-supplied input fails a precondition
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUpstream is returned when Shopify responded with a non-success status.
// The original status code and error body are kept so handlers can relay
// them unchanged to the caller.
type ErrUpstream struct {
	StatusCode int
	Body       json.RawMessage
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("shopify returned %d: %s", e.StatusCode, string(e.Body))
}

// ErrUnreachable is returned when the request was sent but no response arrived
type ErrUnreachable struct {
	Err error
}

func (e *ErrUnreachable) Error() string {
	return fmt.Sprintf("no response from shopify: %v", e.Err)
}

func (e *ErrUnreachable) Unwrap() error {
	return e.Err
}

// ErrRequestSetup is returned when the outbound request could not be built
// or dispatched at all
type ErrRequestSetup struct {
	Err error
}

func (e *ErrRequestSetup) Error() string {
	return fmt.Sprintf("request setup failed: %v", e.Err)
}

func (e *ErrRequestSetup) Unwrap() error {
	return e.Err
}

// ErrEmptyCollection is returned when the collection has no products to aggregate
type ErrEmptyCollection struct {
	CollectionID string
}

func (e *ErrEmptyCollection) Error() string {
	return fmt.Sprintf("no products found in collection %s", e.CollectionID)
}
