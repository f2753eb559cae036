package errors

import "errors"

var (
	ErrFetch             = errors.New("fetch orders failed")
	ErrEncoding          = errors.New("event is not encodable")
	ErrDelivery          = errors.New("event delivery failed")
	ErrUnsuccessfulTrack = errors.New("sink reported unsuccessful track")
	ErrInvalidOrder      = errors.New("order is missing required fields")
	ErrNotQualifying     = errors.New("order financial status is not qualifying")
	ErrResultNotFound    = errors.New("delivery result not found")
)
