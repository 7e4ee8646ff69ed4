package contract

import "errors"

var (
	ErrOracleInvoke       = errors.New("oracle invoke failed")
	ErrSchemaViolation    = errors.New("oracle response violates schema")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrInvalidMessage     = errors.New("message is empty")
	ErrNilSession         = errors.New("session is nil")
)
