package scorecard

import "errors"

var (
	ErrScopeResolution = errors.New("scope resolution failed")
	ErrInvalidScope    = errors.New("invalid scope")
)
