package services

import (
	"errors"
	"fmt"
)

// Callers match these with errors.Is; every returned error wraps at most one.
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrComputerNotFound = fmt.Errorf("computer %w", ErrNotFound)
	ErrPriceNotFound    = fmt.Errorf("active price %w", ErrNotFound)
	ErrAdminNotFound    = fmt.Errorf("admin %w", ErrNotFound)
)
