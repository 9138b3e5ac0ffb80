package repository

import (
	"fmt"

	"address-geocoder/internal/models"
)

// StoreError reports a failed reference-store lookup.
type StoreError struct {
	Op    string
	Scope models.Scope
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("repository: %s %s/%s/%s: %v", e.Op, e.Scope.Prefecture, e.Scope.City, e.Scope.Town, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, scope models.Scope, err error) error {
	return &StoreError{Op: op, Scope: scope, Err: err}
}
