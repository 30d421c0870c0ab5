package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate         = errors.New("invalid_date")
	ErrAgeOutOfRange       = errors.New("age_out_of_range")
	ErrMissingReferenceData = errors.New("missing_reference_data")
)

// MissingReferenceDataError identifies which lookup record was absent so the
// caller can tell a request problem from a data-configuration problem.
type MissingReferenceDataError struct {
	Resource string
	Code     string
}

func (e *MissingReferenceDataError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("%s: %s", ErrMissingReferenceData, e.Resource)
	}
	return fmt.Sprintf("%s: %s %q", ErrMissingReferenceData, e.Resource, e.Code)
}

func (e *MissingReferenceDataError) Unwrap() error { return ErrMissingReferenceData }

func NewMissingReferenceDataError(resource, code string) error {
	return &MissingReferenceDataError{Resource: resource, Code: code}
}
