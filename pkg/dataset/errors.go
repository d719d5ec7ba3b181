package dataset

import (
	"fmt"

	"github.com/pchampin/quadbridge/pkg/convert"
)

// MutationError unifies the two ways a write can fail: the requested
// quad cannot be represented in the native model, or the backend
// rejected the write.
type MutationError struct {
	// Conversion is set when a term failed to convert.
	Conversion *convert.ConversionError
	// Backend is set when the backend write failed.
	Backend error
}

func (e *MutationError) Error() string {
	if e.Conversion != nil {
		return fmt.Sprintf("conversion: %s", e.Conversion.Error())
	}
	return e.Backend.Error()
}

func (e *MutationError) Unwrap() error {
	if e.Conversion != nil {
		return e.Conversion
	}
	return e.Backend
}

func conversionError(err error) error {
	if cerr, ok := err.(*convert.ConversionError); ok {
		return &MutationError{Conversion: cerr}
	}
	return &MutationError{Backend: err}
}

func backendError(err error) error {
	if err == nil {
		return nil
	}
	return &MutationError{Backend: err}
}
