package errors

import stderrors "errors"

// Is is errors.Is from the standard library, re-exported so callers need
// only one errors import.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As is errors.As from the standard library.
func As(err error, target any) bool { return stderrors.As(err, target) }
