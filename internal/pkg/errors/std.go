package errors

import stderrors "errors"

// Re-exported so callers importing this package under the name "errors"
// keep access to the standard helpers.

func Is(err, target error) bool { return stderrors.Is(err, target) }

func As(err error, target interface{}) bool { return stderrors.As(err, target) }
