// Package errs holds the typed errors shared by the domain, the use cases and the adapters.
//
// Every error type unwraps to one sentinel, so callers classify with errors.Is:
//
//	ErrObjectNotFound    <- *ObjectNotFoundError
//	ErrValueIsInvalid    <- *ValueIsInvalidError
//	ErrValueIsOutOfRange <- *ValueIsOutOfRangeError
//	ErrValueIsRequired   <- *ValueIsRequiredError
//	ErrVersionIsInvalid  <- *VersionIsInvalidError
//
// The HTTP adapter maps these sentinels to status codes; the detail fields stay available
// through errors.As for logging.
package errs
