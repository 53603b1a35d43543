package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Configuration errors. These abort a run before any remote call.

	// ErrConfiguration indicates bad settings or an unusable data path.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDataDirUnreadable indicates the vendor data directory does not
	// exist or cannot be read.
	ErrDataDirUnreadable = errors.New("vendor data directory unreadable")

	// Validation errors. The offending record is skipped, the run continues.

	// ErrMissingField indicates a required field is absent from a vendor
	// record. Always wrapped with the field name.
	ErrMissingField = errors.New("required field missing")

	// ErrDuplicateKey indicates two records in one run share a natural key.
	// This is a data-quality error in the vendor catalogue, not a mapping
	// decision.
	ErrDuplicateKey = errors.New("duplicate natural key")

	// Remote errors. The record is marked failed, the run continues.

	// ErrRemoteOperation indicates a create/update/delete failed on the
	// remote record store.
	ErrRemoteOperation = errors.New("remote operation failed")

	// ErrReporting indicates a progress post to the issue tracker failed.
	// Reporting failures never affect record outcomes.
	ErrReporting = errors.New("progress report failed")

	// ErrUnknownVendor indicates no field mapper is registered for a vendor.
	ErrUnknownVendor = errors.New("unknown vendor")
)
