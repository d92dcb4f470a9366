package multibody

import "github.com/pkg/errors"

// The three failure classes this package reports. All returned errors wrap
// exactly one of these sentinels, so callers can classify with errors.Is.
var (
	// ErrInvalidTopology reports a disconnected, over-attached, or cyclic
	// element graph, detected only at Finalize time.
	ErrInvalidTopology = errors.New("invalid multibody topology")

	// ErrInvalidOperation reports an operation performed in the wrong model
	// lifecycle stage: mutating after Finalize, finalizing twice, or creating
	// a context before Finalize.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrPreconditionViolation reports a caller contract violation such as a
	// mismatched vector or array size. It signals a programming error, not a
	// recoverable runtime condition.
	ErrPreconditionViolation = errors.New("precondition violation")
)

// NewInvalidTopologyError returns an ErrInvalidTopology with detail.
func NewInvalidTopologyError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidTopology, format, args...)
}

// NewInvalidOperationError returns an ErrInvalidOperation with detail.
func NewInvalidOperationError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidOperation, format, args...)
}

// NewPreconditionViolationError returns an ErrPreconditionViolation with detail.
func NewPreconditionViolationError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrPreconditionViolation, format, args...)
}
