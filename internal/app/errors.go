package app

import "errors"

type FaultKind string

const (
	// KindInfrastructure: the store was unreachable or rejected the operation.
	KindInfrastructure FaultKind = "infrastructure_fault"
	// KindValidation: the request could not be turned into store input.
	KindValidation FaultKind = "validation_fault"
)

// Fault is the only error type the service returns. Message is safe to show
// to clients; Err keeps the underlying cause for server-side logging.
type Fault struct {
	Kind    FaultKind
	Message string
	Err     error
}

func (f *Fault) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func NewValidationFault(message string, err error) *Fault {
	return &Fault{Kind: KindValidation, Message: message, Err: err}
}

func newInfrastructureFault(message string, err error) *Fault {
	return &Fault{Kind: KindInfrastructure, Message: message, Err: err}
}

// AsFault unwraps err into a *Fault. Errors of any other type are reported as
// infrastructure faults with a generic message.
func AsFault(err error) *Fault {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault
	}
	return newInfrastructureFault("internal error", err)
}
