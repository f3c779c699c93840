package reflection

import (
	"errors"
	"fmt"
)

// Error types. Problems returned by getters, setters and properties match one
// of these with errors.Is.
var (
	ErrAccess               = errors.New("cannot access member")
	ErrNoInstance           = errors.New("no instance")
	ErrInvocation           = errors.New("invocation failed")
	ErrCannotConvert        = errors.New("cannot convert value")
	ErrGetterNotFound       = errors.New("getter not found")
	ErrSetterNotFound       = errors.New("setter not found")
	ErrRequiredNotPopulated = errors.New("required property was not populated")
	ErrIncompatibleAccessor = errors.New("incompatible accessor types")
	ErrNoAccessor           = errors.New("property needs a getter or a setter")
)

// Construction errors are returned, not absorbed: there is no value to hand back
// in place of an instance.
var (
	ErrNoConstructor      = errors.New("no matching constructor")
	ErrConstructionFailed = errors.New("construction failed")
	ErrBadConstructor     = errors.New("not a constructor")
)

// Problem is the error value returned by getters and setters in place of a result.
// It carries a human-readable description and, optionally, the underlying cause.
type Problem struct {
	kind    error
	message string
	cause   error
}

func newProblem(kind error, cause error, format string, args ...any) *Problem {
	return &Problem{
		kind:    kind,
		message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

// Description returns the problem text without the cause.
func (p *Problem) Description() string {
	return p.kind.Error() + ": " + p.message
}

// Cause returns the wrapped error, if any.
func (p *Problem) Cause() error {
	return p.cause
}

func (p *Problem) Error() string {
	if p.cause == nil {
		return p.Description()
	}
	return p.Description() + ": " + p.cause.Error()
}

// Is matches the problem kind.
func (p *Problem) Is(target error) bool {
	return target == p.kind
}

func (p *Problem) Unwrap() error {
	return p.cause
}

// AsProblem returns err as a *Problem if it is one.
func AsProblem(err error) (*Problem, bool) {
	var p *Problem
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

// panicError turns a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", r)
}
