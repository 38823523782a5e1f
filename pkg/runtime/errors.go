package runtime

import "fmt"

// ErrorKind classifies runtime failures. Every kind is terminal for the run
// in which it occurs.
type ErrorKind int

const (
	ErrUndefinedVariable ErrorKind = iota
	ErrUndefinedFunction
	ErrTypeMismatch
	ErrDivisionByZero
	ErrIndexOutOfBounds
	ErrInvalidOperation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrUndefinedFunction:
		return "undefined function"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrDivisionByZero:
		return "division by zero"
	case ErrIndexOutOfBounds:
		return "index out of bounds"
	case ErrInvalidOperation:
		return "invalid operation"
	default:
		return fmt.Sprintf("unknown_error_%d", int(k))
	}
}

// Error is the structured runtime error. Only the fields relevant to Kind are
// set.
type Error struct {
	Kind        ErrorKind
	Name        string
	Expected    string
	Actual      string
	Index       int64
	Size        int
	Description string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUndefinedVariable:
		return fmt.Sprintf("Undefined variable: %s", e.Name)
	case ErrUndefinedFunction:
		return fmt.Sprintf("Undefined function: %s", e.Name)
	case ErrTypeMismatch:
		return fmt.Sprintf("Type mismatch: expected %s, got %s", e.Expected, e.Actual)
	case ErrDivisionByZero:
		return "Division by zero"
	case ErrIndexOutOfBounds:
		return fmt.Sprintf("Array index out of bounds: %d for array of size %d", e.Index, e.Size)
	case ErrInvalidOperation:
		return fmt.Sprintf("Invalid operation: %s", e.Description)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is an *Error of the same kind, so errors.Is works
// against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrDivideByZero = &Error{Kind: ErrDivisionByZero}
	ErrOutOfBounds  = &Error{Kind: ErrIndexOutOfBounds}
	ErrUndefinedVar = &Error{Kind: ErrUndefinedVariable}
	ErrUndefinedFn  = &Error{Kind: ErrUndefinedFunction}
)

func UndefinedVariable(name string) error {
	return &Error{Kind: ErrUndefinedVariable, Name: name}
}

func UndefinedFunction(name string) error {
	return &Error{Kind: ErrUndefinedFunction, Name: name}
}

func TypeMismatch(expected, actual string) error {
	return &Error{Kind: ErrTypeMismatch, Expected: expected, Actual: actual}
}

func DivisionByZero() error {
	return &Error{Kind: ErrDivisionByZero}
}

func IndexOutOfBounds(index int64, size int) error {
	return &Error{Kind: ErrIndexOutOfBounds, Index: index, Size: size}
}

func InvalidOperation(description string) error {
	return &Error{Kind: ErrInvalidOperation, Description: description}
}
