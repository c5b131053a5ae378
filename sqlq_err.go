package sqlq

import "fmt"

/*
Error types returned or panicked by this package. Each kind is a thin wrapper
around `Err` and can be detected with `errors.As`:

	var err sqlq.ErrMissingFilter
	if errors.As(someErr, &err) {
		// Handle specific error.
	}
*/
type Err struct {
	While string
	Cause error
}

// Implement `error`.
func (self Err) Error() string {
	if self == (Err{}) {
		return ``
	}
	msg := `[sqlq] error`
	if self.While != `` {
		msg += ` while ` + self.While
	}
	if self.Cause != nil {
		msg += `: ` + self.Cause.Error()
	}
	return msg
}

// Implement a hidden interface in "errors".
func (self Err) Unwrap() error { return self.Cause }

// Rendering a destructive statement (UPDATE/DELETE) with an empty filter.
// Recoverable by adding a filter or setting `Stmt.Lax`.
type ErrMissingFilter struct{ Err }

// Raw input failed validation in `FromRaw`: empty, multiple statements,
// malformed, or an unsupported statement type.
type ErrQuery struct{ Err }

// Insert row width or column mismatch against the column set established by
// the first insert call.
type ErrStructuralMismatch struct{ Err }

// SQL text ended in the middle of a quoted string or block comment.
type ErrUnexpectedEOF struct{ Err }

// Unusable input, such as a non-struct where a struct is required.
type ErrInvalidInput struct{ Err }

// Named parameter without a corresponding argument.
type ErrMissingArgument struct{ Err }

// Ordinal parameter where named are expected, or vice versa.
type ErrUnexpectedParameter struct{ Err }

// Argument without a corresponding parameter.
type ErrUnusedArgument struct{ Err }

// Ordinal parameter outside the argument list.
type ErrOrdinalOutOfBounds struct{ Err }

// Indicates a bug in this package.
type ErrInternal struct{ Err }

// Shortcut for string-typed constant errors.
type ErrStr string

// Implement `error`.
func (self ErrStr) Error() string { return string(self) }

func errf(pat string, vals ...any) error { return fmt.Errorf(pat, vals...) }
