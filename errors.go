package tablets

import (
	"errors"
	"strconv"
)

// DomainError is an error returned when a computation has no defined result:
// division by zero, a disallowed power, a result outside the exponent range,
// or a primitive evaluated on its boundary. It is not a program error; it
// renders as "Undefined".
type DomainError struct {
	// Op is the operator or primitive name.
	Op string
	// X is the left operand or primitive argument.
	X Decimal
	// Y is the right operand. It is zero for primitives.
	Y Decimal
}

func (err *DomainError) Error() string {
	if len(err.Op) == 1 {
		return "undefined: " + err.X.String() + " " + err.Op + " " + err.Y.String()
	}
	return "undefined: " + err.Op + "(" + err.X.String() + ")"
}

// Undefined reports whether err is or wraps a *DomainError.
func Undefined(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}

// NameError is an error from a call to a function that is neither a tablet in
// the registry nor an enabled primitive.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "no tablet named " + strconv.Quote(err.Name)
}

// VariableError is an error from a variable that is neither x nor a decimal
// literal.
type VariableError struct {
	Name string
}

func (err *VariableError) Error() string {
	return "unexpected variable " + strconv.Quote(err.Name)
}

// LiteralError indicates text that is not a finite decimal literal.
type LiteralError struct {
	Text string
}

func (err *LiteralError) Error() string {
	return "invalid decimal literal " + strconv.Quote(err.Text)
}

// OperatorError is an error from an operator node with an operator the
// evaluator doesn't know.
type OperatorError struct {
	Op byte
}

func (err *OperatorError) Error() string {
	return "unknown operator " + strconv.QuoteRune(rune(err.Op))
}

// DepthError is an error from tablet calls nested past the limit set with
// MaxDepth.
type DepthError struct {
	// Name is the tablet whose call exceeded the limit.
	Name string
	// Depth is the limit.
	Depth int
}

func (err *DepthError) Error() string {
	return "calling " + err.Name + ": tablets nested deeper than " + strconv.Itoa(err.Depth)
}

// Diagnostic is an error describing invalid session input. Its message is the
// text shown to the user in place of a result.
type Diagnostic interface {
	error
	diagnostic()
}

// FunctionError is a diagnostic for a call to a function that isn't defined.
type FunctionError struct {
	Name string
	// Suggestion is a defined name resembling Name, or "".
	Suggestion string
}

func (err *FunctionError) Error() string {
	return "Function " + err.Name + " not defined"
}

// InputValueError is a diagnostic for a call argument that is not a decimal
// literal.
type InputValueError struct {
	Text string
}

func (err *InputValueError) Error() string {
	return "Invalid input value: " + err.Text
}

// DefinitionError is a diagnostic for a line that doesn't have the shape
// NAME(x)=expr.
type DefinitionError struct {
	Text string
}

func (err *DefinitionError) Error() string {
	return "Invalid function definition: " + err.Text
}

// CallError is a diagnostic for a line that doesn't have the shape
// NAME(value).
type CallError struct {
	Text string
}

func (err *CallError) Error() string {
	return "Invalid function call: " + err.Text
}

func (*FunctionError) diagnostic()   {}
func (*InputValueError) diagnostic() {}
func (*DefinitionError) diagnostic() {}
func (*CallError) diagnostic()       {}

var (
	_ Diagnostic = (*FunctionError)(nil)
	_ Diagnostic = (*InputValueError)(nil)
	_ Diagnostic = (*DefinitionError)(nil)
	_ Diagnostic = (*CallError)(nil)
)
