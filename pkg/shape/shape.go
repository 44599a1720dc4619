// Package shape reports dimension mismatches between numeric batches.
//
// Every batched operation in this module validates its operands up front and
// returns a *Error instead of broadcasting or truncating silently. Callers
// test for the class of failure with errors.Is(err, shape.ErrMismatch).
package shape

import (
	"errors"
	"fmt"
)

// ErrMismatch is the sentinel wrapped by every *Error.
var ErrMismatch = errors.New("shape mismatch")

// Error describes which operand of which operation had the wrong shape.
type Error struct {
	Op      string // operation, e.g. "vortex.Induce"
	Operand string // operand name, e.g. "node2"
	Want    string
	Got     string
}

// Error returns a message of the form "op: operand: want W, got G".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: want %s, got %s", e.Op, e.Operand, e.Want, e.Got)
}

// Unwrap returns ErrMismatch.
func (e *Error) Unwrap() error { return ErrMismatch }

// Len returns an error if got != want, nil otherwise.
func Len(op, operand string, want, got int) error {
	if got == want {
		return nil
	}
	return &Error{Op: op, Operand: operand, Want: fmt.Sprintf("length %d", want), Got: fmt.Sprintf("length %d", got)}
}

// Broadcast returns an error unless got is 1 or want.
func Broadcast(op, operand string, want, got int) error {
	if got == 1 || got == want {
		return nil
	}
	return &Error{Op: op, Operand: operand, Want: fmt.Sprintf("length 1 or %d", want), Got: fmt.Sprintf("length %d", got)}
}

// Dims returns an error if the (rows, cols) pair differs from the wanted one.
// A negative wanted dimension matches anything.
func Dims(op, operand string, wantR, wantC, gotR, gotC int) error {
	if (wantR < 0 || wantR == gotR) && (wantC < 0 || wantC == gotC) {
		return nil
	}
	return &Error{Op: op, Operand: operand, Want: dims(wantR, wantC), Got: dims(gotR, gotC)}
}

func dims(r, c int) string {
	rs, cs := "*", "*"
	if r >= 0 {
		rs = fmt.Sprint(r)
	}
	if c >= 0 {
		cs = fmt.Sprint(c)
	}
	return "(" + rs + ", " + cs + ")"
}
