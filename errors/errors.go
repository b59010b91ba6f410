// Package errors builds formatted errors that keep their error arguments reachable
// through errors.Is and errors.As.
package errors

import (
	"fmt"
)

type err struct {
	msg  string
	args []interface{}
}

func (err err) Error() string {
	return fmt.Sprintf(err.msg, err.args...)
}

// Unwrap returns every error among the args, so that both the wrapped cause and any
// sentinel passed as argument are matched.
func (err err) Unwrap() []error {
	var errs []error
	for _, arg := range err.args {
		if wrapped, ok := arg.(error); ok {
			errs = append(errs, wrapped)
		}
	}
	return errs
}

// New returns an error formatted like fmt.Sprintf(msg, args...).
func New(msg string, args ...interface{}) error {
	return err{msg, args}
}

// Sentinel is a constant error value, comparable with ==.
type Sentinel string

func (s Sentinel) Error() string {
	return string(s)
}
