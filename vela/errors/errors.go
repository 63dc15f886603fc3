// Copyright 2026 The Vela Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines shared types for handling Vela errors.
//
// Errors carry a breadcrumb path (theorem name, hole name) rather than a
// file position: the engine operates on checked terms for which source
// locations are a concern of the surface elaborator.
package errors // import "velalang.org/go/vela/errors"

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// New is a convenience wrapper for errors.New in the core library.
func New(msg string) error {
	return errors.New(msg)
}

// Unwrap returns the result of calling the Unwrap method on err, if
// err implements Unwrap. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// A Message implements the error interface as well as Message to allow
// internationalized messages.
type Message struct {
	format string
	args   []interface{}
}

// NewMessagef creates an error message for human consumption.
func NewMessagef(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns a printf-style format string and its arguments for human
// consumption.
func (m Message) Msg() (format string, args []interface{}) {
	return m.format, m.args
}

func (m Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// Error is the common error type of the Vela packages.
type Error interface {
	// Path returns the path to the value where the error occurred, such
	// as the theorem name followed by the hole name. It may be empty.
	Path() []string

	// Msg returns the unformatted error message and its arguments for
	// human consumption.
	Msg() (format string, args []interface{})

	Error() string
}

// Path returns the path of an Error if err is an Error, and nil otherwise.
func Path(err error) []string {
	if e, ok := err.(Error); ok {
		return e.Path()
	}
	return nil
}

// Newf creates an Error with the given message.
func Newf(format string, args ...interface{}) Error {
	return &baseError{
		Message: NewMessagef(format, args...),
	}
}

// NewfPath creates an Error at the given path.
func NewfPath(path []string, format string, args ...interface{}) Error {
	return &baseError{
		path:    path,
		Message: NewMessagef(format, args...),
	}
}

// Wrapf creates an Error with the given message, wrapping err.
func Wrapf(err error, format string, args ...interface{}) Error {
	return &baseError{
		err:     err,
		Message: NewMessagef(format, args...),
	}
}

type baseError struct {
	path []string
	err  error
	Message
}

func (e *baseError) Path() []string { return e.path }
func (e *baseError) Unwrap() error  { return e.err }

func (e *baseError) Error() string {
	if e.err == nil {
		return e.Message.Error()
	}
	return e.Message.Error() + ": " + e.err.Error()
}

// AtPath returns err annotated with the given path. If err is already an
// Error, the original message is preserved.
func AtPath(path []string, err error) Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*baseError); ok && e.path == nil {
		clone := *e
		clone.path = path
		return &clone
	}
	return &baseError{path: path, err: err, Message: promoteMessage(err)}
}

// Promote converts a regular Go error to an Error if it isn't already one.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case nil:
		return nil
	case Error:
		return x
	default:
		return &baseError{err: err, Message: NewMessagef("%s", msg)}
	}
}

func promoteMessage(err error) Message {
	if e, ok := err.(Error); ok {
		format, args := e.Msg()
		return NewMessagef(format, args...)
	}
	return NewMessagef("%s", err.Error())
}

var _ Error = &baseError{}

// Append combines two errors, flattening Lists as necessary.
func Append(a, b Error) Error {
	switch x := a.(type) {
	case nil:
		return b
	case List:
		return appendToList(x, b)
	}
	return appendToList(List{a}, b)
}

// Errors reports the individual errors associated with an error, which is
// the error itself if there is only one or, if the underlying type is List,
// its individual elements.
func Errors(err error) []Error {
	switch x := err.(type) {
	case nil:
		return nil
	case List:
		return x
	case Error:
		return []Error{x}
	default:
		return []Error{Promote(err, "")}
	}
}

func appendToList(a List, err Error) List {
	switch x := err.(type) {
	case nil:
		return a
	case List:
		if a == nil {
			return x
		}
		return append(a, x...)
	default:
		return append(a, err)
	}
}

// List is a list of Errors.
// The zero value for a List is an empty List ready to use.
type List []Error

// AddNewf adds an Error with given path and error message to the List.
func (p *List) AddNewf(path []string, format string, args ...interface{}) {
	err := &baseError{path: path, Message: NewMessagef(format, args...)}
	*p = append(*p, err)
}

// Add adds an Error to the List.
func (p *List) Add(err Error) {
	*p = appendToList(*p, err)
}

// Reset resets a List to no errors.
func (p *List) Reset() { *p = (*p)[:0] }

func lessPath(a, b []string) bool {
	for i, x := range a {
		if i >= len(b) {
			return false
		}
		if x != b[i] {
			return x < b[i]
		}
	}
	return len(a) < len(b)
}

// Sort sorts a List by path and message.
func (p List) Sort() {
	sort.Slice(p, func(i, j int) bool {
		if lessPath(p[i].Path(), p[j].Path()) {
			return true
		}
		if lessPath(p[j].Path(), p[i].Path()) {
			return false
		}
		return p[i].Error() < p[j].Error()
	})
}

// RemoveMultiples sorts a List and removes errors that repeat both the
// path and the message of the error before them.
func (p *List) RemoveMultiples() {
	p.Sort()
	var last Error
	i := 0
	for _, e := range *p {
		if last == nil || !approximateEqual(last, e) {
			last = e
			(*p)[i] = e
			i++
		}
	}
	*p = (*p)[0:i]
}

func approximateEqual(a, b Error) bool {
	if !equalPath(a.Path(), b.Path()) {
		return false
	}
	return a.Error() == b.Error()
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i, x := range a {
		if x != b[i] {
			return false
		}
	}
	return true
}

// A List implements the error interface.
func (p List) Error() string {
	format, args := p.Msg()
	return fmt.Sprintf(format, args...)
}

// Msg reports the unformatted error message for the first error, if any.
func (p List) Msg() (format string, args []interface{}) {
	switch len(p) {
	case 0:
		return "no errors", nil
	case 1:
		return p[0].Msg()
	}
	return "%s (and %d more errors)", []interface{}{p[0], len(p) - 1}
}

// Path reports the path location of the first error, if any.
func (p List) Path() []string {
	if len(p) == 0 {
		return nil
	}
	return p[0].Path()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Print is a utility function that prints a list of errors to w, one error
// per line, if the err parameter is a List. Otherwise it prints the err
// string.
func Print(w io.Writer, err error) {
	for _, e := range Errors(err) {
		printError(w, e)
	}
}

func printError(w io.Writer, err Error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%v", err)
	if path := err.Path(); len(path) > 0 {
		fmt.Fprintf(w, ":\n    %s", strings.Join(path, "."))
	}
	fmt.Fprintln(w)
}
