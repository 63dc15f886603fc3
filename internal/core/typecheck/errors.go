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

package typecheck

import (
	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// CantConvert reports that two terms are not definitionally equal.
type CantConvert struct {
	From term.Term
	To   term.Term
}

func (e *CantConvert) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *CantConvert) Msg() (string, []interface{}) {
	return "can't convert %s to %s", []interface{}{term.String(e.From), term.String(e.To)}
}

func (e *CantConvert) Path() []string { return nil }

// CantInferType reports that no type could be derived for a term.
type CantInferType struct {
	What string
}

func (e *CantInferType) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *CantInferType) Msg() (string, []interface{}) {
	return "can't infer type of %s", []interface{}{e.What}
}

func (e *CantInferType) Path() []string { return nil }

// NoSuchVariable reports a reference to an unbound, undefined name.
type NoSuchVariable struct {
	Name term.Name
}

func (e *NoSuchVariable) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *NoSuchVariable) Msg() (string, []interface{}) {
	return "no such variable %v", []interface{}{e.Name}
}

func (e *NoSuchVariable) Path() []string { return nil }

// NotAType reports that a term does not inhabit a universe where one
// was required.
type NotAType struct {
	Term term.Term
}

func (e *NotAType) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *NotAType) Msg() (string, []interface{}) {
	return "%s is not a type", []interface{}{term.String(e.Term)}
}

func (e *NotAType) Path() []string { return nil }

var (
	_ errors.Error = &CantConvert{}
	_ errors.Error = &CantInferType{}
	_ errors.Error = &NoSuchVariable{}
	_ errors.Error = &NotAType{}
)
