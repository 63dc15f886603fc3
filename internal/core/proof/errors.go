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

package proof

import (
	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// CantIntroduce reports an Intro against a goal that is not a Pi.
type CantIntroduce struct {
	Goal term.Term
}

func (e *CantIntroduce) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *CantIntroduce) Msg() (string, []interface{}) {
	return "can't introduce a binding for goal %s", []interface{}{term.String(e.Goal)}
}

func (e *CantIntroduce) Path() []string { return nil }

// NotEquality reports a Rewrite whose proof term's type is not an
// equation.
type NotEquality struct {
	Tm term.Term
	Ty term.Term
}

func (e *NotEquality) Error() string {
	format, args := e.Msg()
	return errors.NewMessagef(format, args...).Error()
}

func (e *NotEquality) Msg() (string, []interface{}) {
	return "%s is not an equality proof (its type is %s)",
		[]interface{}{term.String(e.Tm), term.String(e.Ty)}
}

func (e *NotEquality) Path() []string { return nil }

var (
	_ errors.Error = &CantIntroduce{}
	_ errors.Error = &NotEquality{}
)
