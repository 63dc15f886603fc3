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
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/vela/errors"
)

// deferHole moves the focused obligation to the top level: the
// environment is abstracted into a Pi type, the hole is replaced by an
// application of the future definition n to all environment variables,
// and n is queued for the driver to declare.
func (s *tacState) deferHole(n term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't defer here.")
		}
		ps := s.ps
		s.noteUsed(n)
		gty := term.PiEnv(env, t.B.Ty)
		args := make([]term.Term, 0, len(env))
		for i := len(env) - 1; i >= 0; i-- {
			ee := env[i]
			args = append(args, &term.Ref{Class: term.Bound, Name: ee.Name, Ty: ee.B.Ty})
		}
		ps.holes = removeHole(ps.holes, t.Name)
		ps.deferred = append(ps.deferred, n)
		return &term.Bind{
			Name: n,
			B:    &term.Binder{Kind: term.GHole, Ty: gty, NArgs: len(env)},
			Scope: term.MkApp(
				&term.Ref{Class: term.Global, Name: n, Ty: gty},
				args...,
			),
		}, nil
	}
}

// deferType is deferHole with a caller-supplied signature and argument
// names. A named argument missing from the environment is a driver
// bug and fails loudly.
func (s *tacState) deferType(n term.Name, ty term.Raw, argNames []term.Name) runFn {
	return func(env term.Env, t *term.Bind) (term.Term, error) {
		if t.B.Kind != term.Hole || !selfScoped(t) {
			return nil, errors.Newf("Can't defer here.")
		}
		ps := s.ps
		fty, _, err := typecheck.Check(ps.ctx, env, ty)
		if err != nil {
			return nil, err
		}
		args := make([]term.Term, 0, len(argNames))
		for _, a := range argNames {
			b := env.Lookup(a)
			if b == nil {
				return nil, errors.Newf("internal error: DeferType can't find %v in the environment", a)
			}
			args = append(args, &term.Ref{Class: term.Bound, Name: a, Ty: b.Ty})
		}
		s.noteUsed(n)
		ps.holes = removeHole(ps.holes, t.Name)
		ps.deferred = append(ps.deferred, n)
		return &term.Bind{
			Name: n,
			B:    &term.Binder{Kind: term.GHole, Ty: fty},
			Scope: term.MkApp(
				&term.Ref{Class: term.Global, Name: n, Ty: fty},
				args...,
			),
		}, nil
	}
}
