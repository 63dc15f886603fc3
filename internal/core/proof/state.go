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

// Package proof implements the interactive proof-state engine: a proof
// term with typed holes, a focus, a unification journal and problem
// queue, and the tactics that refine the term toward a closed
// inhabitant of the goal.
package proof

import (
	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/unify"
	"velalang.org/go/vela/errors"
)

// journal is the unification scope marker plus the hole solutions
// accumulated since it was last committed.
type journal struct {
	scope   term.Name
	assigns []unify.Assign
}

// A ProofState is one step of an interactive proof. States form a
// chain through previous; every successful tactic produces a new state
// and leaves its predecessor untouched.
type ProofState struct {
	name     term.Name
	holes    []term.Name
	usedns   term.NameSet
	nextname int

	pterm term.Term
	ptype term.Term

	dontunify  []term.Name
	unified    journal
	notunified []unify.Assign
	solved     *unify.Assign
	problems   []unify.Problem
	injective  term.NameSet

	deferred  []term.Name
	instances []term.Name

	previous *ProofState
	ctx      *defs.Context

	plog     string
	unifylog bool
	done     bool
}

// NewProof creates a proof of goal named name: a single hole of the
// goal type, focused.
func NewProof(name term.Name, ctx *defs.Context, goal term.Term) *ProofState {
	h := term.MN(0, "hole")
	return &ProofState{
		name:     name,
		holes:    []term.Name{h},
		usedns:   term.NameSet{h: true},
		nextname: 1,
		pterm: &term.Bind{
			Name:  h,
			B:     &term.Binder{Kind: term.Hole, Ty: goal},
			Scope: &term.Ref{Class: term.Bound, Name: h, Ty: goal},
		},
		ptype:     goal,
		unified:   journal{scope: h},
		injective: term.NameSet{},
		ctx:       ctx,
	}
}

// Name returns the theorem name.
func (ps *ProofState) Name() term.Name { return ps.name }

// Holes returns the open holes, focus first.
func (ps *ProofState) Holes() []term.Name {
	return append([]term.Name(nil), ps.holes...)
}

// Term returns the current proof term.
func (ps *ProofState) Term() term.Term { return ps.pterm }

// Type returns the original goal.
func (ps *ProofState) Type() term.Term { return ps.ptype }

// Done reports whether QED has completed the proof.
func (ps *ProofState) Done() bool { return ps.done }

// Context returns the global definition context.
func (ps *ProofState) Context() *defs.Context { return ps.ctx }

// Deferred returns the names of obligations moved to the top level by
// Defer and DeferType; the driver must declare them before the
// enclosing proof is finalised.
func (ps *ProofState) Deferred() []term.Name {
	return append([]term.Name(nil), ps.deferred...)
}

// Instances returns the holes tagged for instance search.
func (ps *ProofState) Instances() []term.Name {
	return append([]term.Name(nil), ps.instances...)
}

// ProblemCount returns the number of deferred unification problems.
func (ps *ProofState) ProblemCount() int { return len(ps.problems) }

// SetUnifyLog toggles the unification trace in the tactic log.
func (ps *ProofState) SetUnifyLog(on bool) { ps.unifylog = on }

// DontUnify marks names that unification must not overwrite
// unilaterally; solutions for them are parked in the pending list
// instead of applied.
func (ps *ProofState) DontUnify(ns ...term.Name) {
	ps.dontunify = append(ps.dontunify, ns...)
}

// EnvAtFocus returns the environment enclosing the focused hole.
func EnvAtFocus(ps *ProofState) (term.Env, error) {
	if len(ps.holes) == 0 {
		return nil, errors.Newf("no more goals")
	}
	env, _, ok := goalSearch(ps.holes[0], nil, ps.pterm)
	if !ok {
		return nil, errors.Newf("Can't find hole %v", ps.holes[0])
	}
	return env, nil
}

// GoalAtFocus returns the binder of the focused hole.
func GoalAtFocus(ps *ProofState) (*term.Binder, error) {
	if len(ps.holes) == 0 {
		return nil, errors.Newf("no more goals")
	}
	_, b, ok := goalSearch(ps.holes[0], nil, ps.pterm)
	if !ok {
		return nil, errors.Newf("Can't find hole %v", ps.holes[0])
	}
	return b, nil
}

// clone returns a state sharing no mutable bookkeeping with ps. Terms
// are shared; they are never mutated in place.
func (ps *ProofState) clone() *ProofState {
	c := *ps
	c.holes = append([]term.Name(nil), ps.holes...)
	c.dontunify = append([]term.Name(nil), ps.dontunify...)
	c.unified.assigns = append([]unify.Assign(nil), ps.unified.assigns...)
	c.notunified = append([]unify.Assign(nil), ps.notunified...)
	c.problems = append([]unify.Problem(nil), ps.problems...)
	c.deferred = append([]term.Name(nil), ps.deferred...)
	c.instances = append([]term.Name(nil), ps.instances...)
	c.usedns = ps.usedns.Clone()
	c.injective = ps.injective.Clone()
	return &c
}

// DropGiven partitions a solution journal for user-supplied names: a
// solution binding a dontunify name to another hole is flipped so the
// other hole is solved with the given name; any other solution for a
// dontunify name is removed. The result is the substitution that may
// be applied.
func DropGiven(du []term.Name, ns []unify.Assign, holes []term.Name) []unify.Assign {
	dus, hs := nameSet(du), nameSet(holes)
	var out []unify.Assign
	for _, a := range ns {
		if !dus.Has(a.Name) {
			out = append(out, a)
			continue
		}
		if r, ok := a.Value.(*term.Ref); ok && hs.Has(r.Name) {
			out = append(out, unify.Assign{
				Name:  r.Name,
				Value: &term.Ref{Class: term.Bound, Name: a.Name, Ty: r.Ty},
			})
		}
	}
	return out
}

// KeepGiven is the complement of DropGiven: the solutions for
// dontunify names that were removed rather than flipped. They are
// retained as pending equations.
func KeepGiven(du []term.Name, ns []unify.Assign, holes []term.Name) []unify.Assign {
	dus, hs := nameSet(du), nameSet(holes)
	var out []unify.Assign
	for _, a := range ns {
		if !dus.Has(a.Name) {
			continue
		}
		if r, ok := a.Value.(*term.Ref); ok && hs.Has(r.Name) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func nameSet(ns []term.Name) term.NameSet {
	s := term.NameSet{}
	for _, n := range ns {
		s.Add(n)
	}
	return s
}

// updateSolved applies a substitution throughout a term. A binder
// whose name is solved is eliminated, its solution substituted into
// the scope; references by machine name are substituted directly.
func updateSolved(ns []unify.Assign, t term.Term) term.Term {
	if len(ns) == 0 {
		return t
	}
	m := make(map[term.Name]term.Term, len(ns))
	for _, a := range ns {
		m[a.Name] = a.Value
	}
	return updSolved(m, t)
}

func updSolved(m map[term.Name]term.Term, t term.Term) term.Term {
	switch x := t.(type) {
	case *term.Bind:
		if x.B.IsHole() {
			if v, ok := m[x.Name]; ok {
				return term.PSubst(x.Name, v, updSolved(m, x.Scope))
			}
		}
		b := x.B.Map(func(u term.Term) term.Term { return updSolved(m, u) })
		return &term.Bind{Name: x.Name, B: b, Scope: updSolved(m, x.Scope)}
	case *term.Ref:
		if x.Name.Machine {
			if v, ok := m[x.Name]; ok {
				return v
			}
		}
		return x
	case *term.App:
		return &term.App{Fn: updSolved(m, x.Fn), Arg: updSolved(m, x.Arg)}
	default:
		return t
	}
}

// updateNotunified rewrites the pending equations through a
// substitution.
func updateNotunified(ns []unify.Assign, nu []unify.Assign) []unify.Assign {
	if len(ns) == 0 || len(nu) == 0 {
		return nu
	}
	out := make([]unify.Assign, len(nu))
	for i, a := range nu {
		out[i] = unify.Assign{Name: a.Name, Value: updateSolved(ns, a.Value)}
	}
	return out
}

// updateEnv rewrites the binders of a stored environment through a
// substitution.
func updateEnv(ns []unify.Assign, env term.Env) term.Env {
	if len(ns) == 0 || len(env) == 0 {
		return env
	}
	out := make(term.Env, len(env))
	for i, ee := range env {
		out[i] = term.EnvEntry{
			Name: ee.Name,
			B:    ee.B.Map(func(u term.Term) term.Term { return updateSolved(ns, u) }),
		}
	}
	return out
}

// removeHole deletes n from a name list, preserving order.
func removeHole(ns []term.Name, n term.Name) []term.Name {
	out := ns[:0]
	for _, x := range ns {
		if x != n {
			out = append(out, x)
		}
	}
	return out
}

func containsName(ns []term.Name, n term.Name) bool {
	for _, x := range ns {
		if x == n {
			return true
		}
	}
	return false
}
