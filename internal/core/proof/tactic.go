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
	"velalang.org/go/internal/core/unify"
	"velalang.org/go/vela/errors"
)

// A Tactic is one step of a proof script. The set is closed; each
// variant's semantics are implemented by the tactic interpreters in
// this package.
type Tactic interface {
	tactic()
}

// Attack begins a nested elaboration of the focused hole: the hole
// becomes a guess whose candidate carries a fresh inner hole.
type Attack struct{}

// Claim inserts a new hole Name of type Ty immediately after the
// focus.
type Claim struct {
	Name term.Name
	Ty   term.Raw
}

// Reorder topologically reorders the run of hole binders at the focus
// so dependencies come first.
type Reorder struct{}

// Exact solves the focused hole with a term whose type must be
// definitionally equal to the goal.
type Exact struct {
	Tm term.Raw
}

// Fill is Exact with unification between the term's type and the goal.
type Fill struct {
	Tm term.Raw
}

// MatchFill is Fill with one-sided matching.
type MatchFill struct {
	Tm term.Raw
}

// PrepFill replaces the hole with a guessed application of Fn to the
// named Args, without typechecking.
type PrepFill struct {
	Fn   term.Name
	Args []term.Name
}

// CompleteFill rechecks a guess installed by PrepFill and unifies its
// type with the goal.
type CompleteFill struct{}

// Regret removes a focused hole that is not used in its scope.
type Regret struct{}

// Solve promotes the focused guess to a solution.
type Solve struct{}

// StartUnify opens a unification scope.
type StartUnify struct {
	Name term.Name
}

// EndUnify commits the unification journal accumulated since
// StartUnify.
type EndUnify struct{}

// Compute normalises the goal of the focused hole.
type Compute struct{}

// HNFCompute weak-head normalises the goal of the focused hole.
type HNFCompute struct{}

// Simplify specialises the goal of the focused hole.
type Simplify struct{}

// ComputeLet normalises the value of the named let binding in the
// proof term.
type ComputeLet struct {
	Name term.Name
}

// EvalIn logs the normal form and type of a term; the state is
// unchanged apart from the log.
type EvalIn struct {
	Tm term.Raw
}

// CheckIn logs the type of a term.
type CheckIn struct {
	Tm term.Raw
}

// Intro introduces a lambda for a Pi goal. A zero Name asks for a
// fresh one.
type Intro struct {
	Name term.Name
}

// IntroTy is Intro with the binder type unified against Ty.
type IntroTy struct {
	Ty   term.Raw
	Name term.Name
}

// Forall binds Name : Ty with Pi; the goal must be a universe.
type Forall struct {
	Name term.Name
	Ty   term.Raw
}

// LetBind inserts a let binding around the focused hole.
type LetBind struct {
	Name term.Name
	Ty   term.Raw
	Val  term.Raw
}

// ExpandLet inlines the named let binding throughout the proof term.
// A nil Val inlines the binding's own value.
type ExpandLet struct {
	Name term.Name
	Val  term.Raw
}

// Rewrite rewrites the goal with an equality proof.
type Rewrite struct {
	Tm term.Raw
}

// Induction eliminates the named scrutinee with its family's
// eliminator, opening one hole per method.
type Induction struct {
	Name term.Name
}

// Equiv coerces the goal to a definitionally equal type.
type Equiv struct {
	Ty term.Raw
}

// PatVar converts the focused hole into a pattern variable.
type PatVar struct {
	Name term.Name
}

// PatBind binds a pattern variable out of a PVTy goal.
type PatBind struct {
	Name term.Name
}

// Focus makes Name the focus if it is an open hole; otherwise a no-op.
type Focus struct {
	Name term.Name
}

// MoveLast moves Name to the tail of the hole list.
type MoveLast struct {
	Name term.Name
}

// Defer abstracts the focused hole over its environment and moves it
// to the top level under Name.
type Defer struct {
	Name term.Name
}

// DeferType is Defer with a caller-supplied signature and argument
// names.
type DeferType struct {
	Name term.Name
	Ty   term.Raw
	Args []term.Name
}

// Instance tags the hole Name for instance search.
type Instance struct {
	Name term.Name
}

// SetInjective marks Name as injective for unification.
type SetInjective struct {
	Name term.Name
}

// MatchProblems retries deferred problems with matching; if All is
// false, only those queued in match mode.
type MatchProblems struct {
	All bool
}

// UnifyProblems retries all deferred problems with unification.
type UnifyProblems struct{}

// RenderState returns a rendering of the state without mutating it.
type RenderState struct{}

// Undo restores the previous state.
type Undo struct{}

// QED closes the proof: no holes may remain and the term must recheck
// against the goal.
type QED struct{}

func (Attack) tactic()        {}
func (Claim) tactic()         {}
func (Reorder) tactic()       {}
func (Exact) tactic()         {}
func (Fill) tactic()          {}
func (MatchFill) tactic()     {}
func (PrepFill) tactic()      {}
func (CompleteFill) tactic()  {}
func (Regret) tactic()        {}
func (Solve) tactic()         {}
func (StartUnify) tactic()    {}
func (EndUnify) tactic()      {}
func (Compute) tactic()       {}
func (HNFCompute) tactic()    {}
func (Simplify) tactic()      {}
func (ComputeLet) tactic()    {}
func (EvalIn) tactic()        {}
func (CheckIn) tactic()       {}
func (Intro) tactic()         {}
func (IntroTy) tactic()       {}
func (Forall) tactic()        {}
func (LetBind) tactic()       {}
func (ExpandLet) tactic()     {}
func (Rewrite) tactic()       {}
func (Induction) tactic()     {}
func (Equiv) tactic()         {}
func (PatVar) tactic()        {}
func (PatBind) tactic()       {}
func (Focus) tactic()         {}
func (MoveLast) tactic()      {}
func (Defer) tactic()         {}
func (DeferType) tactic()     {}
func (Instance) tactic()      {}
func (SetInjective) tactic()  {}
func (MatchProblems) tactic() {}
func (UnifyProblems) tactic() {}
func (RenderState) tactic()   {}
func (Undo) tactic()          {}
func (QED) tactic()           {}

// tacState wraps the in-progress successor state while a tactic runs.
type tacState struct {
	ps *ProofState
}

// ProcessTactic applies one tactic to ps. It is pure: on success the
// returned state is a fresh value whose previous field is ps; on
// failure ps is returned unchanged alongside the error. Undo returns
// ps's predecessor, RenderState returns ps itself, and a successful QED
// returns a state with no predecessor.
func ProcessTactic(t Tactic, ps *ProofState) (*ProofState, string, error) {
	switch t.(type) {
	case Undo:
		if ps.previous == nil {
			return ps, "", errors.Newf("Nothing to undo.")
		}
		return ps.previous, "", nil
	case RenderState:
		return ps, ps.Render(), nil
	}

	if ps.done {
		return ps, "", errors.Newf("proof already finished")
	}

	if _, ok := t.(QED); ok {
		return processQED(ps)
	}

	next := ps.clone()
	next.previous = ps
	next.plog = ""
	s := &tacState{ps: next}
	if err := s.run(t); err != nil {
		return ps, "", err
	}
	s.commit()
	return next, next.plog, nil
}

func processQED(ps *ProofState) (*ProofState, string, error) {
	if len(ps.holes) > 0 {
		return ps, "", errors.Newf("Still holes to fill.")
	}
	tm, ty, err := typecheck.Recheck(ps.ctx, nil, term.Forget(ps.pterm), ps.pterm)
	if err != nil {
		return ps, "", err
	}
	if err := typecheck.Converts(ps.ctx, nil, ty, ps.ptype); err != nil {
		return ps, "", err
	}
	next := ps.clone()
	next.pterm = tm
	next.done = true
	next.previous = nil
	return next, "", nil
}

// run dispatches one tactic against the successor state.
func (s *tacState) run(t Tactic) error {
	switch x := t.(type) {
	case Attack:
		return s.atFocus(s.attack)
	case Claim:
		return s.atFocus(s.claim(x.Name, x.Ty))
	case Reorder:
		return s.atFocus(s.reorder)
	case Exact:
		return s.atFocus(s.exact(x.Tm))
	case Fill:
		return s.atFocus(s.fill(x.Tm))
	case MatchFill:
		return s.atFocus(s.matchFill(x.Tm))
	case PrepFill:
		return s.atFocus(s.prepFill(x.Fn, x.Args))
	case CompleteFill:
		return s.atFocus(s.completeFill)
	case Regret:
		return s.regretRun()
	case Solve:
		return s.atFocus(s.solve)
	case StartUnify:
		s.ps.unified = journal{scope: x.Name}
		return nil
	case EndUnify:
		return s.endUnify()
	case Compute:
		return s.atFocus(s.computeWith(computeNF))
	case HNFCompute:
		return s.atFocus(s.computeWith(computeHNF))
	case Simplify:
		return s.atFocus(s.computeWith(computeSpecialise))
	case ComputeLet:
		return s.computeLet(x.Name)
	case EvalIn:
		return s.atFocus(s.evalIn(x.Tm))
	case CheckIn:
		return s.atFocus(s.checkIn(x.Tm))
	case Intro:
		return s.atFocus(s.intro(x.Name))
	case IntroTy:
		return s.atFocus(s.introTy(x.Ty, x.Name))
	case Forall:
		return s.atFocus(s.forall(x.Name, x.Ty))
	case LetBind:
		return s.atFocus(s.letBind(x.Name, x.Ty, x.Val))
	case ExpandLet:
		return s.expandLet(x.Name, x.Val)
	case Rewrite:
		return s.atFocus(s.rewrite(x.Tm))
	case Induction:
		return s.atFocus(s.induction(x.Name))
	case Equiv:
		return s.atFocus(s.equiv(x.Ty))
	case PatVar:
		return s.atFocus(s.patVar(x.Name))
	case PatBind:
		return s.atFocus(s.patBind(x.Name))
	case Focus:
		s.focusOn(x.Name)
		return nil
	case MoveLast:
		s.moveLast(x.Name)
		return nil
	case Defer:
		return s.atFocus(s.deferHole(x.Name))
	case DeferType:
		return s.atFocus(s.deferType(x.Name, x.Ty, x.Args))
	case Instance:
		s.instance(x.Name)
		return nil
	case SetInjective:
		s.ps.injective.Add(x.Name)
		return nil
	case MatchProblems:
		return s.matchProblems(x.All)
	case UnifyProblems:
		return s.unifyProblems()
	}
	return errors.Newf("unrecognised tactic %T", t)
}

// commit applies the journal accumulated by the tactic: user-supplied
// names are partitioned out, the remaining solutions substituted
// through the term, the goal, and the pending equations, and solved
// holes removed. A fresh solution from Solve also re-drives the
// problem queue.
func (s *tacState) commit() {
	ps := s.ps
	for {
		if ns := ps.unified.assigns; len(ns) > 0 {
			ps.unified.assigns = nil
			drop := DropGiven(ps.dontunify, ns, ps.holes)
			keep := KeepGiven(ps.dontunify, ns, ps.holes)
			ps.pterm = updateSolved(drop, ps.pterm)
			ps.ptype = updateSolved(drop, ps.ptype)
			ps.notunified = append(updateNotunified(drop, ps.notunified), keep...)
			for _, a := range drop {
				ps.holes = removeHole(ps.holes, a.Name)
			}
		}
		if sv := ps.solved; sv != nil {
			ps.solved = nil
			if len(ps.problems) > 0 {
				one := []unify.Assign{*sv}
				for i, p := range ps.problems {
					ps.problems[i] = problemUpdate(one, p)
				}
				s.updateProblemsFix()
			}
			continue
		}
		if len(ps.unified.assigns) == 0 {
			return
		}
	}
}
