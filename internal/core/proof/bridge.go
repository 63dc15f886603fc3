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
	"fmt"

	"velalang.org/go/internal/core/debug"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/unify"
)

// unifyOracle runs full unification of a and b, journalling solutions
// and queueing anything the unifier had to defer. A recoverable
// failure becomes a deferred problem instead of failing the tactic.
func (s *tacState) unifyOracle(env term.Env, a, b term.Term) error {
	ps := s.ps
	s.logUnify("unify", a, b)
	ns, fails, err := unify.Unify(ps.ctx, env, a, b, ps.injective, ps.holes)
	if err != nil {
		if unify.Recoverable(err) {
			ps.problems = append(ps.problems, unify.Problem{
				X: a, Y: b, Env: env, Err: err, Mode: unify.ModeUnify,
			})
			s.logUnify("deferred", a, b)
			return nil
		}
		return err
	}
	s.addSolutions(ns)
	ps.problems = append(ps.problems, fails...)
	s.updateProblemsFix()
	return nil
}

// matchOracle runs one-sided matching of the pattern a against b. A
// recoverable failure is queued in match mode.
func (s *tacState) matchOracle(env term.Env, a, b term.Term) error {
	ps := s.ps
	s.logUnify("match", a, b)
	ns, err := unify.MatchUnify(ps.ctx, env, a, b, ps.injective, ps.holes)
	if err != nil {
		if unify.Recoverable(err) {
			ps.problems = append(ps.problems, unify.Problem{
				X: a, Y: b, Env: env, Err: err, Mode: unify.ModeMatch,
			})
			s.logUnify("deferred", a, b)
			return nil
		}
		return err
	}
	s.addSolutions(ns)
	s.updateProblemsFix()
	return nil
}

// addSolutions extends the journal and propagates injectivity: when a
// hole is solved with an application of a variable reference and
// either endpoint is known injective, the other becomes injective too.
func (s *tacState) addSolutions(ns []unify.Assign) {
	ps := s.ps
	ps.unified.assigns = append(ps.unified.assigns, ns...)
	for _, a := range ns {
		hd, args := term.UnApply(a.Value)
		r, ok := hd.(*term.Ref)
		if !ok || len(args) == 0 {
			continue
		}
		switch {
		case ps.injective.Has(a.Name):
			ps.injective.Add(r.Name)
		case ps.injective.Has(r.Name):
			ps.injective.Add(a.Name)
		}
	}
}

// updateProblemsFix retries the deferred queue under the current
// journal until it stops shrinking. Each success strictly decreases
// the number of open problems, so the loop terminates.
func (s *tacState) updateProblemsFix() {
	ps := s.ps
	for {
		solvedAny := false
		remain := ps.problems[:0:0]
		for _, p0 := range ps.problems {
			p := problemUpdate(ps.unified.assigns, p0)
			var ns []unify.Assign
			var fails []unify.Problem
			var err error
			if p.Mode == unify.ModeMatch {
				ns, err = unify.MatchUnify(ps.ctx, p.Env, p.X, p.Y, ps.injective, ps.holes)
			} else {
				ns, fails, err = unify.Unify(ps.ctx, p.Env, p.X, p.Y, ps.injective, ps.holes)
			}
			if err != nil || len(fails) > 0 {
				remain = append(remain, p)
				continue
			}
			s.addSolutions(ns)
			solvedAny = true
		}
		ps.problems = remain
		if !solvedAny {
			return
		}
	}
}

// problemUpdate rewrites a stored problem through a substitution.
func problemUpdate(ns []unify.Assign, p unify.Problem) unify.Problem {
	if len(ns) == 0 {
		return p
	}
	return unify.Problem{
		X:    updateSolved(ns, p.X),
		Y:    updateSolved(ns, p.Y),
		Env:  updateEnv(ns, p.Env),
		Err:  p.Err,
		Mode: p.Mode,
	}
}

// endUnify commits the journal: user-name solutions are rewritten via
// DropGiven, the substitution applied throughout, the problem queue
// re-driven, and all newly solved holes removed.
func (s *tacState) endUnify() error {
	ps := s.ps
	ns := ps.unified.assigns
	ps.unified = journal{}
	drop := DropGiven(ps.dontunify, ns, ps.holes)
	keep := KeepGiven(ps.dontunify, ns, ps.holes)
	ps.pterm = updateSolved(drop, ps.pterm)
	ps.ptype = updateSolved(drop, ps.ptype)
	ps.notunified = append(updateNotunified(drop, ps.notunified), keep...)
	for _, a := range drop {
		ps.holes = removeHole(ps.holes, a.Name)
	}
	s.updateProblemsFix()
	return nil
}

// matchProblems retries deferred problems with matching. With all set,
// every problem is retried; otherwise only those queued in match mode.
func (s *tacState) matchProblems(all bool) error {
	ps := s.ps
	remain := ps.problems[:0:0]
	for _, p0 := range ps.problems {
		if !all && p0.Mode != unify.ModeMatch {
			remain = append(remain, p0)
			continue
		}
		p := problemUpdate(ps.unified.assigns, p0)
		ns, err := unify.MatchUnify(ps.ctx, p.Env, p.X, p.Y, ps.injective, ps.holes)
		if err != nil {
			remain = append(remain, p)
			continue
		}
		s.addSolutions(ns)
	}
	ps.problems = remain
	return nil
}

// unifyProblems retries every deferred problem with full unification.
func (s *tacState) unifyProblems() error {
	ps := s.ps
	remain := ps.problems[:0:0]
	for _, p0 := range ps.problems {
		p := problemUpdate(ps.unified.assigns, p0)
		ns, fails, err := unify.Unify(ps.ctx, p.Env, p.X, p.Y, ps.injective, ps.holes)
		if err != nil || len(fails) > 0 {
			remain = append(remain, p)
			continue
		}
		s.addSolutions(ns)
	}
	ps.problems = remain
	s.updateProblemsFix()
	return nil
}

// logf appends a line to the tactic log.
func (s *tacState) logf(format string, args ...interface{}) {
	s.ps.plog += fmt.Sprintf(format, args...) + "\n"
}

// logUnify traces a unifier call when the unify log is enabled.
func (s *tacState) logUnify(what string, a, b term.Term) {
	if !s.ps.unifylog {
		return
	}
	s.logf("%s: %s =?= %s", what, debug.TermString(a), debug.TermString(b))
}
