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

// Package script is the tactic-script front end: one tactic per line,
// raw terms in a parenthesised prefix notation. It exists so the
// engine is drivable end to end without the surface language.
package script

import (
	"strings"

	"github.com/google/shlex"

	"velalang.org/go/internal/core/proof"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/vela/errors"
)

// Tokenize splits a script line into tokens. Parentheses are their own
// tokens regardless of spacing.
func Tokenize(line string) ([]string, error) {
	line = strings.ReplaceAll(line, "(", " ( ")
	line = strings.ReplaceAll(line, ")", " ) ")
	return shlex.Split(line)
}

// ParseTerm parses a full raw term from a token list.
func ParseTerm(tokens []string) (term.Raw, error) {
	p := &parser{toks: tokens}
	r, err := p.term()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, errors.Newf("unexpected %q after term", p.peek())
	}
	return r, nil
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) expect(tok string) error {
	if got := p.next(); got != tok {
		return errors.Newf("expected %q, got %q", tok, got)
	}
	return nil
}

// term parses one term: an atom or a parenthesised form.
func (p *parser) term() (term.Raw, error) {
	switch tok := p.next(); tok {
	case "":
		return nil, errors.Newf("unexpected end of term")
	case ")":
		return nil, errors.Newf("unexpected %q", tok)
	case "(":
		return p.parens()
	case "type":
		return &term.RSort{}, nil
	case "_":
		return &term.RErased{}, nil
	default:
		return term.RV(term.UN(tok)), nil
	}
}

// parens parses the body of a parenthesised form: a binder keyword or
// an application.
func (p *parser) parens() (term.Raw, error) {
	switch p.peek() {
	case "pi", "lam", "pat", "patty":
		kw := p.next()
		n := p.next()
		if n == "" || n == "(" || n == ")" {
			return nil, errors.Newf("expected a name after %q", kw)
		}
		ty, err := p.term()
		if err != nil {
			return nil, err
		}
		sc, err := p.term()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		kind := term.Pi
		switch kw {
		case "lam":
			kind = term.Lam
		case "pat":
			kind = term.PVar
		case "patty":
			kind = term.PVTy
		}
		return &term.RBind{
			Name:  term.UN(n),
			B:     &term.RBinder{Kind: kind, Ty: ty},
			Scope: sc,
		}, nil

	case "let":
		p.next()
		n := p.next()
		if n == "" || n == "(" || n == ")" {
			return nil, errors.Newf("expected a name after \"let\"")
		}
		ty, err := p.term()
		if err != nil {
			return nil, err
		}
		val, err := p.term()
		if err != nil {
			return nil, err
		}
		sc, err := p.term()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &term.RBind{
			Name:  term.UN(n),
			B:     &term.RBinder{Kind: term.Let, Ty: ty, Val: val},
			Scope: sc,
		}, nil

	default:
		f, err := p.term()
		if err != nil {
			return nil, err
		}
		for p.peek() != ")" {
			if p.done() {
				return nil, errors.Newf("missing closing parenthesis")
			}
			a, err := p.term()
			if err != nil {
				return nil, err
			}
			f = &term.RApp{Fn: f, Arg: a}
		}
		p.next()
		return f, nil
	}
}

// ParseTactic parses one script line into a tactic. Empty lines and
// comments return a nil tactic.
func ParseTactic(line string) (proof.Tactic, error) {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	cmd, rest := tokens[0], tokens[1:]

	name := func() (term.Name, error) {
		if len(rest) == 0 {
			return term.Name{}, errors.Newf("%s: expected a name", cmd)
		}
		n := rest[0]
		rest = rest[1:]
		return term.UN(n), nil
	}
	oneTerm := func() (term.Raw, error) {
		p := &parser{toks: rest}
		r, err := p.term()
		if err != nil {
			return nil, errors.Wrapf(err, "%s", cmd)
		}
		rest = rest[p.pos:]
		return r, nil
	}
	finish := func(t proof.Tactic) (proof.Tactic, error) {
		if len(rest) != 0 {
			return nil, errors.Newf("%s: unexpected %q", cmd, rest[0])
		}
		return t, nil
	}

	switch cmd {
	case "attack":
		return finish(proof.Attack{})
	case "claim":
		n, err := name()
		if err != nil {
			return nil, err
		}
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Claim{Name: n, Ty: ty})
	case "reorder":
		return finish(proof.Reorder{})
	case "exact":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Exact{Tm: tm})
	case "fill":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Fill{Tm: tm})
	case "matchfill":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.MatchFill{Tm: tm})
	case "prepfill":
		n, err := name()
		if err != nil {
			return nil, err
		}
		args := make([]term.Name, 0, len(rest))
		for _, a := range rest {
			args = append(args, term.UN(a))
		}
		return proof.PrepFill{Fn: n, Args: args}, nil
	case "completefill":
		return finish(proof.CompleteFill{})
	case "regret":
		return finish(proof.Regret{})
	case "solve":
		return finish(proof.Solve{})
	case "startunify":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.StartUnify{Name: n})
	case "endunify":
		return finish(proof.EndUnify{})
	case "compute":
		return finish(proof.Compute{})
	case "hnf":
		return finish(proof.HNFCompute{})
	case "simplify":
		return finish(proof.Simplify{})
	case "computelet":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.ComputeLet{Name: n})
	case "evalin":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.EvalIn{Tm: tm})
	case "checkin":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.CheckIn{Tm: tm})
	case "intro":
		if len(rest) == 0 {
			return proof.Intro{}, nil
		}
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.Intro{Name: n})
	case "introty":
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return proof.IntroTy{Ty: ty}, nil
		}
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.IntroTy{Ty: ty, Name: n})
	case "forall":
		n, err := name()
		if err != nil {
			return nil, err
		}
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Forall{Name: n, Ty: ty})
	case "letbind":
		n, err := name()
		if err != nil {
			return nil, err
		}
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		val, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.LetBind{Name: n, Ty: ty, Val: val})
	case "expandlet":
		n, err := name()
		if err != nil {
			return nil, err
		}
		if len(rest) == 0 {
			return proof.ExpandLet{Name: n}, nil
		}
		val, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.ExpandLet{Name: n, Val: val})
	case "rewrite":
		tm, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Rewrite{Tm: tm})
	case "induction":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.Induction{Name: n})
	case "equiv":
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		return finish(proof.Equiv{Ty: ty})
	case "patvar":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.PatVar{Name: n})
	case "patbind":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.PatBind{Name: n})
	case "focus":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.Focus{Name: n})
	case "movelast":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.MoveLast{Name: n})
	case "defer":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.Defer{Name: n})
	case "defertype":
		n, err := name()
		if err != nil {
			return nil, err
		}
		ty, err := oneTerm()
		if err != nil {
			return nil, err
		}
		args := make([]term.Name, 0, len(rest))
		for _, a := range rest {
			args = append(args, term.UN(a))
		}
		return proof.DeferType{Name: n, Ty: ty, Args: args}, nil
	case "instance":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.Instance{Name: n})
	case "setinjective":
		n, err := name()
		if err != nil {
			return nil, err
		}
		return finish(proof.SetInjective{Name: n})
	case "matchproblems":
		if len(rest) == 1 && rest[0] == "all" {
			return proof.MatchProblems{All: true}, nil
		}
		return finish(proof.MatchProblems{})
	case "unifyproblems":
		return finish(proof.UnifyProblems{})
	case "state":
		return finish(proof.RenderState{})
	case "undo":
		return finish(proof.Undo{})
	case "qed":
		return finish(proof.QED{})
	}
	return nil, errors.Newf("unrecognised tactic %q", cmd)
}
