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

// Package debug prints terms and environments in a readable surface
// form for logs, the state-rendering tactic, and the CLI.
package debug

import (
	"fmt"
	"io"
	"strings"

	"velalang.org/go/internal/core/term"
)

// WriteTerm writes a readable rendering of t to w.
func WriteTerm(w io.Writer, t term.Term) {
	p := &printer{w: w}
	p.tm(t, false)
}

// TermString returns a readable rendering of t.
func TermString(t term.Term) string {
	var sb strings.Builder
	WriteTerm(&sb, t)
	return sb.String()
}

// WriteEnv writes one line per environment binder, innermost first.
func WriteEnv(w io.Writer, env term.Env) {
	for _, ee := range env {
		fmt.Fprintf(w, "  %v : %s\n", ee.Name, TermString(ee.B.Ty))
	}
}

type printer struct {
	w io.Writer
}

func (p *printer) tm(t term.Term, parens bool) {
	switch x := t.(type) {
	case nil:
		io.WriteString(p.w, "<nil>")
	case *term.Ref:
		io.WriteString(p.w, x.Name.String())
	case *term.App:
		if parens {
			io.WriteString(p.w, "(")
		}
		f, args := term.UnApply(x)
		p.tm(f, true)
		for _, a := range args {
			io.WriteString(p.w, " ")
			p.tm(a, true)
		}
		if parens {
			io.WriteString(p.w, ")")
		}
	case *term.Bind:
		if parens {
			io.WriteString(p.w, "(")
		}
		p.bind(x)
		if parens {
			io.WriteString(p.w, ")")
		}
	case *term.Sort:
		if x.Level == 0 {
			io.WriteString(p.w, "Type")
		} else {
			fmt.Fprintf(p.w, "Type%d", x.Level)
		}
	case *term.Erased:
		io.WriteString(p.w, "_")
	}
}

func (p *printer) bind(x *term.Bind) {
	switch x.B.Kind {
	case term.Lam:
		fmt.Fprintf(p.w, "\\%v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, " => ")
		p.tm(x.Scope, false)
	case term.Pi:
		fmt.Fprintf(p.w, "(%v : ", x.Name)
		p.tm(x.B.Ty, false)
		io.WriteString(p.w, ") -> ")
		p.tm(x.Scope, false)
	case term.Let:
		fmt.Fprintf(p.w, "let %v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, " = ")
		p.tm(x.B.Val, true)
		io.WriteString(p.w, " in ")
		p.tm(x.Scope, false)
	case term.Hole:
		fmt.Fprintf(p.w, "?%v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, ". ")
		p.tm(x.Scope, false)
	case term.Guess:
		fmt.Fprintf(p.w, "?%v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, " =?= ")
		p.tm(x.B.Val, true)
		io.WriteString(p.w, ". ")
		p.tm(x.Scope, false)
	case term.GHole:
		fmt.Fprintf(p.w, "?!%v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, ". ")
		p.tm(x.Scope, false)
	case term.PVar:
		fmt.Fprintf(p.w, "pat %v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, ". ")
		p.tm(x.Scope, false)
	case term.PVTy:
		fmt.Fprintf(p.w, "patTy %v : ", x.Name)
		p.tm(x.B.Ty, true)
		io.WriteString(p.w, ". ")
		p.tm(x.Scope, false)
	}
}
