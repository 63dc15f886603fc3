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

package unify_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/prelude"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/unify"
)

func v(n string) term.Term { return term.Var(term.UN(n)) }

func names(ns ...string) []term.Name {
	out := make([]term.Name, len(ns))
	for i, n := range ns {
		out[i] = term.UN(n)
	}
	return out
}

func TestUnifySolvesHole(t *testing.T) {
	ctx := prelude.Context()
	ns, probs, err := unify.Unify(ctx, nil, v("h"), term.MkApp(v("S"), v("Z")), nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(probs, 0))
	qt.Assert(t, qt.HasLen(ns, 1))
	qt.Assert(t, qt.Equals(ns[0].Name, term.UN("h")))
	qt.Assert(t, qt.IsTrue(term.Equal(ns[0].Value, term.MkApp(v("S"), v("Z")))))
}

func TestUnifySymmetric(t *testing.T) {
	ctx := prelude.Context()
	ns, _, err := unify.Unify(ctx, nil, v("Z"), v("h"), nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 1))
	qt.Assert(t, qt.IsTrue(term.Equal(ns[0].Value, v("Z"))))
}

func TestUnifyConstructorDecomposition(t *testing.T) {
	ctx := prelude.Context()
	a := term.MkApp(v("S"), v("h"))
	b := term.MkApp(v("S"), term.MkApp(v("S"), v("Z")))
	ns, probs, err := unify.Unify(ctx, nil, a, b, nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(probs, 0))
	qt.Assert(t, qt.HasLen(ns, 1))
	qt.Assert(t, qt.IsTrue(term.Equal(ns[0].Value, term.MkApp(v("S"), v("Z")))))
}

func TestUnifyConstructorClash(t *testing.T) {
	ctx := prelude.Context()
	a := term.MkApp(v("S"), v("Z"))
	_, _, err := unify.Unify(ctx, nil, a, v("Z"), nil, nil)
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsFalse(unify.Recoverable(err)))
}

func TestUnifyOccursCheck(t *testing.T) {
	ctx := prelude.Context()
	_, _, err := unify.Unify(ctx, nil, v("h"), term.MkApp(v("S"), v("h")), nil, names("h"))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnifyDefersOpaqueHead(t *testing.T) {
	ctx := prelude.Context()
	// f is declared but not injective: (f h) against (f Z) is blocked.
	f := term.UN("f")
	nat := v("Nat")
	ctx.AddDef(&defs.Def{
		Name: f,
		Kind: defs.TyDecl,
		Ty: &term.Bind{
			Name:  term.UN("k"),
			B:     &term.Binder{Kind: term.Pi, Ty: nat},
			Scope: nat,
		},
	})
	a := term.MkApp(v("f"), v("h"))
	b := term.MkApp(v("f"), v("Z"))
	ns, probs, err := unify.Unify(ctx, nil, a, b, nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 0))
	qt.Assert(t, qt.HasLen(probs, 1))
	qt.Assert(t, qt.Equals(probs[0].Mode, unify.ModeUnify))

	// With f injective the same equation decomposes.
	inj := term.NameSet{f: true}
	ns, probs, err = unify.Unify(ctx, nil, a, b, inj, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(probs, 0))
	qt.Assert(t, qt.HasLen(ns, 1))
}

func TestUnifyBinders(t *testing.T) {
	ctx := prelude.Context()
	nat := v("Nat")
	mk := func(body term.Term) term.Term {
		return &term.Bind{
			Name:  term.UN("x"),
			B:     &term.Binder{Kind: term.Lam, Ty: nat},
			Scope: body,
		}
	}
	ns, _, err := unify.Unify(ctx, nil, mk(v("h")), mk(v("Z")), nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 1))
	qt.Assert(t, qt.IsTrue(term.Equal(ns[0].Value, v("Z"))))
}

func TestMatchUnifyOneSided(t *testing.T) {
	ctx := prelude.Context()
	// The pattern's hole binds.
	ns, err := unify.MatchUnify(ctx, nil, v("h"), v("Z"), nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 1))

	// A hole on the right does not.
	_, err = unify.MatchUnify(ctx, nil, v("Z"), v("h"), nil, names("h"))
	qt.Assert(t, qt.IsNotNil(err))
}

func TestUnifyConsistentBindings(t *testing.T) {
	ctx := prelude.Context()
	// h must equal both sides; consistent bindings merge, conflicting
	// constructor bindings clash.
	a := term.MkApp(v("S"), v("h"), v("h"))
	// S is unary, but decomposition is argwise over the spine.
	b := term.MkApp(v("S"), v("Z"), v("Z"))
	ns, _, err := unify.Unify(ctx, nil, a, b, nil, names("h"))
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(ns, 1))

	c := term.MkApp(v("S"), v("Z"), term.MkApp(v("S"), v("Z")))
	_, _, err = unify.Unify(ctx, nil, a, c, nil, names("h"))
	qt.Assert(t, qt.IsNotNil(err))
}
