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

package script

import (
	"strings"

	"velalang.org/go/internal/core/defs"
	"velalang.org/go/internal/core/proof"
	"velalang.org/go/internal/core/term"
	"velalang.org/go/internal/core/typecheck"
	"velalang.org/go/vela/errors"
)

// A Result is the outcome of running a script.
type Result struct {
	Final *proof.ProofState
	Log   []string
}

// Options configure a script run.
type Options struct {
	// UnifyLog enables the unifier trace in the tactic log.
	UnifyLog bool
}

// RunScript runs a tactic script against ctx. The first effective line
// must be a theorem directive:
//
//	theorem <name> : <goal term>
//
// Every following line is one tactic. Errors are annotated with the
// failing line number.
func RunScript(ctx *defs.Context, src string) (*Result, error) {
	return RunScriptOpts(ctx, src, Options{})
}

// RunScriptOpts is RunScript with explicit options.
func RunScriptOpts(ctx *defs.Context, src string, opts Options) (*Result, error) {
	var ps *proof.ProofState
	res := &Result{}

	for i, line := range strings.Split(src, "\n") {
		lineno := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if ps == nil {
			name, goal, err := parseTheorem(ctx, trimmed)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineno)
			}
			ps = proof.NewProof(name, ctx, goal)
			ps.SetUnifyLog(opts.UnifyLog)
			continue
		}

		t, err := ParseTactic(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		if t == nil {
			continue
		}
		next, log, err := proof.ProcessTactic(t, ps)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: %s", lineno, trimmed)
		}
		ps = next
		if log != "" {
			res.Log = append(res.Log, strings.TrimRight(log, "\n"))
		}
	}

	if ps == nil {
		return nil, errors.Newf("script has no theorem directive")
	}
	res.Final = ps
	return res, nil
}

func parseTheorem(ctx *defs.Context, line string) (term.Name, term.Term, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return term.Name{}, nil, err
	}
	if len(tokens) < 4 || tokens[0] != "theorem" || tokens[2] != ":" {
		return term.Name{}, nil, errors.Newf("expected \"theorem <name> : <goal>\", got %q", line)
	}
	goalRaw, err := ParseTerm(tokens[3:])
	if err != nil {
		return term.Name{}, nil, err
	}
	goal, err := typecheck.CheckType(ctx, nil, goalRaw)
	if err != nil {
		return term.Name{}, nil, err
	}
	return term.UN(tokens[1]), goal, nil
}
