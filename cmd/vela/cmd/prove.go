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

package cmd

import (
	"io"
	"os"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"velalang.org/go/internal/core/debug"
	"velalang.org/go/internal/core/prelude"
	"velalang.org/go/internal/script"
)

// newProveCmd creates a new prove command.
func newProveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prove <script>",
		Short: "run a tactic script",
		Long: `prove runs a tactic script and prints the resulting proof term.

The script starts with a theorem directive and applies one tactic per
line:

  theorem id : (pi A type (pi x A A))
  intro A
  intro x
  fill x
  solve
  qed

Use "-" to read the script from standard input. Extra declarations can
be loaded from a YAML manifest with --defs.
`,
		Args: cobra.ExactArgs(1),
		RunE: runProve,
	}
	addProofFlags(cmd.Flags())
	return cmd
}

func runProve(cmd *cobra.Command, args []string) error {
	var src []byte
	var err error
	if args[0] == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	ctx := prelude.Context()
	if path := flagDefs.String(cmd); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := script.LoadDecls(data, ctx); err != nil {
			return err
		}
	}

	res, err := script.RunScriptOpts(ctx, string(src), script.Options{
		UnifyLog: flagTrace.Bool(cmd),
	})
	if err != nil {
		return err
	}

	if flagTrace.Bool(cmd) {
		for _, l := range res.Log {
			printf(cmd, "%s\n", l)
		}
	}
	if flagDebug.Bool(cmd) {
		printf(cmd, "%# v\n", pretty.Formatter(res.Final))
	}

	ps := res.Final
	printf(cmd, "%s\n", debug.TermString(ps.Term()))
	if ps.Done() {
		printf(cmd, "qed.\n")
	} else {
		printf(cmd, "open holes: %d\n", len(ps.Holes()))
	}
	return nil
}
