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

// Package cmd implements the vela command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"velalang.org/go/vela/errors"
)

type flagName string

const (
	flagDefs  flagName = "defs"
	flagTrace flagName = "trace"
	flagDebug flagName = "debug"
)

func (f flagName) String(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString(string(f))
	return v
}

func (f flagName) Bool(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool(string(f))
	return v
}

// addProofFlags registers the flags shared by commands that run the
// engine.
func addProofFlags(f *pflag.FlagSet) {
	f.String(string(flagDefs), "", "load a YAML declarations manifest before running")
	f.Bool(string(flagTrace), false, "print the per-tactic log, including the unifier trace")
	f.Bool(string(flagDebug), false, "dump the final proof state")
}

// New creates the vela root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vela",
		Short: "vela drives the Vela proof engine",
		Long: `vela drives the interactive proof-state engine of the Vela language.

A proof is a script of tactics applied to a stated goal; the engine
refines a term with typed holes until the proof is closed.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newProveCmd())
	return cmd
}

// Main runs the vela command and returns its exit code.
func Main() int {
	if err := New().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		return 1
	}
	return 0
}

func printf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
