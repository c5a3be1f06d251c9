// Copyright 2025 walteh LLC
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

package main

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/shiftrc/cmd/shiftrc/commands"
	"github.com/walteh/shiftrc/cmd/shiftrc/opts"
	"github.com/walteh/shiftrc/pkg/log"
)

func main() {
	// Setup logging
	logger := setupLogging()
	ctx := logger.WithContext(context.Background())

	// Create user logger. Feedback goes to stderr so reports on stdout
	// stay pipeable.
	pterm.SetDefaultOutput(os.Stderr)
	userLogger := log.NewUserLogger(ctx)

	// Create root options
	o := &opts.RootOpts{
		Console:    log.New(os.Stderr, zerolog.InfoLevel),
		UserLogger: userLogger,
	}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "shiftrc",
		Short: "A tool for migrating source trees with ordered rewrite rules",
		Long: `shiftrc applies configured rewrite phases to every file under a root
directory. Runs are idempotent: once a file is fully migrated, running
again changes nothing, so a large migration can land over many small
runs while the tree keeps building.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Add shared flags
	addRootFlags(rootCmd, o)

	// Add commands
	rootCmd.AddCommand(
		commands.NewMigrateCmd(o),
		commands.NewStatusCmd(o),
		commands.NewRulesCmd(o),
		NewVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
