package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/shiftrc/cmd/shiftrc/opts"
	"github.com/walteh/shiftrc/pkg/config"
	"github.com/walteh/shiftrc/pkg/log"
	"github.com/walteh/shiftrc/pkg/migrate"
	"github.com/walteh/shiftrc/pkg/report"
	"github.com/walteh/shiftrc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// NewMigrateCmd creates a new migrate command
func NewMigrateCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		dryRun   bool
		failFast bool
		workers  int
		rootDir  string
		format   string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the configured rewrite phases to the tree",
		Long: `Migrate loads the config, walks the root, and rewrites every selected file.
It will:
1. Load and compile the configured phases
2. Enumerate files under the root in a stable order
3. Apply every phase to each file, writing back changed content
4. Print a report of what changed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "migrate").Logger().WithContext(ctx)

			// Load config
			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if rootDir != "" {
				cfg.Root = rootDir
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			phases, err := cfg.Compile()
			if err != nil {
				return errors.Errorf("compiling config: %w", err)
			}

			formatter, err := report.NewFormatter(format)
			if err != nil {
				return err
			}
			if tf, ok := formatter.(*report.TextFormatter); ok {
				tf.Verbose = verbose
			}

			tree, err := walker.NewDirTree(cfg.Root)
			if err != nil {
				return errors.Errorf("opening migration root: %w", err)
			}

			console := opts.Console
			console.StartRun(ctx, log.RunOperation{
				Root:   cfg.Root,
				Config: opts.ConfigFile,
				Phases: len(phases),
				DryRun: dryRun,
			})

			m, err := migrate.New(migrate.Options{
				Tree:     tree,
				Filter:   cfg.Filter(),
				Phases:   phases,
				Workers:  cfg.Workers,
				DryRun:   dryRun,
				FailFast: failFast,
				OnResult: func(res report.FileResult) {
					if res.Status == report.StatusUnchanged && !verbose {
						return
					}
					console.LogFileEvent(ctx, log.FileEvent{
						Path:   res.Path,
						Status: res.Status.String(),
						Phases: len(res.FiredPhases),
						Phase:  res.Phase,
						Rule:   res.Rule,
					})
				},
			})
			if err != nil {
				return errors.Errorf("creating migrator: %w", err)
			}

			rep, err := m.Run(ctx)
			if err != nil {
				return errors.Errorf("running migration: %w", err)
			}
			console.EndRun(ctx)

			// Per-file errors are contained in the report and do not fail
			// the command; only fatal setup errors and fail-fast do.
			if rep.HasErrors() {
				console.Warningf("%d file(s) errored and were left untouched", rep.Errored)
			}

			out, err := formatter.Format(rep)
			if err != nil {
				return errors.Errorf("formatting report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing any file")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort on the first file error")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (overrides config)")
	cmd.Flags().StringVar(&rootDir, "root", "", "migration root (overrides config)")
	cmd.Flags().StringVar(&format, "report", "text", "report format (text or json)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show unchanged files too")

	return cmd
}
