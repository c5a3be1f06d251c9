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
	"github.com/walteh/shiftrc/pkg/rewrite"
	"github.com/walteh/shiftrc/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates a new status command
func NewStatusCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		showDiff bool
		format   string
		rootDir  string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the tree still has pending rewrites",
		Long: `Status runs every phase without writing anything and reports what would
change. It will:
1. Load and compile the configured phases
2. Rewrite each file in memory only
3. Report files that are not fully migrated yet
4. Exit nonzero when rewrites are pending`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "status").Logger().WithContext(ctx)

			// Load config
			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}
			if rootDir != "" {
				cfg.Root = rootDir
			}

			phases, err := cfg.Compile()
			if err != nil {
				return errors.Errorf("compiling config: %w", err)
			}

			tree, err := walker.NewDirTree(cfg.Root)
			if err != nil {
				return errors.Errorf("opening migration root: %w", err)
			}

			log.SetVerbose(verbose)

			jsonOut := format == "json"
			var onResult func(report.FileResult)
			if !jsonOut {
				userLogger := opts.UserLogger
				onResult = func(res report.FileResult) {
					switch res.Status {
					case report.StatusChanged:
						userLogger.LogFileChange(log.FileChange{
							Type:        log.FilePending,
							Path:        res.Path,
							Description: fmt.Sprintf("%d phase(s)", len(res.FiredPhases)),
						})
					case report.StatusErrored:
						userLogger.LogFileChange(log.FileChange{
							Type:        log.FileFailed,
							Path:        res.Path,
							Description: res.Phase + "/" + res.Rule,
							Error:       errors.New(res.Error),
						})
					default:
						userLogger.LogFileChange(log.FileChange{
							Type: log.FileUnchanged,
							Path: res.Path,
						})
					}
				}
			}

			// Status never writes, whatever the config says
			m, err := migrate.New(migrate.Options{
				Tree:     tree,
				Filter:   cfg.Filter(),
				Phases:   phases,
				Workers:  cfg.Workers,
				DryRun:   true,
				OnResult: onResult,
			})
			if err != nil {
				return errors.Errorf("creating migrator: %w", err)
			}

			rep, err := m.Run(ctx)
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			if jsonOut {
				out, err := (&report.JSONFormatter{}).Format(rep)
				if err != nil {
					return errors.Errorf("formatting report: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			}

			if showDiff {
				if err := printDiffs(cmd, tree, phases, rep); err != nil {
					return err
				}
			}

			if !jsonOut {
				opts.UserLogger.LogRunSummary(fmt.Sprintf("%d scanned, %d pending, %d unchanged, %d errored",
					rep.Scanned, rep.Changed, rep.Unchanged, rep.Errored))
			}

			if rep.HasChanges() {
				return errors.Errorf("%d file(s) have pending rewrites", rep.Changed)
			}

			if !jsonOut {
				opts.UserLogger.LogValidation(true, "Tree is fully migrated", nil)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "show a unified diff of pending rewrites")
	cmd.Flags().StringVar(&format, "report", "text", "report format (text or json)")
	cmd.Flags().StringVar(&rootDir, "root", "", "migration root (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show unchanged files too")

	return cmd
}

// printDiffs renders what each pending file would become. Content is
// rewritten again here; the runner holds no file content after a run.
func printDiffs(cmd *cobra.Command, tree walker.Tree, phases []rewrite.Phase, rep *report.Report) error {
	ctx := cmd.Context()

	for _, res := range rep.Files {
		if res.Status != report.StatusChanged {
			continue
		}

		data, err := tree.ReadFile(ctx, res.Path)
		if err != nil {
			return errors.Errorf("rereading %s: %w", res.Path, err)
		}

		after, err := rewriteContent(phases, string(data))
		if err != nil {
			return errors.Errorf("rewriting %s: %w", res.Path, err)
		}

		fmt.Fprint(cmd.OutOrStdout(), report.Diff(res.Path, string(data), after))
	}

	return nil
}

// rewriteContent applies every phase the way the runner does: guards see
// the original content, rules see the running result.
func rewriteContent(phases []rewrite.Phase, content string) (string, error) {
	current := content
	for _, phase := range phases {
		out, _, err := phase.Apply(content, current)
		if err != nil {
			return "", err
		}
		current = out
	}
	return current, nil
}
