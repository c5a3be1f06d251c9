package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/shiftrc/cmd/shiftrc/opts"
	"github.com/walteh/shiftrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the configured phases and rules in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "rules").Logger().WithContext(ctx)

			cfg, err := config.Load(ctx, opts.ConfigFile)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			// Compile so broken patterns surface here, not mid-run
			if _, err := cfg.Compile(); err != nil {
				return errors.Errorf("compiling config: %w", err)
			}

			root := pterm.TreeNode{Text: opts.ConfigFile}
			for _, phase := range cfg.Phases {
				node := pterm.TreeNode{
					Text: fmt.Sprintf("%s (%d rule(s))", phase.Name, len(phase.Rules)),
				}
				for _, rule := range phase.Rules {
					node.Children = append(node.Children, pterm.TreeNode{Text: describeRule(rule)})
				}
				root.Children = append(root.Children, node)
			}

			out, err := pterm.DefaultTree.WithRoot(root).Srender()
			if err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	return cmd
}

// describeRule renders one rule the way it was declared: the matcher
// kind, its expression, and the replacement.
func describeRule(r config.RuleConfig) string {
	var kind string
	switch {
	case r.Pattern != "":
		kind = fmt.Sprintf("pattern %q", r.Pattern)
	case r.Literal != "":
		kind = fmt.Sprintf("literal %q", r.Literal)
	case r.Call != "":
		kind = fmt.Sprintf("call %q", r.Call)
	}

	desc := fmt.Sprintf("%s: %s -> %q", r.Name, kind, r.Replace)
	if r.Guard != nil {
		desc += " (guarded)"
	}

	return desc
}
