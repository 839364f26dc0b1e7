package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toolgate/toolgate/internal/audit"
	"github.com/toolgate/toolgate/internal/config"
	"github.com/toolgate/toolgate/internal/hooks"
	"github.com/toolgate/toolgate/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	verbose    bool
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "toolgate",
		Short: "Command safety policy engine for Claude Code tool calls",
		Long:  `toolgate is a PreToolUse hook for Claude Code. It reads one tool event from stdin, applies the configured safety rules, and allows or blocks the call through its exit code.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{
				Verbose: flags.verbose,
				Output:  cmd.ErrOrStderr(),
				JSON:    flags.logJSON,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the config file (default ~/.config/toolgate/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "write diagnostic logs as JSON")

	rootCmd.AddCommand(newPreToolUseCmd(flags))
	rootCmd.AddCommand(newListFlagsCmd())

	return rootCmd
}

func newPreToolUseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pre-tool-use",
		Short: "Evaluate safety rules before a tool call runs",
		Long:  `Reads one tool event from stdin as JSON and evaluates the rules enabled in the config. Exits 0 to allow the call and 2 to block it, with the reason on stderr.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := hooks.ParseToolEvent(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to parse tool event: %w", err)
			}

			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			var toolUseLog *audit.Log
			if cfg.Hooks.Enabled(hooks.FlagLogToolUse) {
				toolUseLog, err = audit.New(cfg.Audit.Path)
				if err != nil {
					logger.Warn("tool-use log unavailable", "error", err)
				}
			}

			router := hooks.NewRouter(hooks.NewGitProbe(), toolUseLog)
			decision, err := router.Route(event, cfg.Hooks, cwd)
			if err != nil {
				return fmt.Errorf("failed to route tool event: %w", err)
			}

			if !decision.Allowed {
				fmt.Fprintf(cmd.ErrOrStderr(), "Blocked by rule %s: %s\n", decision.RuleName, decision.Message)
				os.Exit(decision.ExitCode())
			}

			return nil
		},
	}
}

func newListFlagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-flags",
		Short: "List the rule flags available in the config",
		Long:  `Prints every rule flag the hooks table of the config file accepts, with the tool it applies to and what it blocks. Flags are printed in evaluation order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FLAG\tTOOL\tDESCRIPTION")
			for _, rule := range hooks.Catalog() {
				tool := rule.Tool
				if tool == hooks.ToolAny {
					tool = "any"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", rule.Flag, tool, rule.Description)
			}
			return w.Flush()
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	return config.LoadFile(path)
}
