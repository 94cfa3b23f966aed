package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/workspace"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	debug     bool
	config    string
	workspace string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "ata",
		Short: "ata - heuristic AI-likelihood scoring for text",
		Long: `ata scores how likely a text is to be machine generated using a set of
lexical, readability and structural heuristics. It needs no model and no
network access; the score is an indication, not proof.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "Config file (default <workspace>/configs/config.yaml when present)")
	cmd.PersistentFlags().StringVar(&opts.workspace, "workspace", "", "Workspace directory (default ~/"+workspace.BaseDirName+")")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if opts.debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	}

	cmd.AddCommand(newAnalyzeCommand(opts))
	cmd.AddCommand(newHeuristicsCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

func (o *globalOptions) workspaceRoot() (string, error) {
	if o.workspace != "" {
		return o.workspace, nil
	}
	return workspace.DefaultRoot()
}

// configPath is the explicit --config file, or the workspace config when it exists.
func (o *globalOptions) configPath() string {
	if o.config != "" {
		return o.config
	}
	root, err := o.workspaceRoot()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(workspace.ConfigPath(root)); err != nil {
		return ""
	}
	return workspace.ConfigPath(root)
}

// loadConfig builds the configuration with flags of cmd bound over file and
// environment values.
func (o *globalOptions) loadConfig(cmd *cobra.Command, bindings map[string]string) (config.Config, error) {
	v := viper.New()
	for key, flag := range bindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}
	path := o.configPath()
	slog.Debug("loading config", "path", path)
	return config.Load(v, path)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "ata %s\n", version)
			return err
		},
	}
}
