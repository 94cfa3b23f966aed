package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai_text_analyzer/internal/config"
	"ai_text_analyzer/internal/workspace"
)

func newConfigCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the analyzer configuration",
	}
	cmd.AddCommand(newConfigInitCommand(global))
	cmd.AddCommand(newConfigShowCommand(global))
	return cmd
}

func newConfigInitCommand(global *globalOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the workspace and its default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := global.workspaceRoot()
			if err != nil {
				return err
			}
			root, err := workspace.EnsureAt(base)
			if err != nil {
				return err
			}
			path := workspace.ConfigPath(root)
			if force {
				if err := workspace.WriteConfig(path, config.Default()); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "workspace ready at %s\nconfig: %s\n", root, path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file with the defaults")
	return cmd
}

func newConfigShowCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			raw, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}
}
