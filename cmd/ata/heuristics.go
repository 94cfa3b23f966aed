package main

import (
	"github.com/spf13/cobra"

	"ai_text_analyzer/internal/heuristics"
	"ai_text_analyzer/internal/output"
)

func newHeuristicsCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "heuristics",
		Short: "List the heuristics with their weights and threshold bands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			return output.Heuristics(cmd.OutOrStdout(), heuristics.All(), cfg)
		},
	}
}
