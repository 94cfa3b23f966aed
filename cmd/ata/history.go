package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ai_text_analyzer/internal/db"
	"ai_text_analyzer/internal/output"
	"ai_text_analyzer/internal/workspace"
)

func newHistoryCommand(global *globalOptions) *cobra.Command {
	var (
		limit int
		id    string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved analyses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := global.workspaceRoot()
			if err != nil {
				return err
			}
			dbPath := workspace.DBPath(root)
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				return output.History(cmd.OutOrStdout(), nil, time.Now())
			}
			if id != "" {
				results, err := db.LoadResults(dbPath, id)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return fmt.Errorf("no saved analysis with id %s", id)
				}
				return output.Results(cmd.OutOrStdout(), results)
			}
			analyses, err := db.ListReports(dbPath, limit)
			if err != nil {
				return err
			}
			return output.History(cmd.OutOrStdout(), analyses, time.Now())
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of analyses to list (0 = all)")
	cmd.Flags().StringVar(&id, "id", "", "Show the heuristic results of one analysis")
	return cmd
}
