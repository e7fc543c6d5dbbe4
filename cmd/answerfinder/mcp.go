package main

import (
	"github.com/spf13/cobra"

	"yashubustudio/answerfinder/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve get_answer and find_best_match as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Queries arriving before the corpus loads see an empty corpus.
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()
		return mcpserver.New(rt.service, rt.logger).Serve(cmd.Context())
	},
}
