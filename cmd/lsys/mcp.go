package main

import (
	"github.com/aretw0/lindenmayer/internal/cli"
	"github.com/aretw0/lindenmayer/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Model Context Protocol server",
	Long: `Exposes list_grammars, describe_grammar, expand_grammar and define_grammar
as MCP tools, over stdio by default or over SSE with --sse.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng, cfg, logger, closeStore := setup(cmd)
		defer closeStore()

		server := mcp.NewServer(eng, logger)

		sse, _ := cmd.Flags().GetBool("sse")
		if !sse {
			if err := server.ServeStdio(); err != nil {
				fail("%v", err)
			}
			return
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		if err := server.ServeSSE(ctx, cfg.Port); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().IntP("port", "p", 8080, "Port for --sse (env LSYS_PORT)")
}
