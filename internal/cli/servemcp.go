package cli

import (
	"github.com/spf13/cobra"

	"github.com/kompass-sh/sjq/internal/mcpserver"
	"github.com/kompass-sh/sjq/internal/pipeline"
)

var serveMCPCmd = &cobra.Command{
	Use: "serve-mcp",
	Short: "Start an MCP stdio tool server exposing sjq_query",
	Long: "Starts a github.com/modelcontextprotocol/go-sdk server over stdio exposing sjq_query, a tool that runs the same compiler and engine the CLI uses against an in-memory JSON buffer.",
	RunE: runServeMCP,
}

func init() {
	serveMCPCmd.Flags().Int("concurrency", 0, "max simultaneous engine runs (default: runtime.NumCPU())")
	rootCmd.AddCommand(serveMCPCmd)
}

func runServeMCP(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("concurrency")
	srv := mcpserver.New(limit)
	if err := srv.Run(cmd.Context()); err != nil {
		return pipeline.NewPipelineError("mcp server failed", err)
	}
	return nil
}
