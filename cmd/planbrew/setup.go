package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planbrew/planbrew/internal/setup"
)

var setupTest bool

var setupCmd = &cobra.Command{
	Use:   "setup [tool]",
	Short: "Print MCP setup instructions for a coding tool",
	Long: `Print the MCP server configuration for a coding tool, ensuring a
project with an API key exists first.

Supported tools: claude-code, cursor, claude-desktop, codex.
With no argument, instructions for every tool are printed.

Examples:
  planbrew setup claude-code
  planbrew setup codex --test`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupTest, "test", false, "verify the API key against the backend after printing")
}

func runSetup(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tools := setup.Tools
	if len(args) == 1 {
		tool := setup.Tool(args[0])
		if !tool.Valid() {
			return fmt.Errorf("unknown tool %q: want one of claude-code, cursor, claude-desktop, codex", args[0])
		}
		tools = []setup.Tool{tool}
	}

	if err := a.requireSignIn(); err != nil {
		return err
	}

	project, err := setup.EnsureProject(cmd.Context(), a.client)
	if err != nil {
		return err
	}
	if project.Created {
		fmt.Fprintln(cmd.OutOrStdout(), "Created project 'My Project' with a fresh API key.")
		fmt.Fprintln(cmd.OutOrStdout())
	}

	guide := setup.Guide{
		APIURL:    a.cfg.API.BaseURL,
		APIKey:    project.APIKey,
		ProjectID: project.ProjectID,
	}

	out := cmd.OutOrStdout()
	for _, tool := range tools {
		file, location := setup.ConfigPath(tool)
		fmt.Fprintf(out, "== %s ==\n", tool.Label())
		fmt.Fprintf(out, "Add this to %s in %s:\n\n", file, location)
		fmt.Fprintln(out, guide.MCPConfig(tool))
		fmt.Fprintln(out)

		if ctxFile, ctxLoc, ok := setup.ContextFile(tool); ok {
			fmt.Fprintf(out, "Then add the tracking snippet to %s in %s:\n\n", ctxFile, ctxLoc)
			fmt.Fprintln(out, setup.TrackingSnippet())
			fmt.Fprintln(out)
		}
	}

	if setupTest {
		res := setup.TestConnection(cmd.Context(), a.client, project.ProjectID, project.APIKey)
		if !res.OK {
			a.logger.Debug("connection test failed")
			fmt.Fprintln(out, "Connection failed. Check that the backend is reachable and the key is active.")
			return nil
		}
		fmt.Fprintln(out, "Connection OK — the API key works.")
	}
	return nil
}
