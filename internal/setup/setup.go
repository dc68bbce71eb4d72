// Package setup prepares an account for tracking: it ensures a project
// with an API key exists, emits the MCP configuration snippets for the
// supported coding tools, and offers a best-effort connectivity test.
package setup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/planbrew/planbrew/internal/api"
)

// Tool identifies a supported coding tool.
type Tool string

const (
	ToolClaudeCode    Tool = "claude-code"
	ToolCursor        Tool = "cursor"
	ToolClaudeDesktop Tool = "claude-desktop"
	ToolCodex         Tool = "codex"
)

// Tools lists the supported tools in display order.
var Tools = []Tool{ToolClaudeCode, ToolCursor, ToolClaudeDesktop, ToolCodex}

// Label returns the display name.
func (t Tool) Label() string {
	switch t {
	case ToolClaudeCode:
		return "Claude Code"
	case ToolCursor:
		return "Cursor"
	case ToolClaudeDesktop:
		return "Claude Desktop"
	case ToolCodex:
		return "Codex"
	default:
		return string(t)
	}
}

// Valid reports whether t names a supported tool.
func (t Tool) Valid() bool {
	switch t {
	case ToolClaudeCode, ToolCursor, ToolClaudeDesktop, ToolCodex:
		return true
	}
	return false
}

// Guide templates the per-tool setup instructions for one project.
type Guide struct {
	APIURL    string
	APIKey    string
	ProjectID string
}

// MCPConfig renders the MCP server configuration snippet for the tool:
// TOML for codex, JSON for everything else. Emitted as text only — the
// user pastes it into their tool's config file.
func (g Guide) MCPConfig(t Tool) string {
	if t == ToolCodex {
		return fmt.Sprintf(`[mcp_servers.planbrew]
command = "npx"
args = ["-y", "planbrew-mcp"]

[mcp_servers.planbrew.env]
PLANBREW_API_URL = %q
PLANBREW_API_KEY = %q
PLANBREW_PROJECT_ID = %q`, g.APIURL, g.APIKey, g.ProjectID)
	}

	cfg := map[string]any{
		"mcpServers": map[string]any{
			"planbrew": map[string]any{
				"command": "npx",
				"args":    []string{"-y", "planbrew-mcp"},
				"env": map[string]string{
					"PLANBREW_API_URL":    g.APIURL,
					"PLANBREW_API_KEY":    g.APIKey,
					"PLANBREW_PROJECT_ID": g.ProjectID,
				},
			},
		},
	}
	b, _ := json.MarshalIndent(cfg, "", "  ")
	return string(b)
}

// ConfigPath returns the config file name and where it lives for the
// tool.
func ConfigPath(t Tool) (file, location string) {
	switch t {
	case ToolClaudeCode:
		return ".mcp.json", "your project root"
	case ToolCursor:
		return ".cursor/mcp.json", "your project root"
	case ToolClaudeDesktop:
		return "claude_desktop_config.json", `~/Library/Application Support/Claude/ (Mac) or %APPDATA%\Claude\ (Windows)`
	case ToolCodex:
		return ".codex/config.toml", "your project root (or ~/.codex/config.toml for global)"
	default:
		return "", ""
	}
}

// ContextFile returns the tool's project-memory file, when it has one.
func ContextFile(t Tool) (file, location string, ok bool) {
	switch t {
	case ToolClaudeCode:
		return "CLAUDE.md", "your project root", true
	case ToolCursor:
		return ".cursorrules", "your project root", true
	case ToolCodex:
		return "AGENTS.md", "your project root", true
	default:
		return "", "", false
	}
}

// TrackingSnippet is the project-memory blurb users drop into their
// tool's context file so sessions save and recall progress proactively.
func TrackingSnippet() string {
	return `## PlanBrew - Project Memory

You have access to PlanBrew, which remembers your project across coding sessions.

After making progress, save it:
- save_progress: what you worked on and current status
- mark_complete: when a feature/task is finished
- save_session: end-of-session summary of what was done

When you need context, recall it:
- recall_work: search past work by topic or date
- get_last_session: what happened in the previous session
- get_history: activity feed for any time period
- get_status: overall project health and pace

Use these proactively. Save progress as you go so future sessions can pick up seamlessly.`
}

// Result is an ensured project.
type Result struct {
	ProjectID string
	APIKey    string
	// Created is true when no keyed project existed and one was made.
	Created bool
}

// EnsureProject returns the first project that already has an API key,
// or quick-creates one. A creation failure propagates so the caller can
// show the static failure message.
func EnsureProject(ctx context.Context, c *api.Client) (*Result, error) {
	projects, err := c.ProjectsWithKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) > 0 && projects[0].APIKey != "" {
		return &Result{ProjectID: projects[0].ID, APIKey: projects[0].APIKey}, nil
	}

	projectID, apiKey, err := c.QuickCreateProject(ctx, "My Project")
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &Result{ProjectID: projectID, APIKey: apiKey, Created: true}, nil
}

// ConnResult is the explicit outcome of the connectivity test. The
// caller decides whether to surface Err; typically it only shows a
// transient "Connection failed".
type ConnResult struct {
	OK  bool
	Err error
}

// TestConnection checks the project's API key against the overview
// endpoint the MCP producer uses. Best effort: the result is a value,
// never a propagated error.
func TestConnection(ctx context.Context, c *api.Client, projectID, apiKey string) ConnResult {
	if err := c.Overview(ctx, projectID, apiKey); err != nil {
		return ConnResult{Err: err}
	}
	return ConnResult{OK: true}
}
