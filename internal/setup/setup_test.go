package setup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planbrew/planbrew/internal/api"
)

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	session, err := api.NewSession(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, session.Set("tok"))
	c, err := api.NewClient(srv.URL, session, nil)
	require.NoError(t, err)
	return c
}

func TestEnsureProject_ReturnsExistingKeyedProject(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/with-keys", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"projects":[{"id":"p1","name":"Site","apiKey":"pk_live"}]}}`))
	}))

	res, err := EnsureProject(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "p1", res.ProjectID)
	assert.Equal(t, "pk_live", res.APIKey)
	assert.False(t, res.Created)
}

func TestEnsureProject_QuickCreatesWhenNoneExist(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/with-keys":
			w.Write([]byte(`{"success":true,"data":{"projects":[]}}`))
		case "/projects/quick-create":
			require.Equal(t, http.MethodPost, r.Method)
			var body struct {
				Name string `json:"name"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "My Project", body.Name)
			w.Write([]byte(`{"success":true,"data":{"projectId":"p_new","apiKey":"pk_new"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	res, err := EnsureProject(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "p_new", res.ProjectID)
	assert.Equal(t, "pk_new", res.APIKey)
	assert.True(t, res.Created)
}

func TestEnsureProject_CreateFailureWraps(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects/with-keys":
			w.Write([]byte(`{"success":true,"data":{"projects":[]}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"quota exceeded"}`))
		}
	}))

	_, err := EnsureProject(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create project")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestMCPConfig_JSONTools(t *testing.T) {
	g := Guide{APIURL: "https://api.planbrew.dev/api/v1", APIKey: "pk_x", ProjectID: "p1"}

	for _, tool := range []Tool{ToolClaudeCode, ToolCursor, ToolClaudeDesktop} {
		out := g.MCPConfig(tool)

		var parsed struct {
			MCPServers map[string]struct {
				Command string            `json:"command"`
				Args    []string          `json:"args"`
				Env     map[string]string `json:"env"`
			} `json:"mcpServers"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &parsed), tool)
		srv, ok := parsed.MCPServers["planbrew"]
		require.True(t, ok, tool)
		assert.Equal(t, "npx", srv.Command)
		assert.Equal(t, []string{"-y", "planbrew-mcp"}, srv.Args)
		assert.Equal(t, "pk_x", srv.Env["PLANBREW_API_KEY"])
		assert.Equal(t, "p1", srv.Env["PLANBREW_PROJECT_ID"])
		assert.Equal(t, "https://api.planbrew.dev/api/v1", srv.Env["PLANBREW_API_URL"])
	}
}

func TestMCPConfig_CodexIsTOML(t *testing.T) {
	g := Guide{APIURL: "http://localhost:5001/api/v1", APIKey: "pk_x", ProjectID: "p1"}
	out := g.MCPConfig(ToolCodex)

	assert.Contains(t, out, "[mcp_servers.planbrew]")
	assert.Contains(t, out, `command = "npx"`)
	assert.Contains(t, out, `PLANBREW_API_KEY = "pk_x"`)
	assert.Contains(t, out, `PLANBREW_PROJECT_ID = "p1"`)
	assert.NotContains(t, out, "mcpServers")
}

func TestConfigPathAndContextFile(t *testing.T) {
	file, loc := ConfigPath(ToolClaudeCode)
	assert.Equal(t, ".mcp.json", file)
	assert.NotEmpty(t, loc)

	file, _ = ConfigPath(ToolCodex)
	assert.Equal(t, ".codex/config.toml", file)

	ctx, _, ok := ContextFile(ToolCursor)
	assert.True(t, ok)
	assert.Equal(t, ".cursorrules", ctx)

	_, _, ok = ContextFile(ToolClaudeDesktop)
	assert.False(t, ok, "claude desktop has no project context file")
}

func TestToolValidAndLabels(t *testing.T) {
	for _, tool := range Tools {
		assert.True(t, tool.Valid())
		assert.NotEmpty(t, tool.Label())
	}
	assert.False(t, Tool("vim").Valid())
}

func TestTestConnection(t *testing.T) {
	ok := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pk_x", r.Header.Get("X-API-KEY"))
		w.Write([]byte(`{"totalUpdates":3}`))
	}))
	res := TestConnection(context.Background(), ok, "p1", "pk_x")
	assert.True(t, res.OK)
	assert.NoError(t, res.Err)

	bad := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	res = TestConnection(context.Background(), bad, "p1", "pk_x")
	assert.False(t, res.OK)
	assert.Error(t, res.Err)
}
