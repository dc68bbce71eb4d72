package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/planbrew/planbrew/internal/activity"
	"github.com/planbrew/planbrew/internal/insight"
	"github.com/planbrew/planbrew/internal/week"
)

// isoMillis renders timestamps the way the backend expects its from/to
// query parameters: UTC with millisecond precision.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Project is one tracked project with its MCP ingest key. APIKey is empty
// when no key has been issued yet.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	APIKey string `json:"apiKey,omitempty"`
}

// ProjectsWithKeys lists the caller's projects including API keys.
func (c *Client) ProjectsWithKeys(ctx context.Context) ([]Project, error) {
	var data struct {
		Projects []Project `json:"projects"`
	}
	if err := c.Get(ctx, "/projects/with-keys", &data); err != nil {
		return nil, err
	}
	return data.Projects, nil
}

// QuickCreateProject creates a project with an API key in one call.
func (c *Client) QuickCreateProject(ctx context.Context, name string) (projectID, apiKey string, err error) {
	var data struct {
		ProjectID string `json:"projectId"`
		APIKey    string `json:"apiKey"`
	}
	if err := c.Post(ctx, "/projects/quick-create", map[string]string{"name": name}, &data); err != nil {
		return "", "", err
	}
	return data.ProjectID, data.APIKey, nil
}

// ActivityFeed fetches the activity list and stats for one window.
func (c *Client) ActivityFeed(ctx context.Context, projectID string, r week.Range, limit int) (*activity.Feed, error) {
	path := fmt.Sprintf("/progress/%s/activity-feed?from=%s&to=%s&limit=%d",
		url.PathEscape(projectID),
		url.QueryEscape(r.Start.UTC().Format(isoMillis)),
		url.QueryEscape(r.End.UTC().Format(isoMillis)),
		limit)

	var feed activity.Feed
	if err := c.Get(ctx, path, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Insights lists the advisories for a project, unread first as the
// backend orders them.
func (c *Client) Insights(ctx context.Context, projectID string) ([]insight.Insight, error) {
	var data struct {
		Insights []insight.Insight `json:"insights"`
	}
	if err := c.Get(ctx, "/insights?projectId="+url.QueryEscape(projectID), &data); err != nil {
		return nil, err
	}
	return data.Insights, nil
}

// MarkInsightRead acknowledges an insight. One-way: there is no unread
// call.
func (c *Client) MarkInsightRead(ctx context.Context, id string) error {
	return c.Patch(ctx, "/insights/"+url.PathEscape(id)+"/read", nil, nil)
}

// GoogleAuth exchanges a Google ID token for a backend access token.
func (c *Client) GoogleAuth(ctx context.Context, idToken string) (string, error) {
	var data struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	if err := c.Post(ctx, "/auth/google-auth", map[string]string{"idToken": idToken}, &data); err != nil {
		return "", err
	}
	return data.Tokens.AccessToken, nil
}

// Overview is the connectivity test: it authenticates with the project's
// API key header instead of the bearer token, the same way the MCP
// producer does. Any 2xx means the key works.
func (c *Client) Overview(ctx context.Context, projectID, apiKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/progress/"+url.PathEscape(projectID)+"/overview", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-API-KEY", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: genericFailure}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("overview returned status %d", resp.StatusCode)}
	}
	return nil
}
