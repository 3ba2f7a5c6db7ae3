package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agenthands/patientdesk/internal/core/model"
)

type createDashboardRequest struct {
	Name string `json:"name"`
}

type createDashboardResponse struct {
	DashboardID string `json:"dashboardId"`
}

type embedURLResponse struct {
	EmbedURL string `json:"embed_url"`
}

type exportResponse struct {
	DataSourceARN string `json:"data_source_arn"`
}

func (c *Client) CreateDashboard(ctx context.Context, name string) (string, error) {
	const path = "/create-dashboard"
	data, err := c.Send(ctx, http.MethodPost, path, createDashboardRequest{Name: name})
	if err != nil {
		return "", err
	}
	resp, err := decode[createDashboardResponse](path, data)
	if err != nil {
		return "", err
	}
	if resp.DashboardID == "" {
		return "", fmt.Errorf("%s: response has no dashboardId", path)
	}
	return resp.DashboardID, nil
}

func (c *Client) ListDashboards(ctx context.Context) ([]model.Dashboard, error) {
	const path = "/user-dashboards"
	data, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[model.DashboardList](path, data)
	if err != nil {
		return nil, err
	}
	return resp.Dashboards, nil
}

// EmbedURL asks the embedding provider for a short-lived dashboard link.
func (c *Client) EmbedURL(ctx context.Context, dashboardID string) (string, error) {
	path := "/quicksight-embed-url?" + url.Values{"dashboard_id": {dashboardID}}.Encode()
	data, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}
	resp, err := decode[embedURLResponse](path, data)
	if err != nil {
		return "", err
	}
	if resp.EmbedURL == "" {
		return "", fmt.Errorf("/quicksight-embed-url: response has no embed_url")
	}
	return resp.EmbedURL, nil
}

// ExportData triggers a backend export and returns the data source ARN.
func (c *Client) ExportData(ctx context.Context) (string, error) {
	const path = "/export-data"
	data, err := c.Send(ctx, http.MethodPost, path, nil)
	if err != nil {
		return "", err
	}
	resp, err := decode[exportResponse](path, data)
	if err != nil {
		return "", err
	}
	return resp.DataSourceARN, nil
}
