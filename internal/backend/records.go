package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/agenthands/patientdesk/internal/core/model"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Upload submits a document as the multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read upload %q: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	const path = "/upload"
	data, err := c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	result, err := decode[model.UploadResult](path, data)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Search runs a free text query. Results keep the backend's ranking.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	path := "/search?" + url.Values{"q": {query}}.Encode()
	data, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[model.SearchResponse](path, data)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// ListPatients returns the summary rows of every stored patient.
func (c *Client) ListPatients(ctx context.Context) ([]model.PatientSummary, error) {
	const path = "/patients"
	data, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := decode[model.PatientList](path, data)
	if err != nil {
		return nil, err
	}
	return resp.Patients, nil
}

func (c *Client) GetPatient(ctx context.Context, id string) (*model.RecordProfile, error) {
	path := patientPath(id)
	data, err := c.Send(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	profile, err := decode[model.RecordProfile](path, data)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) CreatePatient(ctx context.Context, profile *model.RecordProfile) (string, error) {
	return c.message(ctx, http.MethodPost, "/patients", profile)
}

func (c *Client) UpdatePatient(ctx context.Context, id string, profile *model.RecordProfile) (string, error) {
	return c.message(ctx, http.MethodPut, patientPath(id), profile)
}

func (c *Client) DeletePatient(ctx context.Context, id string) (string, error) {
	return c.message(ctx, http.MethodDelete, patientPath(id), nil)
}

func (c *Client) message(ctx context.Context, method, path string, body any) (string, error) {
	data, err := c.Send(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	resp, err := decode[messageResponse](path, data)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

func patientPath(id string) string {
	return "/patients/" + url.PathEscape(id)
}
