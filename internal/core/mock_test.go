package core

import (
	"context"
	"errors"
	"io"

	"github.com/agenthands/patientdesk/internal/core/model"
)

type MockBackend struct {
	Calls       []string
	ExportFails bool
}

func (m *MockBackend) Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	m.Calls = append(m.Calls, "upload")
	return &model.UploadResult{Text: "abc", RecordID: "p1"}, nil
}

func (m *MockBackend) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	m.Calls = append(m.Calls, "search")
	return nil, nil
}

func (m *MockBackend) ListPatients(ctx context.Context) ([]model.PatientSummary, error) {
	m.Calls = append(m.Calls, "list_patients")
	return []model.PatientSummary{{ID: "p1", Name: "John Doe"}}, nil
}

func (m *MockBackend) GetPatient(ctx context.Context, id string) (*model.RecordProfile, error) {
	m.Calls = append(m.Calls, "get_patient:"+id)
	return &model.RecordProfile{Name: "John Doe"}, nil
}

func (m *MockBackend) CreatePatient(ctx context.Context, profile *model.RecordProfile) (string, error) {
	m.Calls = append(m.Calls, "create_patient")
	return "created", nil
}

func (m *MockBackend) UpdatePatient(ctx context.Context, id string, profile *model.RecordProfile) (string, error) {
	m.Calls = append(m.Calls, "update_patient:"+id)
	return "updated", nil
}

func (m *MockBackend) DeletePatient(ctx context.Context, id string) (string, error) {
	m.Calls = append(m.Calls, "delete_patient:"+id)
	return "deleted", nil
}

func (m *MockBackend) CreateDashboard(ctx context.Context, name string) (string, error) {
	m.Calls = append(m.Calls, "create_dashboard:"+name)
	return "d1", nil
}

func (m *MockBackend) ListDashboards(ctx context.Context) ([]model.Dashboard, error) {
	m.Calls = append(m.Calls, "list_dashboards")
	return nil, nil
}

func (m *MockBackend) EmbedURL(ctx context.Context, dashboardID string) (string, error) {
	m.Calls = append(m.Calls, "embed_url")
	return "https://bi.example.com/" + dashboardID, nil
}

func (m *MockBackend) ExportData(ctx context.Context) (string, error) {
	m.Calls = append(m.Calls, "export_data")
	if m.ExportFails {
		return "", errors.New("export failed")
	}
	return "arn:ds/1", nil
}
