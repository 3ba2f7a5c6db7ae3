package flow

import (
	"context"
	"io"
	"sync"

	"github.com/agenthands/patientdesk/internal/core/model"
)

// MockBackend records every call and answers from its fields.
type MockBackend struct {
	mu    sync.Mutex
	Calls []string

	UploadResult *model.UploadResult
	UploadErr    error
	Uploaded     string

	Results   []model.SearchResult
	SearchErr error
	Query     string

	Record      *model.RecordProfile
	PatientErr  error
	SaveErr     error
	Saved       *model.RecordProfile
	Patients    []model.PatientSummary
	PatientsErr error

	Dashboards []model.Dashboard
	ListErr    error
	EmbedURLs  map[string]string
	EmbedErr   error
	CreatedID  string
	CreateErr  error
	Created    []string
	ARN        string
	ExportErr  error
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockBackend) Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	m.record("upload")
	data, _ := io.ReadAll(content)
	m.Uploaded = filename + ":" + string(data)
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	return m.UploadResult, nil
}

func (m *MockBackend) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	m.record("search")
	m.Query = query
	return m.Results, m.SearchErr
}

func (m *MockBackend) ListPatients(ctx context.Context) ([]model.PatientSummary, error) {
	m.record("list_patients")
	return m.Patients, m.PatientsErr
}

func (m *MockBackend) GetPatient(ctx context.Context, id string) (*model.RecordProfile, error) {
	m.record("get_patient:" + id)
	if m.PatientErr != nil {
		return nil, m.PatientErr
	}
	return m.Record, nil
}

func (m *MockBackend) CreatePatient(ctx context.Context, profile *model.RecordProfile) (string, error) {
	m.record("create_patient")
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	return "Patient created", nil
}

func (m *MockBackend) UpdatePatient(ctx context.Context, id string, profile *model.RecordProfile) (string, error) {
	m.record("update_patient:" + id)
	m.mu.Lock()
	m.Saved = profile
	m.mu.Unlock()
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	return "Patient updated", nil
}

func (m *MockBackend) DeletePatient(ctx context.Context, id string) (string, error) {
	m.record("delete_patient:" + id)
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	return "Patient deleted", nil
}

func (m *MockBackend) CreateDashboard(ctx context.Context, name string) (string, error) {
	m.record("create_dashboard")
	m.mu.Lock()
	m.Created = append(m.Created, name)
	m.mu.Unlock()
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	return m.CreatedID, nil
}

func (m *MockBackend) ListDashboards(ctx context.Context) ([]model.Dashboard, error) {
	m.record("list_dashboards")
	return m.Dashboards, m.ListErr
}

func (m *MockBackend) EmbedURL(ctx context.Context, dashboardID string) (string, error) {
	m.record("embed_url")
	if m.EmbedErr != nil {
		return "", m.EmbedErr
	}
	return m.EmbedURLs[dashboardID], nil
}

func (m *MockBackend) ExportData(ctx context.Context) (string, error) {
	m.record("export_data")
	return m.ARN, m.ExportErr
}

func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
