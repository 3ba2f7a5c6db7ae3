package core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/patientdesk/internal/config"
	"github.com/agenthands/patientdesk/internal/core/flow"
)

func TestFrontend_UploadFetchesProfile(t *testing.T) {
	b := &MockBackend{}
	f := NewFrontend(b, nil, nil)

	view, err := f.Uploads.Upload(context.Background(), []flow.File{{Name: "a.pdf", Content: strings.NewReader("x")}})
	require.NoError(t, err)

	assert.Equal(t, "abc", view.Text)
	assert.Equal(t, []string{"upload", "get_patient:p1"}, b.Calls)
}

func TestFrontend_ExportUsesConfiguredName(t *testing.T) {
	cfg := config.Default()
	cfg.Dashboard.DefaultName = "Ward 3 Overview"
	b := &MockBackend{}

	_, err := NewFrontend(b, cfg, nil).Dashboards.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"export_data", "create_dashboard:Ward 3 Overview"}, b.Calls)
}

func TestFrontend_ExportFailureNeverCreates(t *testing.T) {
	b := &MockBackend{ExportFails: true}

	_, err := NewFrontend(b, nil, nil).Dashboards.Export(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"export_data"}, b.Calls)
}
