// Package flow holds the user flow controllers. Each controller validates
// input locally, performs its backend calls in sequence with early return,
// and hands the responses to the renderers. Backend failures are logged and
// turned into a single generic alert on the returned view.
package flow

import (
	"context"
	"io"
	"log/slog"

	"github.com/agenthands/patientdesk/internal/core/common"
	"github.com/agenthands/patientdesk/internal/core/model"
	"github.com/agenthands/patientdesk/internal/metrics"
)

type DocumentUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error)
}

type RecordSearcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

type PatientStore interface {
	ListPatients(ctx context.Context) ([]model.PatientSummary, error)
	GetPatient(ctx context.Context, id string) (*model.RecordProfile, error)
	CreatePatient(ctx context.Context, profile *model.RecordProfile) (string, error)
	UpdatePatient(ctx context.Context, id string, profile *model.RecordProfile) (string, error)
	DeletePatient(ctx context.Context, id string) (string, error)
}

type DashboardService interface {
	CreateDashboard(ctx context.Context, name string) (string, error)
	ListDashboards(ctx context.Context) ([]model.Dashboard, error)
	EmbedURL(ctx context.Context, dashboardID string) (string, error)
	ExportData(ctx context.Context) (string, error)
}

// fail logs a backend failure with its context and records the outcome.
func fail(ctx context.Context, log *slog.Logger, name string, err error, attrs ...any) {
	metrics.RecordFlow(name, metrics.OutcomeFailed)
	args := append([]any{"flow", name, "request_id", common.RequestID(ctx), "err", err}, attrs...)
	log.ErrorContext(ctx, "flow failed", args...)
}

// invalid records a rejected input. It is not logged as an error.
func invalid(ctx context.Context, log *slog.Logger, name string, err error) {
	metrics.RecordFlow(name, metrics.OutcomeInvalid)
	log.DebugContext(ctx, "flow rejected input", "flow", name, "request_id", common.RequestID(ctx), "reason", err.Error())
}

func succeed(name string) {
	metrics.RecordFlow(name, metrics.OutcomeOK)
}

func orDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
