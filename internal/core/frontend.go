package core

import (
	"log/slog"

	"github.com/agenthands/patientdesk/internal/config"
	"github.com/agenthands/patientdesk/internal/core/flow"
)

// Backend is everything the front end consumes from the records backend.
type Backend interface {
	flow.DocumentUploader
	flow.RecordSearcher
	flow.PatientStore
	flow.DashboardService
}

// Frontend wires the flow controllers over one backend. Controllers hold no
// mutable state, so a Frontend is safe to share between requests.
type Frontend struct {
	Uploads    *flow.Uploads
	Searches   *flow.Searches
	Profiles   *flow.Profiles
	Dashboards *flow.Dashboards
}

func NewFrontend(b Backend, cfg *config.Config, log *slog.Logger) *Frontend {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}

	profiles := flow.NewProfiles(b, log)
	return &Frontend{
		Uploads:  flow.NewUploads(b, profiles, log),
		Searches: flow.NewSearches(b, log),
		Profiles: profiles,
		Dashboards: flow.NewDashboards(b, flow.DashboardOptions{
			DefaultName: cfg.Dashboard.DefaultName,
			ListPath:    "/dashboards",
			FrameHeight: cfg.Dashboard.FrameHeight,
		}, log),
	}
}
