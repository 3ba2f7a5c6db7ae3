package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/patientdesk/internal/core/render"
)

const DefaultDashboardName = "Patient Records Dashboard"

type DashboardOptions struct {
	// DefaultName names the dashboard created after an export.
	DefaultName string
	// ListPath is the page that embeds a dashboard picked from the list.
	ListPath    string
	FrameHeight int
}

type Dashboards struct {
	svc  DashboardService
	opts DashboardOptions
	log  *slog.Logger
}

func NewDashboards(svc DashboardService, opts DashboardOptions, log *slog.Logger) *Dashboards {
	if strings.TrimSpace(opts.DefaultName) == "" {
		opts.DefaultName = DefaultDashboardName
	}
	if opts.ListPath == "" {
		opts.ListPath = "/dashboards"
	}
	if opts.FrameHeight <= 0 {
		opts.FrameHeight = 600
	}
	return &Dashboards{svc: svc, opts: opts, log: orDefault(log)}
}

func (d *Dashboards) Create(ctx context.Context, dashboardName string) (*DashboardView, error) {
	const name = "dashboard_create"
	view := &DashboardView{}
	title := strings.TrimSpace(dashboardName)
	if title == "" {
		invalid(ctx, d.log, name, ErrNoDashboardName)
		view.alert(ErrNoDashboardName.Message)
		return view, ErrNoDashboardName
	}

	id, err := d.svc.CreateDashboard(ctx, title)
	if err != nil {
		fail(ctx, d.log, name, err, "dashboard_name", title)
		view.alert(AlertCreate)
		return view, err
	}
	view.DashboardID = id
	view.Message = fmt.Sprintf("Dashboard created successfully. ID: %s", id)
	succeed(name)
	d.log.InfoContext(ctx, "dashboard created", "dashboard_id", id, "dashboard_name", title)
	return view, nil
}

func (d *Dashboards) List(ctx context.Context) (*DashboardView, error) {
	const name = "dashboard_list"
	view := &DashboardView{}
	dashboards, err := d.svc.ListDashboards(ctx)
	if err != nil {
		fail(ctx, d.log, name, err)
		view.alert(AlertDashboards)
		return view, err
	}

	view.Dashboards = dashboards
	view.List, err = render.DashboardList(d.opts.ListPath, dashboards)
	if err != nil {
		fail(ctx, d.log, name, err)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	return view, nil
}

func (d *Dashboards) Embed(ctx context.Context, dashboardID string) (*DashboardView, error) {
	const name = "dashboard_embed"
	id := strings.TrimSpace(dashboardID)
	view := &DashboardView{DashboardID: id}
	if id == "" {
		invalid(ctx, d.log, name, ErrNoDashboardID)
		view.alert(ErrNoDashboardID.Message)
		return view, ErrNoDashboardID
	}

	embedURL, err := d.svc.EmbedURL(ctx, id)
	if err != nil {
		fail(ctx, d.log, name, err, "dashboard_id", id)
		view.alert(AlertEmbed)
		return view, err
	}
	view.Embed, err = render.EmbedFrame(embedURL, d.opts.FrameHeight)
	if err != nil {
		fail(ctx, d.log, name, err, "dashboard_id", id)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	return view, nil
}

// Export triggers the backend export and, only when it succeeds, creates a
// dashboard over the exported data with the default name.
func (d *Dashboards) Export(ctx context.Context) (*DashboardView, error) {
	const name = "export"
	view := &DashboardView{}
	arn, err := d.svc.ExportData(ctx)
	if err != nil {
		fail(ctx, d.log, name, err, "step", "export_data")
		view.alert(AlertExport)
		return view, err
	}
	view.DataSourceARN = arn

	created, err := d.Create(ctx, d.opts.DefaultName)
	created.DataSourceARN = arn
	if err != nil {
		fail(ctx, d.log, name, err, "step", "create_dashboard")
		return created, err
	}
	succeed(name)
	return created, nil
}

// Page loads the dashboard list and, when an id is given, the embed frame.
// The two fetches run concurrently and fail independently.
func (d *Dashboards) Page(ctx context.Context, dashboardID string) (*DashboardView, error) {
	var (
		g                 errgroup.Group
		list, embed       *DashboardView
		listErr, embedErr error
	)
	g.Go(func() error {
		list, listErr = d.List(ctx)
		return nil
	})
	if strings.TrimSpace(dashboardID) != "" {
		g.Go(func() error {
			embed, embedErr = d.Embed(ctx, dashboardID)
			return nil
		})
	}
	_ = g.Wait()

	view := list
	if embed != nil {
		view.DashboardID = embed.DashboardID
		view.Embed = embed.Embed
		view.Alerts = append(view.Alerts, embed.Alerts...)
	}
	return view, errors.Join(listErr, embedErr)
}
