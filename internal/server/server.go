package server

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/patientdesk/internal/backend"
	"github.com/agenthands/patientdesk/internal/config"
	"github.com/agenthands/patientdesk/internal/core"
	"github.com/agenthands/patientdesk/internal/core/common"
	"github.com/agenthands/patientdesk/internal/core/flow"
	"github.com/agenthands/patientdesk/internal/core/model"
	"github.com/agenthands/patientdesk/internal/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	requestIDHeader = "X-Request-ID"
	maxRequestID    = 128
)

type Server struct {
	Frontend *core.Frontend
	Config   *config.Config
	Log      *slog.Logger

	metrics http.Handler
	pages   *template.Template
}

// NewServer builds the backend client and flow controllers from cfg.
func NewServer(cfg *config.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	client, err := backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		MaxRPS:  cfg.Backend.MaxRPS,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		Frontend: core.NewFrontend(client, cfg, log),
		Config:   cfg,
		Log:      log,
		pages:    template.Must(template.New("pages").ParseFS(templatesFS, "templates/*.html")),
	}
	if cfg.Metrics.Enabled {
		s.metrics = metrics.EnablePrometheus()
	}
	return s, nil
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = s.Config.Server.MaxUploadMB << 20
	r.SetHTMLTemplate(s.pages)

	r.GET("/", s.Index)
	r.POST("/upload", s.Upload)
	r.GET("/search", s.Search)

	r.GET("/patients", s.Patients)
	r.GET("/patients/new", s.NewPatient)
	r.POST("/patients", s.CreatePatient)
	r.GET("/patients/:id", s.ShowPatient)
	r.POST("/patients/:id", s.UpdatePatient)
	r.POST("/patients/:id/delete", s.DeletePatient)

	r.GET("/dashboards", s.Dashboards)
	r.POST("/dashboards", s.CreateDashboard)
	r.POST("/export", s.Export)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics))
	}

	return r
}

// requestLogger tags each request with an id, propagates it to backend calls
// and logs the outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if !validRequestID(id) {
			id = common.NewRequestID()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(common.WithRequestID(c.Request.Context(), id))

		c.Next()

		s.Log.InfoContext(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", id,
		)
	}
}

// validRequestID accepts short ids made of letters, digits and ._:- only.
// Anything else is replaced rather than echoed back or forwarded.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestID {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return false
		}
	}
	return true
}

// page is the data every template receives.
type page struct {
	Title   string
	IDs     config.Elements
	Alerts  []string
	Message string

	Upload     *flow.UploadView
	Search     *flow.SearchView
	Profile    *flow.ProfileView
	Patients   *flow.PatientListView
	Dashboards *flow.DashboardView

	RecordID string
	Fields   []formField
}

func (s *Server) render(c *gin.Context, name string, p page) {
	p.IDs = s.Config.Elements
	c.HTML(http.StatusOK, name, p)
}

func (s *Server) Index(c *gin.Context) {
	s.render(c, "index.html", page{Title: "Documents"})
}

func (s *Server) Upload(c *gin.Context) {
	var files []flow.File
	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.Log.WarnContext(c.Request.Context(), "failed to parse upload form", "err", err)
	}
	if form != nil {
		for _, fh := range form.File["file"] {
			f, err := fh.Open()
			if err != nil {
				s.Log.WarnContext(c.Request.Context(), "failed to open uploaded file", "file", fh.Filename, "err", err)
				continue
			}
			defer f.Close()
			files = append(files, flow.File{Name: fh.Filename, Size: fh.Size, Content: f})
		}
	}

	view, _ := s.Frontend.Uploads.Upload(c.Request.Context(), files)
	s.render(c, "index.html", page{
		Title:  "Documents",
		Alerts: view.Alerts,
		Upload: view,
	})
}

func (s *Server) Search(c *gin.Context) {
	view, _ := s.Frontend.Searches.Search(c.Request.Context(), c.Query("q"))
	s.render(c, "index.html", page{
		Title:  "Search",
		Alerts: view.Alerts,
		Search: view,
	})
}

func (s *Server) Patients(c *gin.Context) {
	view, _ := s.Frontend.Profiles.List(c.Request.Context())
	s.render(c, "patients.html", page{
		Title:    "Patients",
		Alerts:   view.Alerts,
		Patients: view,
	})
}

func (s *Server) NewPatient(c *gin.Context) {
	s.render(c, "patient.html", page{
		Title:  "New patient",
		Fields: profileFields(nil),
	})
}

func (s *Server) CreatePatient(c *gin.Context) {
	record := profileFromForm(c)
	view, _ := s.Frontend.Profiles.Create(c.Request.Context(), record)
	s.render(c, "patient.html", page{
		Title:   "New patient",
		Alerts:  view.Alerts,
		Message: view.Message,
		Fields:  profileFields(record),
	})
}

func (s *Server) ShowPatient(c *gin.Context) {
	view, _ := s.Frontend.Profiles.Fetch(c.Request.Context(), c.Param("id"))
	s.render(c, "patient.html", page{
		Title:    "Patient",
		Alerts:   view.Alerts,
		Profile:  view,
		RecordID: view.RecordID,
		Fields:   profileFields(view.Record),
	})
}

func (s *Server) UpdatePatient(c *gin.Context) {
	ctx := c.Request.Context()
	record := profileFromForm(c)
	view, err := s.Frontend.Profiles.Edit(ctx, c.Param("id"), record)
	p := page{
		Title:    "Patient",
		Alerts:   view.Alerts,
		Message:  view.Message,
		RecordID: view.RecordID,
		Fields:   profileFields(view.Record),
	}
	if err == nil {
		fetched, _ := s.Frontend.Profiles.Fetch(ctx, view.RecordID)
		p.Profile = fetched
		p.Alerts = append(p.Alerts, fetched.Alerts...)
		if fetched.Record != nil {
			p.Fields = profileFields(fetched.Record)
		}
	}
	s.render(c, "patient.html", p)
}

func (s *Server) DeletePatient(c *gin.Context) {
	view, _ := s.Frontend.Profiles.Delete(c.Request.Context(), c.Param("id"))
	p := page{
		Title:   "Patient",
		Alerts:  view.Alerts,
		Message: view.Message,
		Fields:  profileFields(nil),
	}
	if view.Failed() {
		p.RecordID = view.RecordID
	}
	s.render(c, "patient.html", p)
}

func (s *Server) Dashboards(c *gin.Context) {
	view, _ := s.Frontend.Dashboards.Page(c.Request.Context(), c.Query("dashboard_id"))
	s.render(c, "dashboards.html", page{
		Title:      "Dashboards",
		Alerts:     view.Alerts,
		Dashboards: view,
	})
}

func (s *Server) CreateDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	created, _ := s.Frontend.Dashboards.Create(ctx, c.PostForm("name"))
	s.dashboardsAfter(c, created)
}

// Export runs the export chain and then shows the refreshed dashboard list.
func (s *Server) Export(c *gin.Context) {
	exported, _ := s.Frontend.Dashboards.Export(c.Request.Context())
	s.dashboardsAfter(c, exported)
}

func (s *Server) dashboardsAfter(c *gin.Context, action *flow.DashboardView) {
	view, _ := s.Frontend.Dashboards.Page(c.Request.Context(), "")
	s.render(c, "dashboards.html", page{
		Title:      "Dashboards",
		Alerts:     append(append([]string(nil), action.Alerts...), view.Alerts...),
		Message:    action.Message,
		Dashboards: view,
	})
}

type formField struct {
	Label string
	Name  string
	Value string
}

func profileFields(r *model.RecordProfile) []formField {
	if r == nil {
		r = &model.RecordProfile{}
	}
	meds := make([]string, 0, len(r.Medications))
	for _, m := range r.Medications {
		meds = append(meds, m.Name)
	}
	return []formField{
		{"Name", "name", r.Name},
		{"Date of Birth", "date_of_birth", r.DateOfBirth},
		{"Gender", "gender", r.Gender},
		{"Conditions", "conditions", strings.Join(r.Conditions, ", ")},
		{"Medications", "medications", strings.Join(meds, ", ")},
		{"Surgeries", "surgeries", strings.Join(r.Surgeries, ", ")},
		{"Allergies", "allergies", strings.Join(r.Allergies, ", ")},
		{"Family History", "family_history", strings.Join(r.FamilyHistory, ", ")},
		{"Blood Pressure", "blood_pressure", r.Vitals.BloodPressure.String()},
		{"Heart Rate", "heart_rate", r.Vitals.HeartRate.String()},
		{"Temperature", "temperature", r.Vitals.Temperature.String()},
		{"Height", "height", r.Vitals.Height.String()},
		{"Weight", "weight", r.Vitals.Weight.String()},
		{"BMI", "bmi", r.Vitals.BMI.String()},
		{"Upcoming Appointments", "upcoming_appointments", strings.Join(r.UpcomingAppointments, ", ")},
		{"Past Visits", "past_visits", strings.Join(r.PastVisits, ", ")},
	}
}

// profileFromForm reads the profile form. List fields are comma separated.
func profileFromForm(c *gin.Context) *model.RecordProfile {
	value := func(name string) model.Value {
		return model.Value(strings.TrimSpace(c.PostForm(name)))
	}
	list := func(name string) model.TextList {
		return model.SplitList(c.PostForm(name))
	}

	var meds model.MedicationList
	for _, name := range model.SplitList(c.PostForm("medications")) {
		meds = append(meds, model.Medication{Name: name})
	}

	return &model.RecordProfile{
		Name:          strings.TrimSpace(c.PostForm("name")),
		DateOfBirth:   strings.TrimSpace(c.PostForm("date_of_birth")),
		Gender:        strings.TrimSpace(c.PostForm("gender")),
		Conditions:    list("conditions"),
		Medications:   meds,
		Surgeries:     list("surgeries"),
		Allergies:     list("allergies"),
		FamilyHistory: list("family_history"),
		Vitals: model.Vitals{
			BloodPressure: value("blood_pressure"),
			HeartRate:     value("heart_rate"),
			Temperature:   value("temperature"),
			Height:        value("height"),
			Weight:        value("weight"),
			BMI:           value("bmi"),
		},
		UpcomingAppointments: list("upcoming_appointments"),
		PastVisits:           list("past_visits"),
	}
}
