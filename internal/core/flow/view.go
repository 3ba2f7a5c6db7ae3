package flow

import (
	"html/template"

	"github.com/agenthands/patientdesk/internal/core/model"
)

// Notice is what a page shows above its results: alerts for failures and an
// optional confirmation message.
type Notice struct {
	Alerts  []string
	Message string
}

func (n *Notice) alert(msg string) {
	n.Alerts = append(n.Alerts, msg)
}

// Failed reports whether any alert was raised.
func (n *Notice) Failed() bool {
	return len(n.Alerts) > 0
}

type UploadView struct {
	Notice
	FileName string
	Text     string
	Entities template.HTML
	RecordID string
	Profile  template.HTML
}

type SearchView struct {
	Notice
	Query   string
	Count   int
	Results template.HTML
}

type ProfileView struct {
	Notice
	RecordID string
	Record   *model.RecordProfile
	Profile  template.HTML
}

type PatientListView struct {
	Notice
	Patients []model.PatientSummary
	List     template.HTML
}

type DashboardView struct {
	Notice
	Dashboards    []model.Dashboard
	List          template.HTML
	DashboardID   string
	Embed         template.HTML
	DataSourceARN string
}
