// Package render turns backend responses into HTML fragments. Every function
// is pure: the returned fragment fully replaces whatever the target container
// held before, so rendering the same input twice yields the same markup.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/agenthands/patientdesk/internal/core/model"
)

// NotAvailable is shown for any absent, null or blank field.
const NotAvailable = "Not available"

var funcs = template.FuncMap{
	"score": Score,
	"orNA":  orNA,
	"docLabel": func(d model.Document) string {
		if s := strings.TrimSpace(d.Name); s != "" {
			return s
		}
		return d.URL
	},
}

var fragments = template.Must(template.New("fragments").Funcs(funcs).Parse(fragmentTemplates))

// Score formats a confidence score with two decimals.
func Score(s float64) string {
	return fmt.Sprintf("%.2f", s)
}

func orNA(v any) string {
	s := strings.TrimSpace(fmt.Sprint(v))
	if v == nil || s == "" {
		return NotAvailable
	}
	return s
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Entities renders one block per entity. The attribute list is present only
// for entities that have attributes.
func Entities(entities []model.Entity) (template.HTML, error) {
	return execute("entities", entities)
}

// Profile renders every profile field, falling back to NotAvailable. A nil
// profile renders all fields as unavailable.
func Profile(p *model.RecordProfile) (template.HTML, error) {
	if p == nil {
		p = &model.RecordProfile{}
	}
	return execute("profile", p)
}

// PatientList renders each patient as a link to basePath/{id} followed by
// the date of birth.
func PatientList(basePath string, patients []model.PatientSummary) (template.HTML, error) {
	return execute("patient_list", struct {
		Base     string
		Patients []model.PatientSummary
	}{basePath, patients})
}

// SearchResults renders results in the order given.
func SearchResults(results []model.SearchResult) (template.HTML, error) {
	return execute("search_results", results)
}

// DashboardList renders each dashboard as a link to basePath with its id in
// the dashboard_id query parameter.
func DashboardList(basePath string, dashboards []model.Dashboard) (template.HTML, error) {
	return execute("dashboard_list", struct {
		Base       string
		Dashboards []model.Dashboard
	}{basePath, dashboards})
}

// EmbedFrame renders the inline frame for an embed URL. Non-http(s) URLs are
// neutralised by html/template.
func EmbedFrame(embedURL string, height int) (template.HTML, error) {
	if height <= 0 {
		height = 600
	}
	return execute("embed_frame", struct {
		URL    string
		Height int
	}{embedURL, height})
}
