package render

const fragmentTemplates = `
{{define "entities"}}{{if .}}{{range .}}<div class="entity">
<p>Type: {{.Type}}</p>
<p>Text: {{.Text}}</p>
<p>Score: {{score .Score}}</p>
<p>Category: {{orNA .Category}}</p>
{{if .HasAttributes}}<ul class="attributes">{{range .Attributes}}<li>Type: {{.Type}}, Score: {{score .Score}}, Text: {{.Text}}</li>{{end}}</ul>
{{end}}</div>
{{end}}{{else}}<p class="empty">No entities found</p>{{end}}{{end}}

{{define "list"}}{{if .}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{else}}Not available{{end}}{{end}}

{{define "documents"}}{{if .}}<ul>{{range .}}<li>{{if .URL}}<a href="{{.URL}}">{{docLabel .}}</a>{{else}}{{docLabel .}}{{end}}</li>{{end}}</ul>{{else}}Not available{{end}}{{end}}

{{define "profile"}}<dl class="profile">
<dt>Name</dt><dd class="name">{{orNA .Name}}</dd>
<dt>Date of Birth</dt><dd class="date-of-birth">{{orNA .DateOfBirth}}</dd>
<dt>Gender</dt><dd class="gender">{{orNA .Gender}}</dd>
<dt>Patient ID</dt><dd class="id">{{orNA .ID}}</dd>
<dt>Conditions</dt><dd class="conditions">{{template "list" .Conditions}}</dd>
<dt>Medications</dt><dd class="medications">{{template "list" .Medications}}</dd>
<dt>Documents</dt><dd class="documents">{{template "documents" .Documents}}</dd>
<dt>Surgeries</dt><dd class="surgeries">{{template "list" .Surgeries}}</dd>
<dt>Allergies</dt><dd class="allergies">{{template "list" .Allergies}}</dd>
<dt>Family History</dt><dd class="family-history">{{template "list" .FamilyHistory}}</dd>
<dt>Blood Pressure</dt><dd class="blood-pressure">{{orNA .Vitals.BloodPressure}}</dd>
<dt>Heart Rate</dt><dd class="heart-rate">{{orNA .Vitals.HeartRate}}</dd>
<dt>Temperature</dt><dd class="temperature">{{orNA .Vitals.Temperature}}</dd>
<dt>Height</dt><dd class="height">{{orNA .Vitals.Height}}</dd>
<dt>Weight</dt><dd class="weight">{{orNA .Vitals.Weight}}</dd>
<dt>BMI</dt><dd class="bmi">{{orNA .Vitals.BMI}}</dd>
<dt>Upcoming Appointments</dt><dd class="upcoming-appointments">{{template "list" .UpcomingAppointments}}</dd>
<dt>Past Visits</dt><dd class="past-visits">{{template "list" .PastVisits}}</dd>
</dl>{{end}}

{{define "patient_list"}}{{if .Patients}}<ul class="patients">{{range .Patients}}<li><a href="{{$.Base}}/{{.ID}}">{{orNA .Name}}</a> (Date of Birth: {{orNA .DateOfBirth}})</li>{{end}}</ul>{{else}}<p class="empty">No patients found</p>{{end}}{{end}}

{{define "search_results"}}{{if .}}<ul class="results">{{range .}}<li>{{.Text}} (Score: {{score .Score}})</li>{{end}}</ul>{{else}}<p class="empty">No results found</p>{{end}}{{end}}

{{define "dashboard_list"}}{{if .Dashboards}}<ul class="dashboards">{{range .Dashboards}}<li><a href="{{$.Base}}?dashboard_id={{.ID}}">{{.Name}}</a></li>{{end}}</ul>{{else}}<p class="empty">No dashboards yet</p>{{end}}{{end}}

{{define "embed_frame"}}<iframe src="{{.URL}}" width="100%" height="{{.Height}}"></iframe>{{end}}
`
