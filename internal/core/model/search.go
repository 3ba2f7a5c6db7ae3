package model

// SearchResult is one ranked hit. Order is decided by the backend.
type SearchResult struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type Dashboard struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DashboardList struct {
	Dashboards []Dashboard `json:"dashboards"`
}

// PatientSummary is one row of the patient list.
type PatientSummary struct {
	ID          Value  `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"`
}

type PatientList struct {
	Patients []PatientSummary `json:"patients"`
}
