package flow

import "errors"

// ValidationError is a local input problem. It is raised before any network
// call and its message is shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNoFile          = &ValidationError{Field: "file", Message: "Please select a file"}
	ErrMultipleFiles   = &ValidationError{Field: "file", Message: "Please select a single file"}
	ErrEmptyQuery      = &ValidationError{Field: "q", Message: "Please enter a search query"}
	ErrNoRecordID      = &ValidationError{Field: "id", Message: "Please provide a patient ID"}
	ErrNoName          = &ValidationError{Field: "name", Message: "Please enter the patient's name"}
	ErrNoDashboardName = &ValidationError{Field: "name", Message: "Please enter a dashboard name"}
	ErrNoDashboardID   = &ValidationError{Field: "dashboard_id", Message: "Please choose a dashboard"}
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Generic alerts for failures that originate in the network layer.
const (
	AlertUpload      = "An error occurred while processing the file."
	AlertProfile     = "Failed to load patient profile."
	AlertPatients    = "Failed to load patients."
	AlertSaveProfile = "Failed to save patient profile."
	AlertDelete      = "Failed to delete patient profile."
	AlertSearch      = "An error occurred while searching."
	AlertDashboards  = "Failed to load dashboards."
	AlertEmbed       = "Failed to load the dashboard."
	AlertCreate      = "Failed to create the dashboard."
	AlertExport      = "Failed to export data."
	AlertRender      = "An error occurred while displaying the results."
)
