package flow

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/agenthands/patientdesk/internal/core/render"
)

// File is one file picked in the upload form.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

func (f File) empty() bool {
	return strings.TrimSpace(f.Name) == "" && f.Content == nil
}

type Uploads struct {
	backend  DocumentUploader
	profiles *Profiles
	log      *slog.Logger
}

func NewUploads(backend DocumentUploader, profiles *Profiles, log *slog.Logger) *Uploads {
	return &Uploads{
		backend:  backend,
		profiles: profiles,
		log:      orDefault(log),
	}
}

// Upload submits exactly one file, renders the extracted entities and then
// loads the profile of the record the backend linked the document to.
func (u *Uploads) Upload(ctx context.Context, files []File) (*UploadView, error) {
	const name = "upload"
	view := &UploadView{}

	var picked []File
	for _, f := range files {
		if !f.empty() {
			picked = append(picked, f)
		}
	}
	switch {
	case len(picked) == 0:
		invalid(ctx, u.log, name, ErrNoFile)
		view.alert(ErrNoFile.Message)
		return view, ErrNoFile
	case len(picked) > 1:
		invalid(ctx, u.log, name, ErrMultipleFiles)
		view.alert(ErrMultipleFiles.Message)
		return view, ErrMultipleFiles
	}

	f := picked[0]
	view.FileName = f.Name
	content := f.Content
	if content == nil {
		content = strings.NewReader("")
	}

	res, err := u.backend.Upload(ctx, f.Name, content)
	if err != nil {
		fail(ctx, u.log, name, err, "file", f.Name, "size", f.Size)
		view.alert(AlertUpload)
		return view, err
	}

	view.Text = res.Text
	view.RecordID = res.RecordID.String()
	view.Entities, err = render.Entities(res.Entities)
	if err != nil {
		fail(ctx, u.log, name, err, "file", f.Name)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	u.log.InfoContext(ctx, "document processed", "file", f.Name, "entities", len(res.Entities), "record_id", view.RecordID)

	if view.RecordID == "" || u.profiles == nil {
		return view, nil
	}

	pv, err := u.profiles.Fetch(ctx, view.RecordID)
	view.Profile = pv.Profile
	if err != nil {
		view.Alerts = append(view.Alerts, pv.Alerts...)
		return view, err
	}
	return view, nil
}
