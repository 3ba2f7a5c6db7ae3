package flow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/agenthands/patientdesk/internal/core/model"
	"github.com/agenthands/patientdesk/internal/core/render"
)

// PatientsPath is where the patient list links each record to, as
// PatientsPath + "/" + id.
const PatientsPath = "/patients"

type Profiles struct {
	store    PatientStore
	basePath string
	log      *slog.Logger
}

func NewProfiles(store PatientStore, log *slog.Logger) *Profiles {
	return &Profiles{store: store, basePath: PatientsPath, log: orDefault(log)}
}

// Fetch loads and renders one record profile.
func (p *Profiles) Fetch(ctx context.Context, recordID string) (*ProfileView, error) {
	const name = "profile"
	id := strings.TrimSpace(recordID)
	view := &ProfileView{RecordID: id}
	if id == "" {
		invalid(ctx, p.log, name, ErrNoRecordID)
		view.alert(ErrNoRecordID.Message)
		return view, ErrNoRecordID
	}

	record, err := p.store.GetPatient(ctx, id)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id)
		view.alert(AlertProfile)
		return view, err
	}

	view.Record = record
	view.Profile, err = render.Profile(record)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	return view, nil
}

func (p *Profiles) Create(ctx context.Context, record *model.RecordProfile) (*ProfileView, error) {
	const name = "profile_create"
	view := &ProfileView{Record: record}
	if record == nil || strings.TrimSpace(record.Name) == "" {
		invalid(ctx, p.log, name, ErrNoName)
		view.alert(ErrNoName.Message)
		return view, ErrNoName
	}

	msg, err := p.store.CreatePatient(ctx, record)
	if err != nil {
		fail(ctx, p.log, name, err)
		view.alert(AlertSaveProfile)
		return view, err
	}
	view.Message = msg
	succeed(name)
	return view, nil
}

func (p *Profiles) Update(ctx context.Context, recordID string, record *model.RecordProfile) (*ProfileView, error) {
	const name = "profile_update"
	id := strings.TrimSpace(recordID)
	view := &ProfileView{RecordID: id, Record: record}
	if id == "" {
		invalid(ctx, p.log, name, ErrNoRecordID)
		view.alert(ErrNoRecordID.Message)
		return view, ErrNoRecordID
	}
	if record == nil || strings.TrimSpace(record.Name) == "" {
		invalid(ctx, p.log, name, ErrNoName)
		view.alert(ErrNoName.Message)
		return view, ErrNoName
	}

	msg, err := p.store.UpdatePatient(ctx, id, record)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id)
		view.alert(AlertSaveProfile)
		return view, err
	}
	view.Message = msg
	succeed(name)
	return view, nil
}

// Edit applies form edits to the stored record and saves the result. The
// stored record is read first so fields the form cannot carry survive.
func (p *Profiles) Edit(ctx context.Context, recordID string, edits *model.RecordProfile) (*ProfileView, error) {
	const name = "profile_edit"
	id := strings.TrimSpace(recordID)
	view := &ProfileView{RecordID: id, Record: edits}
	if id == "" {
		invalid(ctx, p.log, name, ErrNoRecordID)
		view.alert(ErrNoRecordID.Message)
		return view, ErrNoRecordID
	}
	if edits == nil || strings.TrimSpace(edits.Name) == "" {
		invalid(ctx, p.log, name, ErrNoName)
		view.alert(ErrNoName.Message)
		return view, ErrNoName
	}

	stored, err := p.store.GetPatient(ctx, id)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id, "step", "get_patient")
		view.alert(AlertProfile)
		return view, err
	}

	record := stored.WithEdits(edits)
	view.Record = record
	msg, err := p.store.UpdatePatient(ctx, id, record)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id, "step", "update_patient")
		view.alert(AlertSaveProfile)
		return view, err
	}
	view.Message = msg
	succeed(name)
	return view, nil
}

// List loads the patient list with a link per record.
func (p *Profiles) List(ctx context.Context) (*PatientListView, error) {
	const name = "patient_list"
	view := &PatientListView{}
	patients, err := p.store.ListPatients(ctx)
	if err != nil {
		fail(ctx, p.log, name, err)
		view.alert(AlertPatients)
		return view, err
	}

	view.Patients = patients
	view.List, err = render.PatientList(p.basePath, patients)
	if err != nil {
		fail(ctx, p.log, name, err)
		view.alert(AlertRender)
		return view, err
	}
	succeed(name)
	return view, nil
}

func (p *Profiles) Delete(ctx context.Context, recordID string) (*ProfileView, error) {
	const name = "profile_delete"
	id := strings.TrimSpace(recordID)
	view := &ProfileView{RecordID: id}
	if id == "" {
		invalid(ctx, p.log, name, ErrNoRecordID)
		view.alert(ErrNoRecordID.Message)
		return view, ErrNoRecordID
	}

	msg, err := p.store.DeletePatient(ctx, id)
	if err != nil {
		fail(ctx, p.log, name, err, "record_id", id)
		view.alert(AlertDelete)
		return view, err
	}
	view.Message = msg
	succeed(name)
	return view, nil
}
