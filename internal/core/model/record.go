package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RecordProfile is the structured summary of one patient record.
type RecordProfile struct {
	ID                   Value          `json:"id,omitempty"`
	Name                 string         `json:"name"`
	DateOfBirth          string         `json:"date_of_birth"`
	Gender               string         `json:"gender,omitempty"`
	Conditions           TextList       `json:"conditions"`
	Medications          MedicationList `json:"medications"`
	Documents            DocumentList   `json:"documents"`
	Surgeries            TextList       `json:"surgeries"`
	Allergies            TextList       `json:"allergies"`
	FamilyHistory        TextList       `json:"family_history"`
	Vitals               Vitals         `json:"vitals"`
	UpcomingAppointments TextList       `json:"upcoming_appointments"`
	PastVisits           TextList       `json:"past_visits"`
}

type Vitals struct {
	BloodPressure Value `json:"blood_pressure,omitempty"`
	HeartRate     Value `json:"heart_rate,omitempty"`
	Temperature   Value `json:"temperature,omitempty"`
	Height        Value `json:"height,omitempty"`
	Weight        Value `json:"weight,omitempty"`
	BMI           Value `json:"bmi,omitempty"`
}

// UnmarshalJSON also accepts vitals stored flat on the record, the way the
// patient table keeps them. Nested values win over flat ones.
func (p *RecordProfile) UnmarshalJSON(data []byte) error {
	type plain RecordProfile
	var aux struct {
		plain
		BloodPressure Value `json:"blood_pressure"`
		HeartRate     Value `json:"heart_rate"`
		Temperature   Value `json:"temperature"`
		Height        Value `json:"height"`
		Weight        Value `json:"weight"`
		BMI           Value `json:"bmi"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = RecordProfile(aux.plain)
	v := &p.Vitals
	v.BloodPressure = v.BloodPressure.Or(aux.BloodPressure)
	v.HeartRate = v.HeartRate.Or(aux.HeartRate)
	v.Temperature = v.Temperature.Or(aux.Temperature)
	v.Height = v.Height.Or(aux.Height)
	v.Weight = v.Weight.Or(aux.Weight)
	v.BMI = v.BMI.Or(aux.BMI)
	return nil
}

// WithEdits returns edits completed with what an edit form cannot carry:
// the stored documents and, for medications kept by name without new
// details, their stored dosage and frequency.
func (p *RecordProfile) WithEdits(edits *RecordProfile) *RecordProfile {
	out := *edits
	if p == nil {
		return &out
	}
	if out.Documents == nil {
		out.Documents = p.Documents
	}

	var meds MedicationList
	for _, m := range edits.Medications {
		if m.Dosage == "" && m.Frequency == "" {
			if stored, ok := p.Medications.find(m.Name); ok {
				m = stored
			}
		}
		meds = append(meds, m)
	}
	out.Medications = meds
	return &out
}

type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

// String joins the non-empty parts, e.g. "Metformin - 500mg, twice daily".
func (m Medication) String() string {
	var details []string
	for _, s := range []string{m.Dosage, m.Frequency} {
		if s = strings.TrimSpace(s); s != "" {
			details = append(details, s)
		}
	}
	name := strings.TrimSpace(m.Name)
	if len(details) == 0 {
		return name
	}
	return name + " - " + strings.Join(details, ", ")
}

func (m *Medication) UnmarshalJSON(data []byte) error {
	if s, ok, err := decodeString(data); ok || err != nil {
		m.Name = s
		return err
	}
	type plain Medication
	return json.Unmarshal(data, (*plain)(m))
}

type Document struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	if s, ok, err := decodeString(data); ok || err != nil {
		d.Name = s
		return err
	}
	type plain Document
	return json.Unmarshal(data, (*plain)(d))
}

// Value is a scalar that the backend may send either as a JSON string or a
// JSON number.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(strings.TrimSpace(s))
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("value must be a string or number, got %s", data)
	}
	*v = Value(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (v Value) String() string { return string(v) }

// Or returns v, or fallback when v is blank.
func (v Value) Or(fallback Value) Value {
	if strings.TrimSpace(string(v)) == "" {
		return fallback
	}
	return v
}

// TextList accepts a JSON array, a comma separated string or null.
type TextList []string

func (l *TextList) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data)
	if err != nil {
		return err
	}
	var out TextList
	for _, raw := range items {
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return err
		}
		if v != "" {
			out = append(out, string(v))
		}
	}
	*l = out
	return nil
}

type MedicationList []Medication

func (l *MedicationList) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data)
	if err != nil {
		return err
	}
	var out MedicationList
	for _, raw := range items {
		var m Medication
		if err := m.UnmarshalJSON(raw); err != nil {
			return err
		}
		if m.String() != "" {
			out = append(out, m)
		}
	}
	*l = out
	return nil
}

func (l MedicationList) find(name string) (Medication, bool) {
	name = strings.TrimSpace(name)
	for _, m := range l {
		if strings.EqualFold(strings.TrimSpace(m.Name), name) {
			return m, true
		}
	}
	return Medication{}, false
}

type DocumentList []Document

func (l *DocumentList) UnmarshalJSON(data []byte) error {
	items, err := decodeList(data)
	if err != nil {
		return err
	}
	var out DocumentList
	for _, raw := range items {
		var d Document
		if err := d.UnmarshalJSON(raw); err != nil {
			return err
		}
		if strings.TrimSpace(d.Name) != "" || d.URL != "" {
			out = append(out, d)
		}
	}
	*l = out
	return nil
}

// SplitList splits comma separated form input into trimmed, non-empty items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// decodeList turns an array, a comma separated string or null into raw
// JSON items.
func decodeList(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if s, ok, err := decodeString(data); ok || err != nil {
		if err != nil {
			return nil, err
		}
		var items []json.RawMessage
		for _, part := range SplitList(s) {
			raw, _ := json.Marshal(part)
			items = append(items, raw)
		}
		return items, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("expected list: %w", err)
	}
	return items, nil
}

func decodeString(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", true, err
	}
	return strings.TrimSpace(s), true, nil
}
