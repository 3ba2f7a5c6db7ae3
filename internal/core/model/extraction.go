package model

// UploadResult is the backend response to a document upload. The patient id
// is numeric in the patient table and a string elsewhere.
type UploadResult struct {
	Text     string   `json:"text"`
	Entities []Entity `json:"entities"`
	RecordID Value    `json:"patient_id"`
}

// Entity is a clinical concept extracted from the uploaded document text.
type Entity struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	Score      float64     `json:"score"` // 0..1
	Category   string      `json:"category"`
	Attributes []Attribute `json:"attributes,omitempty"`
}

type Attribute struct {
	Type  string  `json:"type"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

// HasAttributes reports whether the entity carries at least one attribute.
// Nil and empty slices are treated the same.
func (e Entity) HasAttributes() bool {
	return len(e.Attributes) > 0
}
