package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/patientdesk/internal/core/common"
	"github.com/agenthands/patientdesk/internal/core/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "  "})
	assert.Error(t, err)
}

func TestSend_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-dashboard", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Weekly", body["name"])

		w.Write([]byte(`{"dashboardId":"d-1"}`))
	})

	raw, err := c.Send(context.Background(), http.MethodPost, "/create-dashboard", map[string]string{"name": "Weekly"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dashboardId":"d-1"}`, string(raw))
}

func TestSend_HTTPErrorWithHTMLBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream down</html>"))
	})

	_, err := c.Send(context.Background(), http.MethodGet, "/user-dashboards", nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.Status)
	assert.Equal(t, "<html>upstream down</html>", httpErr.Message)
	assert.Equal(t, "/user-dashboards", httpErr.Path)
}

func TestSend_HTTPErrorWithJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Patient not found"}`))
	})

	_, err := c.GetPatient(context.Background(), "p404")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Patient not found", httpErr.Message)
	assert.True(t, IsNotFound(err))
}

func TestSend_HTTPErrorEmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ExportData(context.Background())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Internal Server Error", httpErr.Message)
	assert.False(t, IsNotFound(err))
}

func TestSend_LongErrorBodyKeepsRunes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		// 2-byte runes with an odd prefix so the byte limit falls mid-rune.
		w.Write([]byte("x" + strings.Repeat("é", 150)))
	})

	_, err := c.ListDashboards(context.Background())

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.True(t, utf8.ValidString(httpErr.Message))
	assert.True(t, strings.HasSuffix(httpErr.Message, "..."))
	assert.LessOrEqual(t, len(httpErr.Message), maxErrorMessage+len("..."))
	assert.Equal(t, "x"+strings.Repeat("é", 99)+"...", httpErr.Message)
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = c.Search(context.Background(), "diabetes")

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestSend_ForwardsRequestID(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"dashboards":[]}`))
	})

	ctx := common.WithRequestID(context.Background(), "req-42")
	_, err := c.ListDashboards(ctx)
	require.NoError(t, err)
	assert.Equal(t, "req-42", got)
}

func TestSend_UndecodableSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	_, err := c.ListDashboards(context.Background())
	require.Error(t, err)

	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestUpload_Multipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload", r.URL.Path)

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		assert.Equal(t, "notes.pdf", hdr.Filename)
		assert.Equal(t, "pdf-bytes", string(content))

		w.Write([]byte(`{
			"text": "abc",
			"entities": [{"type":"NAME","text":"John","score":0.987,"category":"PERSON","attributes":[]}],
			"patient_id": "p1"
		}`))
	})

	res, err := c.Upload(context.Background(), "notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Text)
	assert.Equal(t, model.Value("p1"), res.RecordID)
	require.Len(t, res.Entities, 1)
	assert.Equal(t, "NAME", res.Entities[0].Type)
	assert.InDelta(t, 0.987, res.Entities[0].Score, 1e-9)
	assert.False(t, res.Entities[0].HasAttributes())
}

// The patient table keys records by integer id.
func TestUpload_NumericPatientID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"abc","entities":[],"patient_id":7}`))
	})

	res, err := c.Upload(context.Background(), "notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "abc", res.Text)
	assert.Equal(t, model.Value("7"), res.RecordID)
	assert.Empty(t, res.Entities)

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"abc","entities":[],"patient_id":null}`))
	})
	res, err = c.Upload(context.Background(), "notes.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Empty(t, res.RecordID)
}

func TestSearch_EscapesQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "q=blood+pressure+%26+sugar", r.URL.RawQuery)
		assert.Equal(t, "blood pressure & sugar", r.URL.Query().Get("q"))
		w.Write([]byte(`{"results":[{"text":"b","score":0.2},{"text":"a","score":0.9}]}`))
	})

	results, err := c.Search(context.Background(), "blood pressure & sugar")
	require.NoError(t, err)
	// Backend order is kept as-is.
	assert.Equal(t, []model.SearchResult{{Text: "b", Score: 0.2}, {Text: "a", Score: 0.9}}, results)
}

func TestPatientCRUD(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.EscapedPath())
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"id": 7, "name": "Jane Roe", "conditions": "asthma, eczema"}`))
		case http.MethodPost, http.MethodPut:
			var p model.RecordProfile
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
			assert.Equal(t, "Jane Roe", p.Name)
			w.Write([]byte(`{"message":"saved"}`))
		case http.MethodDelete:
			w.Write([]byte(`{"message":"deleted"}`))
		}
	})
	ctx := context.Background()

	p, err := c.GetPatient(ctx, "a/b")
	require.NoError(t, err)
	assert.Equal(t, model.Value("7"), p.ID)
	assert.Equal(t, model.TextList{"asthma", "eczema"}, p.Conditions)

	msg, err := c.CreatePatient(ctx, &model.RecordProfile{Name: "Jane Roe"})
	require.NoError(t, err)
	assert.Equal(t, "saved", msg)

	msg, err = c.UpdatePatient(ctx, "7", &model.RecordProfile{Name: "Jane Roe"})
	require.NoError(t, err)
	assert.Equal(t, "saved", msg)

	msg, err = c.DeletePatient(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, "deleted", msg)

	assert.Equal(t, []string{
		"GET /patients/a%2Fb",
		"POST /patients",
		"PUT /patients/7",
		"DELETE /patients/7",
	}, calls)
}

func TestListPatients(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/patients", r.URL.Path)
		w.Write([]byte(`{"patients":[{"id":1,"name":"Jane Roe","date_of_birth":"1980-02-01"},{"id":2,"name":"John Doe","date_of_birth":"1975-06-30"}]}`))
	})

	patients, err := c.ListPatients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.PatientSummary{
		{ID: "1", Name: "Jane Roe", DateOfBirth: "1980-02-01"},
		{ID: "2", Name: "John Doe", DateOfBirth: "1975-06-30"},
	}, patients)
}

func TestDashboards(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user-dashboards":
			w.Write([]byte(`{"dashboards":[{"id":"d1","name":"Admissions"},{"id":"d2","name":"Labs"}]}`))
		case "/quicksight-embed-url":
			assert.Equal(t, "d1", r.URL.Query().Get("dashboard_id"))
			w.Write([]byte(`{"embed_url":"https://bi.example.com/embed/d1"}`))
		case "/export-data":
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"data_source_arn":"arn:aws:quicksight:ds/1"}`))
		case "/create-dashboard":
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	list, err := c.ListDashboards(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Dashboard{{ID: "d1", Name: "Admissions"}, {ID: "d2", Name: "Labs"}}, list)

	u, err := c.EmbedURL(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "https://bi.example.com/embed/d1", u)

	arn, err := c.ExportData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:quicksight:ds/1", arn)

	_, err = c.CreateDashboard(ctx, "Empty")
	assert.ErrorContains(t, err, "no dashboardId")
}

func TestRoute(t *testing.T) {
	assert.Equal(t, "/search", route("/search?q=x"))
	assert.Equal(t, "/patients/{id}", route("/patients/p1"))
	assert.Equal(t, "/patients", route("/patients"))
}
