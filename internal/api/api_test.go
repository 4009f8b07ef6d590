package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Mdbasith05/Operations-dashboard/internal/config"
	"github.com/Mdbasith05/Operations-dashboard/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmp := t.TempDir()
	st, err := store.New(filepath.Join(tmp, "opsdash.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	handler := NewHandler(st, config.DefaultConfig().SLA, filepath.Join(tmp, "exports"))

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api"))
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s %s: %v (body: %s)", method, path, err, w.Body.String())
		}
	}
	return w
}

const sampleCSV = `Date,Department,Tasks_Assigned,Tasks_Completed,Completion_Time,SLA_Target
2025-03-01,A,10,8,5,6
2025-03-02,A,5,5,4,6
2025-03-01,B,4,2,7,6
`

func uploadCSV(t *testing.T, router *gin.Engine, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "tasks.csv")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("write form: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStatus_Empty(t *testing.T) {
	router, _ := newTestRouter(t)

	var status StatusResponse
	w := doJSON(t, router, http.MethodGet, "/api/status", "", &status)
	if w.Code != http.StatusOK {
		t.Fatalf("status code: %d", w.Code)
	}
	if status.Initialized || status.Records != 0 {
		t.Fatalf("expected uninitialized status, got %+v", status)
	}
	if status.Departments == nil {
		t.Fatalf("departments should be an empty list, not null")
	}
}

func TestUploadThenSummary(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadCSV(t, router, sampleCSV)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status: %d (%s)", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"type":"done"`) {
		t.Fatalf("no done event in stream: %s", body)
	}
	if !strings.HasPrefix(body, "data: ") {
		t.Fatalf("not SSE framed: %s", body[:20])
	}

	var status StatusResponse
	doJSON(t, router, http.MethodGet, "/api/status", "", &status)
	if !status.Initialized || status.Records != 3 {
		t.Fatalf("status after upload: %+v", status)
	}
	if len(status.Departments) != 2 {
		t.Fatalf("departments: %+v", status.Departments)
	}
	if status.LastUpload == nil || status.LastUpload.Filename != "tasks.csv" {
		t.Fatalf("last upload: %+v", status.LastUpload)
	}

	var summary struct {
		Records           int      `json:"records"`
		CompletionRate    *float64 `json:"completionRate"`
		SLAComplianceRate *float64 `json:"slaComplianceRate"`
		Departments       []struct {
			Department     string   `json:"department"`
			CompletionRate *float64 `json:"completionRate"`
		} `json:"departments"`
	}
	doJSON(t, router, http.MethodGet, "/api/summary", "", &summary)
	if summary.Records != 3 || summary.CompletionRate == nil {
		t.Fatalf("summary wrong: %+v", summary)
	}
	if got := *summary.CompletionRate; got < 0.78 || got > 0.79 { // 15/19
		t.Fatalf("completion rate: %f", got)
	}
	if len(summary.Departments) != 2 || summary.Departments[0].Department != "A" {
		t.Fatalf("departments wrong: %+v", summary.Departments)
	}

	// filtered summary
	doJSON(t, router, http.MethodGet, "/api/summary?department=B", "", &summary)
	if summary.Records != 1 || *summary.CompletionRate != 0.5 {
		t.Fatalf("filtered summary wrong: %+v", summary)
	}
}

func TestUpload_MissingColumn(t *testing.T) {
	router, _ := newTestRouter(t)

	w := uploadCSV(t, router, "Date,Department\n2025-03-01,A\n")
	body := w.Body.String()
	if !strings.Contains(body, `"type":"error"`) {
		t.Fatalf("expected error event, got: %s", body)
	}
	if strings.Contains(body, `"type":"done"`) {
		t.Fatalf("should not complete: %s", body)
	}

	var status StatusResponse
	doJSON(t, router, http.MethodGet, "/api/status", "", &status)
	if status.Initialized {
		t.Fatalf("partial import happened: %+v", status)
	}
}

func TestUpload_NoFile(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestRecordsPaging(t *testing.T) {
	router, _ := newTestRouter(t)
	uploadCSV(t, router, sampleCSV)

	var resp struct {
		Total   int `json:"total"`
		Records []struct {
			Department string `json:"department"`
		} `json:"records"`
	}
	doJSON(t, router, http.MethodGet, "/api/records?limit=2&offset=2", "", &resp)
	if resp.Total != 3 || len(resp.Records) != 1 {
		t.Fatalf("paging wrong: %+v", resp)
	}

	w := doJSON(t, router, http.MethodGet, "/api/records?limit=abc", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status: %d", w.Code)
	}
}

func TestClearRecords(t *testing.T) {
	router, _ := newTestRouter(t)
	uploadCSV(t, router, sampleCSV)

	w := doJSON(t, router, http.MethodPost, "/api/records/clear", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear status: %d", w.Code)
	}

	var status StatusResponse
	doJSON(t, router, http.MethodGet, "/api/status", "", &status)
	if status.Initialized || status.Records != 0 {
		t.Fatalf("dataset not cleared: %+v", status)
	}
}

func TestConfigEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	var cfg ConfigResponse
	doJSON(t, router, http.MethodGet, "/api/config", "", &cfg)
	if cfg.SLAWarnThreshold != 0.8 {
		t.Fatalf("default warn threshold: %+v", cfg)
	}

	w := doJSON(t, router, http.MethodPatch, "/api/config", `{"defaultSlaTarget": 6.5, "slaWarnThreshold": 0.9}`, &cfg)
	if w.Code != http.StatusOK {
		t.Fatalf("patch status: %d (%s)", w.Code, w.Body.String())
	}
	if cfg.DefaultSLATarget != 6.5 || cfg.SLAWarnThreshold != 0.9 {
		t.Fatalf("patched config wrong: %+v", cfg)
	}

	// persisted across requests
	doJSON(t, router, http.MethodGet, "/api/config", "", &cfg)
	if cfg.DefaultSLATarget != 6.5 {
		t.Fatalf("config not persisted: %+v", cfg)
	}

	w = doJSON(t, router, http.MethodPatch, "/api/config", `{"slaWarnThreshold": 1.5}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range threshold accepted: %d", w.Code)
	}
}

func TestExportFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	// empty dataset refuses to export
	w := doJSON(t, router, http.MethodPost, "/api/export", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty export status: %d", w.Code)
	}

	uploadCSV(t, router, sampleCSV)

	var resp struct {
		Token    string `json:"token"`
		Filename string `json:"filename"`
	}
	w = doJSON(t, router, http.MethodPost, "/api/export", "", &resp)
	if w.Code != http.StatusOK || resp.Token == "" {
		t.Fatalf("export failed: %d (%s)", w.Code, w.Body.String())
	}
	if !strings.HasSuffix(resp.Filename, ".xlsx") {
		t.Fatalf("filename: %q", resp.Filename)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/export/download/"+resp.Token, nil)
	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, req)
	if dw.Code != http.StatusOK {
		t.Fatalf("download status: %d", dw.Code)
	}
	if dw.Body.Len() == 0 {
		t.Fatalf("empty download body")
	}

	// token is single use
	dw = httptest.NewRecorder()
	router.ServeHTTP(dw, httptest.NewRequest(http.MethodGet, "/api/export/download/"+resp.Token, nil))
	if dw.Code != http.StatusNotFound {
		t.Fatalf("token reuse status: %d", dw.Code)
	}
}

func TestTrendEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)
	uploadCSV(t, router, sampleCSV)

	var resp struct {
		Trend []struct {
			TasksAssigned  int `json:"tasksAssigned"`
			TasksCompleted int `json:"tasksCompleted"`
		} `json:"trend"`
	}
	doJSON(t, router, http.MethodGet, "/api/trend", "", &resp)
	if len(resp.Trend) != 2 {
		t.Fatalf("trend points: %+v", resp.Trend)
	}
	if resp.Trend[0].TasksAssigned != 14 {
		t.Fatalf("first trend point: %+v", resp.Trend[0])
	}

	w := doJSON(t, router, http.MethodGet, "/api/trend?from=bogus", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad from date status: %d", w.Code)
	}
}
