package ui

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"datasentry/adapters/memory"
	"datasentry/app"
	"datasentry/internal"
	"datasentry/internal/analysis"
	"datasentry/internal/dataset"
	"datasentry/internal/errors"
	"datasentry/internal/jobmapper"
	"datasentry/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = "name,email,title\n  Jane Doe  ,jane@gmial.com,Engineer\nJohn Roe,john@acme.com,\n"

func newTestServer(t *testing.T, maxFileSize int64) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewNopLogger()

	datasets := memory.NewDatasetRepository()
	analyses := memory.NewAnalysisRepository()
	processor := dataset.NewProcessor(datasets, analyses, dataset.NewLocalFileStorage(t.TempDir()), maxFileSize, logger)
	analyzer := analysis.NewAnalyzer(jobmapper.NewMapper(nil, time.Second, logger), nil, analysis.Config{Concurrency: 2}, logger)
	service := app.NewQualityService(datasets, analyses, analyzer, nil, processor.Locks(), logger)
	return NewServer(processor, service, logger).Handler()
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func upload(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := serve(h, uploadRequest(t, "people.csv", peopleCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	id, ok := body["fileId"].(string)
	require.True(t, ok)
	return id
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, 0)
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestUploadAndFileLifecycle(t *testing.T) {
	h := newTestServer(t, 0)
	id := upload(t, h)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/files/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode(t, rec)["info"].(map[string]interface{})
	assert.Equal(t, float64(2), info["rowCount"])
	assert.Equal(t, []interface{}{"name", "email", "title"}, info["headers"])

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["files"], 1)

	rec = serve(h, httptest.NewRequest(http.MethodDelete, "/api/files/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/files/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.CodeDatasetNotFound, decode(t, rec)["code"])
}

func TestUploadErrors(t *testing.T) {
	h := newTestServer(t, 64)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/upload", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeNoFile, decode(t, rec)["code"])

	rec = serve(h, uploadRequest(t, "notes.txt", "hello"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeUnsupportedFileType, decode(t, rec)["code"])

	rec = serve(h, uploadRequest(t, "big.csv", "name\n"+strings.Repeat("x", 200)+"\n"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, errors.CodeFileTooLarge, decode(t, rec)["code"])

	rec = serve(h, uploadRequest(t, "header.csv", "name,email\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeNoData, decode(t, rec)["code"])
}

func TestAnalyzeReportAndExport(t *testing.T) {
	h := newTestServer(t, 0)
	id := upload(t, h)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/report/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.CodeAnalysisNotFound, decode(t, rec)["code"])

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/"+id, strings.NewReader(`{"type":"people"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode(t, rec)
	assert.Equal(t, "people", result["datasetType"])
	assert.Equal(t, float64(2), result["totalRecords"])
	score := result["qualityScore"].(float64)
	assert.True(t, score >= 0 && score <= 100)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/analysis/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, result["qualityScore"], decode(t, rec)["qualityScore"])

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/summaries", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["summaries"], 1)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/report/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "QA_Report_people.txt")
	assert.Contains(t, rec.Body.String(), "DIAGNOSTIC QA REPORT")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/report/"+id+"?format=html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Empty(t, rec.Header().Get("Content-Disposition"))

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/report/"+id+"?format=pdf", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeUnsupportedFormat, decode(t, rec)["code"])

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/export/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_people_")
	assert.Contains(t, rec.Body.String(), "job_function,confidence_score,issues_detected")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/export/"+id+"?format=json&preview=true", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Jane Doe", rows[0]["name"], "cleaning correction applied")
	assert.Equal(t, "jane@gmail.com", rows[0]["email"], "repair correction applied")

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/export/"+id+"?format=parquet", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeUnknownDataset(t *testing.T) {
	h := newTestServer(t, 0)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/analysis/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors.CodeDatasetNotFound, decode(t, rec)["code"])
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	h := newTestServer(t, 0)
	id := upload(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/"+id, strings.NewReader(`{"type":`))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeInvalidInput, decode(t, rec)["code"])
}

func TestAnalyzeAcceptsEmptyChunkedBody(t *testing.T) {
	h := newTestServer(t, 0)
	id := upload(t, h)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis/"+id, strings.NewReader(""))
	req.ContentLength = -1
	req.Header.Set("Content-Type", "application/json")
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "people", decode(t, rec)["datasetType"], "auto detection")

	req = httptest.NewRequest(http.MethodPost, "/api/analysis/"+id, strings.NewReader(`{"type":"companies"}`))
	req.ContentLength = -1
	rec = serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "companies", decode(t, rec)["datasetType"])
}

func TestInsightsFallBackToHeuristic(t *testing.T) {
	h := newTestServer(t, 0)
	id := upload(t, h)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/ai/insights/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/api/analysis/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodPost, "/api/ai/insights/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	insights := decode(t, rec)["insights"].(map[string]interface{})
	assert.NotEmpty(t, insights["businessImpact"])
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForCode(errors.CodeAnalysisNotFound))
	assert.Equal(t, http.StatusRequestEntityTooLarge, statusForCode(errors.CodeFileTooLarge))
	assert.Equal(t, http.StatusBadRequest, statusForCode(errors.CodeNoHeaders))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(errors.CodeDatabaseError))
	assert.Equal(t, http.StatusNotFound, statusForCode(errors.CodeNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusForCode(errors.CodeExternalService))
}
