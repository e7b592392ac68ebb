package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/ecosort/wastescan"
	"github.com/ecosort/wastescan/internal/config"
	"github.com/ecosort/wastescan/pkg/types"
)

func newTestHandler() http.Handler {
	return New(config.Default(), wastescan.New()).Handler()
}

// multipartBody builds a multipart body with a single file field
func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

// solidPNG encodes a solid-color PNG
func solidPNG(t *testing.T, width, height int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func TestPredictSuccess(t *testing.T) {
	handler := newTestHandler()

	body, contentType := multipartBody(t, "file", "white.png",
		solidPNG(t, 100, 100, color.RGBA{255, 255, 255, 255}))

	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result types.Report
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if !result.Success {
		t.Error("Expected success=true")
	}
	if result.TotalMaterialsDetected != 3 {
		t.Errorf("Expected 3 materials for a pure white image, got %d", result.TotalMaterialsDetected)
	}

	sum := result.Summary
	if sum.GeneralWasteItems != result.TotalMaterialsDetected-sum.RecyclableItems-sum.HazardousItems {
		t.Errorf("Summary identity broken: %+v", sum)
	}

	for i := 1; i < len(result.Materials); i++ {
		if result.Materials[i-1].CoveragePercentage < result.Materials[i].CoveragePercentage {
			t.Error("Materials not sorted by coverage descending")
		}
	}

	if result.Primary == nil || result.Primary.Material != "Glass" {
		t.Errorf("Expected Glass as primary classification, got %+v", result.Primary)
	}
}

func TestPredictLegacyPath(t *testing.T) {
	handler := newTestHandler()

	body, contentType := multipartBody(t, "file", "black.png",
		solidPNG(t, 100, 100, color.RGBA{0, 0, 0, 255}))

	req := httptest.NewRequest(http.MethodPost, "/classify_waste", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 on legacy path, got %d", rec.Code)
	}

	var result types.Report
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if result.Primary == nil || result.Primary.Material != "Battery" {
		t.Errorf("Expected Battery primary for all-black image, got %+v", result.Primary)
	}
	if result.Primary.Category != "Hazardous Waste" {
		t.Errorf("Expected Hazardous Waste, got %s", result.Primary.Category)
	}
}

func TestPredictMissingFile(t *testing.T) {
	handler := newTestHandler()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.WriteField("note", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/predict", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("Expected success=false")
	}
	if env.Error != kindMissingInput {
		t.Errorf("Expected %s, got %s", kindMissingInput, env.Error)
	}
}

func TestPredictEmptyFilename(t *testing.T) {
	handler := newTestHandler()

	// A part with an empty filename is parsed as a form value, not a file
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename=""`)
	header.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write([]byte("pretend image"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/predict", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error != kindMissingInput {
		t.Errorf("Expected %s, got %s", kindMissingInput, env.Error)
	}
}

func TestPredictCorruptImage(t *testing.T) {
	handler := newTestHandler()

	body, contentType := multipartBody(t, "file", "broken.jpg", []byte("not an image at all"))

	req := httptest.NewRequest(http.MethodPost, "/api/predict", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != kindDecodeFailure {
		t.Errorf("Expected %s, got %s", kindDecodeFailure, env.Error)
	}
	if env.Message == "" {
		t.Error("Expected the decode diagnostic in the message")
	}
}

func TestPredictMethodNotAllowed(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/predict", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode health payload: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", payload["status"])
	}
	if payload["version"] != wastescan.Version {
		t.Errorf("Expected version %s, got %s", wastescan.Version, payload["version"])
	}
}

func TestRoot(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode root payload: %v", err)
	}
	if payload["status"] != "running" {
		t.Errorf("Expected status running, got %s", payload["status"])
	}

	req = httptest.NewRequest(http.MethodGet, "/no/such/path", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := config.Default()
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	handler := New(cfg, wastescan.New()).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}

	// Disallowed origin gets no CORS header
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header for disallowed origin, got %q", got)
	}
}
