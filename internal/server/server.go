// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/ecosort/wastescan"
	"github.com/ecosort/wastescan/internal/config"
	"github.com/ecosort/wastescan/pkg/processing"
)

// Error kinds reported in the JSON error envelope.
const (
	kindMissingInput    = "missing_input"
	kindDecodeFailure   = "decode_failure"
	kindDegenerateImage = "degenerate_image"
	kindInternal        = "internal_error"
	kindNotFound        = "not_found"
)

// Server handles the waste classification HTTP API
type Server struct {
	cfg      *config.Config
	pipeline *wastescan.Pipeline
}

// New creates a Server around the given pipeline
func New(cfg *config.Config, pipeline *wastescan.Pipeline) *Server {
	return &Server{cfg: cfg, pipeline: pipeline}
}

// Handler returns the routed HTTP handler wrapped with CORS and request
// logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/predict", s.handlePredict)
	// Legacy path kept for older frontends
	mux.HandleFunc("/classify_waste", s.handlePredict)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/", s.handleRoot)

	return LoggingMiddleware(CORSMiddleware(s.cfg.Server.AllowedOrigins, mux))
}

// errorEnvelope is the JSON body for every failed request
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindMissingInput, "use POST with a multipart 'file' field")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindMissingInput, "no file uploaded")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, kindMissingInput, "empty filename")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, kindInternal, "failed to read upload")
		return
	}

	result, err := s.pipeline.AnalyzeBytes(data)
	if err != nil {
		var decodeErr *processing.DecodeError
		switch {
		case errors.Is(err, processing.ErrDegenerateImage):
			writeError(w, http.StatusBadRequest, kindDegenerateImage, err.Error())
		case errors.As(err, &decodeErr):
			writeError(w, http.StatusBadRequest, kindDecodeFailure, decodeErr.Reason)
		default:
			writeError(w, http.StatusInternalServerError, kindInternal, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "waste classifier API is healthy",
		"version": wastescan.Version,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, kindNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"message": "Waste Classifier Backend Online",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: kind, Message: message})
}
