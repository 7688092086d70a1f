// internal/httpapi/server.go
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/tamzrod/siemens-plc/internal/platform"
	"github.com/tamzrod/siemens-plc/internal/wizard"
)

// Submitter runs one configuration step.
type Submitter interface {
	Submit(family wizard.Family, form map[string]any) wizard.Outcome
}

// Server exposes the wizard to a host over HTTP. Every request is an
// independent configuration session.
type Server struct {
	Wizard   Submitter
	Platform platform.Descriptor
	Locate   func() (string, error)
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Log     logrus.FieldLogger
}

// PlatformResponse is the body of GET /platform.
type PlatformResponse struct {
	platform.Descriptor
	Supported bool   `json:"supported"`
	Library   string `json:"library,omitempty"`
	Error     string `json:"error,omitempty"`
}

// NewHandler builds the router.
func NewHandler(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/platform", s.GetPlatform)
	r.Post("/flows/{family}", s.SubmitFlow)

	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	return r
}

// GetPlatform handles GET /platform.
func (s *Server) GetPlatform(w http.ResponseWriter, r *http.Request) {
	resp := PlatformResponse{Descriptor: s.Platform}

	path, err := s.Locate()
	switch {
	case err == nil:
		resp.Supported = true
		resp.Library = path
	case errors.Is(err, platform.ErrUnsupportedPlatform):
		resp.Error = wizard.ReasonUnsupportedPlatform
	default:
		resp.Error = err.Error()
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// SubmitFlow handles POST /flows/{family}. The body is a flat JSON object
// of form fields.
func (s *Server) SubmitFlow(w http.ResponseWriter, r *http.Request) {
	family, err := wizard.ParseFamily(chi.URLParam(r, "family"))
	if err != nil {
		s.writeJSON(w, http.StatusNotFound, wizard.Outcome{
			Kind:        wizard.ValidationFailed,
			FieldErrors: map[string]string{wizard.FieldBase: wizard.ErrUnknownFamily},
		})
		return
	}

	var form map[string]any
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out := s.Wizard.Submit(family, form)
	s.writeJSON(w, statusFor(out.Kind), out)
}

func statusFor(k wizard.Kind) int {
	switch k {
	case wizard.Connected:
		return http.StatusCreated
	case wizard.ValidationFailed:
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.WithError(err).Warn("response encode failed")
	}
}
