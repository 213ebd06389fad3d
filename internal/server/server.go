package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/ladybug-tools/dragonfly-uwg/internal/project"
	"github.com/ladybug-tools/dragonfly-uwg/pkg/bldgtypes"
)

// Server is the local development server for inspecting a district project.
// The project file is re-read on every request so edits show up on reload.
type Server struct {
	projectPath string
	port        int
	log         *logrus.Logger
}

// New creates a server for the given project file or directory.
func New(projectPath string, port int, log *logrus.Logger) *Server {
	return &Server{
		projectPath: projectPath,
		port:        port,
		log:         log,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/api/district", s.handleDistrict)
	r.Get("/api/summary", s.handleSummary)
	r.Get("/api/matrix", s.handleMatrix)
	r.Get("/api/validation", s.handleValidation)
	r.Get("/api/uwg", s.handleUWG)
	r.Get("/api/typologies/{key}", s.handleTypology)
	r.Get("/", s.handleIndex)
	return r
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.log.WithFields(logrus.Fields{
		"addr":    "http://localhost" + addr,
		"project": s.projectPath,
	}).Info("dfuwg server starting")

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

// load runs the pipeline. A nil result means the response has been written.
func (s *Server) load(w http.ResponseWriter, r *http.Request) *project.Result {
	res, err := project.Load(s.projectPath)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"project":    s.projectPath,
		}).WithError(err).Error("loading project")
		writeError(w, http.StatusInternalServerError, err)
		return nil
	}
	return res
}

// loadDistrict is load plus a check that the district was built. Projects
// that fail validation answer 422 with the report.
func (s *Server) loadDistrict(w http.ResponseWriter, r *http.Request) *project.Result {
	res := s.load(w, r)
	if res == nil {
		return nil
	}
	if res.District == nil || res.Summary == nil {
		writeJSON(w, http.StatusUnprocessableEntity, res.Report)
		return nil
	}
	return res
}

func (s *Server) handleDistrict(w http.ResponseWriter, r *http.Request) {
	res := s.loadDistrict(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, res.District.ToRecord())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	res := s.loadDistrict(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, res.Summary)
}

type matrixResponse struct {
	Programs []string    `json:"programs"`
	Eras     []string    `json:"eras"`
	Matrix   [][]float64 `json:"matrix"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	res := s.loadDistrict(w, r)
	if res == nil {
		return
	}
	out := matrixResponse{Matrix: res.Summary.Matrix}
	for _, p := range bldgtypes.Programs() {
		out.Programs = append(out.Programs, p.String())
	}
	for _, e := range bldgtypes.Eras() {
		out.Eras = append(out.Eras, e.String())
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	res := s.load(w, r)
	if res == nil {
		return
	}
	writeJSON(w, http.StatusOK, res.Report)
}

func (s *Server) handleUWG(w http.ResponseWriter, r *http.Request) {
	res := s.load(w, r)
	if res == nil {
		return
	}
	if res.Input == nil {
		writeJSON(w, http.StatusUnprocessableEntity, res.Report)
		return
	}
	writeJSON(w, http.StatusOK, res.Input)
}

func (s *Server) handleTypology(w http.ResponseWriter, r *http.Request) {
	key, err := bldgtypes.ParseTypeKey(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := s.loadDistrict(w, r)
	if res == nil {
		return
	}
	typs, err := res.District.BuildingTypologies()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	for _, t := range typs {
		if t.Key() == key {
			writeJSON(w, http.StatusOK, t.ToRecord())
			return
		}
	}
	writeError(w, http.StatusNotFound, errors.New("no typology "+key.String()+" in district"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>dfuwg</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>dfuwg</h1>
<p>
<a style="color:#8cf" href="/api/summary">summary</a> &middot;
<a style="color:#8cf" href="/api/matrix">matrix</a> &middot;
<a style="color:#8cf" href="/api/validation">validation</a> &middot;
<a style="color:#8cf" href="/api/uwg">uwg input</a>
</p>
</div>
</body></html>`)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
