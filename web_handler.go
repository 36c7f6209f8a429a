package main

import (
	"encoding/json"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/kanishka-raisania/education-lead-view/analytics"
	"github.com/kanishka-raisania/education-lead-view/domain/models"
	"github.com/kanishka-raisania/education-lead-view/plot"
)

const maxUploadSize = 64 << 20

type uploadNotifier interface {
	NotifyUpload(chatID int64, sessionID string, snapshot *analytics.Snapshot)
}

type webServer struct {
	service  *leadService
	notifier uploadNotifier
}

type uploadResponse struct {
	SessionID    string `json:"sessionId"`
	DashboardURL string `json:"dashboardUrl"`
	FileName     string `json:"fileName"`
	TotalRows    int    `json:"totalRows"`
	Leads        int    `json:"leads"`
	SkippedEmpty int    `json:"skippedEmpty"`
	DroppedRows  int    `json:"droppedRows"`
}

var uploadForm = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head><title>Upload lead export</title></head>
<body>
<h1>Upload lead export</h1>
<p>CSV or XLSX, optionally inside a zip, gz or lz4 archive.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
	<input type="hidden" name="uuid" value="{{.}}">
	<input type="hidden" name="redirect" value="1">
	<input type="file" name="file" accept=".csv,.xlsx,.zip,.gz,.lz4">
	<button type="submit">Upload</button>
</form>
</body>
</html>`))

func (s *webServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/upload", s.handleUpload)
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboardAPI)
		r.Get("/funnel", s.handleFunnelAPI)
		r.Get("/history", s.handleHistoryAPI)
	})
	r.Get("/sessions/{id}", s.handleDashboardPage)
	r.Get("/sessions/{id}/charts/{view}.png", s.handleChart)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Error] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrNoSnapshot), errors.Is(err, errUnknownView):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnsupportedFile), errors.Is(err, analytics.ErrMalformedFile):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errBadQuery):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadQuery = errors.New("bad query")

// parseDashboardQuery параметры window, from, to, granularity, q, status
func (s *webServer) parseDashboardQuery(r *http.Request) (analytics.DashboardQuery, error) {
	values := r.URL.Query()
	window, err := analytics.ParseWindow(values.Get("window"), values.Get("from"), values.Get("to"), s.service.calendar.Location)
	if err != nil {
		return analytics.DashboardQuery{}, errors.Wrap(errBadQuery, err.Error())
	}
	granularity, err := analytics.ParseGranularity(values.Get("granularity"))
	if err != nil {
		return analytics.DashboardQuery{}, errors.Wrap(errBadQuery, err.Error())
	}
	return analytics.DashboardQuery{
		Window:      window,
		Granularity: granularity,
		Filter: models.LeadFilter{
			Query:  values.Get("q"),
			Status: values.Get("status"),
		},
	}, nil
}

func (s *webServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if err := uploadForm.Execute(w, id); err != nil {
		http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
	}
}

func (s *webServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error uploading file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading file", http.StatusBadRequest)
		return
	}

	sessionID := strings.TrimSpace(r.FormValue("uuid"))
	if sessionID == "" {
		sessionID = uuid.NewV4().String()
	}

	snapshot, err := s.service.ingest(sessionID, "web", header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	if chatID, ok := s.service.links.Chat(sessionID); ok {
		s.service.sessions.GetOrCreate(chatSession(chatID)).Publish(snapshot)
		if s.notifier != nil {
			go s.notifier.NotifyUpload(chatID, sessionID, snapshot)
		}
	}

	if r.FormValue("redirect") == "1" {
		http.Redirect(w, r, "/sessions/"+sessionID, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID:    sessionID,
		DashboardURL: "/sessions/" + sessionID,
		FileName:     snapshot.FileName,
		TotalRows:    snapshot.TotalRows,
		Leads:        len(snapshot.Leads),
		SkippedEmpty: snapshot.SkippedEmpty,
		DroppedRows:  snapshot.DroppedRows,
	})
}

func (s *webServer) dashboard(r *http.Request) (models.Dashboard, error) {
	q, err := s.parseDashboardQuery(r)
	if err != nil {
		return models.Dashboard{}, err
	}
	return s.service.dashboard(chi.URLParam(r, "id"), q)
}

func (s *webServer) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *webServer) handleFunnelAPI(w http.ResponseWriter, r *http.Request) {
	q, err := s.parseDashboardQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	report, err := s.service.funnel(chi.URLParam(r, "id"), r.URL.Query().Get("assignee"), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *webServer) handleHistoryAPI(w http.ResponseWriter, r *http.Request) {
	runs, err := s.service.audit.History(chi.URLParam(r, "id"), 50)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *webServer) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderDashboardPage(w, d); err != nil {
		log.Printf("[Error] render dashboard page: %v", err)
	}
}

func (s *webServer) handleChart(w http.ResponseWriter, r *http.Request) {
	d, err := s.dashboard(r)
	if err != nil {
		writeError(w, err)
		return
	}
	graph, err := renderView(d, chi.URLParam(r, "view"))
	if errors.Is(err, plot.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(graph)
}
