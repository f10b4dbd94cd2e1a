package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/handiism/yamusic-downloader/internal/config"
	"github.com/handiism/yamusic-downloader/internal/download"
	"github.com/handiism/yamusic-downloader/internal/logging"
	"github.com/handiism/yamusic-downloader/internal/store"
	"github.com/handiism/yamusic-downloader/internal/yamusic"
)

const (
	statusRunning  = "running"
	statusComplete = "complete"
	statusError    = "error"

	// maxRunMessages bounds the progress log kept per run.
	maxRunMessages = 100
)

// Server is the web front-end: a form to start playlist downloads, polled
// JSON progress for running downloads, and the run history.
type Server struct {
	settings *config.Settings
	token    string
	store    *store.Store
	router   *mux.Router

	// newCatalog builds the API client for one run's token. Tests swap it
	// for a fake.
	newCatalog func(token string) download.Catalog

	mu   sync.RWMutex
	runs map[string]*runState
}

// runState tracks one in-flight or finished download run.
type runState struct {
	ID        string
	Reference string
	Status    string
	Error     string
	manager   *download.Manager
	messages  []string
}

// runRequest carries the per-run choices from the download form. Empty
// fields fall back to the server's settings and token.
type runRequest struct {
	Reference      string
	Token          string
	Format         string
	CreatePlaylist bool
}

// New creates the web server. token is the server-level OAuth token, used
// for runs whose form left the token field empty. st may be nil, which
// disables history.
func New(settings *config.Settings, token string, st *store.Store) *Server {
	s := &Server{
		settings: settings,
		token:    token,
		store:    st,
		newCatalog: func(token string) download.Catalog {
			return yamusic.NewClient(token)
		},
		runs: make(map[string]*runState),
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/download", s.handleDownload).Methods("POST")
	r.HandleFunc("/progress/{id}", s.handleProgressPage).Methods("GET")
	r.HandleFunc("/api/progress/{id}", s.handleProgressAPI).Methods("GET")
	r.HandleFunc("/history", s.handleHistory).Methods("GET")
	r.HandleFunc("/history/{id}", s.handleHistoryDetail).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealthz).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var runs []store.Run
	if s.store != nil {
		var err error
		runs, err = s.store.Runs(r.Context(), 10)
		if err != nil {
			logging.Error("list runs: %v", err)
		}
	}

	s.render(w, "index", map[string]any{"Runs": runs})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	req := runRequest{
		Reference:      strings.TrimSpace(r.PostFormValue("reference")),
		Token:          strings.TrimSpace(r.PostFormValue("token")),
		Format:         strings.TrimSpace(r.PostFormValue("format")),
		CreatePlaylist: r.PostFormValue("playlist") != "",
	}
	if req.Reference == "" {
		http.Error(w, "reference is required", http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	state := &runState{ID: id, Reference: req.Reference, Status: statusRunning}

	s.mu.Lock()
	s.runs[id] = state
	s.mu.Unlock()

	go s.runDownload(id, req)

	http.Redirect(w, r, "/progress/"+id, http.StatusSeeOther)
}

// runDownload executes one download run in the background and records the
// result in the history store. Form fields override the server-level
// settings and token for this run only.
func (s *Server) runDownload(id string, req runRequest) {
	runsStarted.Inc()
	logging.Info("run %s: downloading %s", id, req.Reference)

	settings := *s.settings
	if req.Format != "" {
		settings.PreferredFormat = req.Format
	}
	if req.CreatePlaylist {
		settings.CreatePlaylist = true
	}
	token := req.Token
	if token == "" {
		token = s.token
	}

	manager := download.NewManager(&settings, s.newCatalog(token), func(event download.ProgressEvent) {
		s.appendMessage(id, event.Message)
	})
	manager.OnOutcome = func(index, total int, outcome download.Outcome) {
		tracksProcessed.WithLabelValues(string(outcome.Kind)).Inc()
	}

	s.mu.Lock()
	s.runs[id].manager = manager
	s.mu.Unlock()

	summary, err := manager.Run(context.Background(), req.Reference)
	bytesReceived.Add(float64(manager.GetProgress().ReceivedBytes))

	s.mu.Lock()
	state := s.runs[id]
	if err != nil {
		state.Status = statusError
		state.Error = err.Error()
	} else {
		state.Status = statusComplete
	}
	s.mu.Unlock()

	if err != nil {
		runsFinished.WithLabelValues(statusError).Inc()
		logging.Warn("run %s: %v", id, err)
	} else {
		runsFinished.WithLabelValues(statusComplete).Inc()
		logging.Info("run %s: %d downloaded, %d skipped, %d failed",
			id, summary.Succeeded, summary.Skipped, summary.Failed)
	}

	if s.store != nil {
		// Reuse the progress id so /history/{id} matches /progress/{id}.
		if _, saveErr := s.store.SaveRun(context.Background(), id, req.Reference, summary, err); saveErr != nil {
			logging.Error("run %s: save history: %v", id, saveErr)
		}
	}
}

func (s *Server) appendMessage(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.runs[id]
	if !ok {
		return
	}
	state.messages = append(state.messages, message)
	if len(state.messages) > maxRunMessages {
		state.messages = state.messages[len(state.messages)-maxRunMessages:]
	}
}

func (s *Server) handleProgressPage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	state, ok := s.runs[id]
	s.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.render(w, "progress", map[string]any{"ID": state.ID, "Reference": state.Reference})
}

// progressResponse is the JSON shape polled by the progress page.
type progressResponse struct {
	ID            string   `json:"id"`
	Reference     string   `json:"reference"`
	Status        string   `json:"status"`
	Error         string   `json:"error,omitempty"`
	Processed     int      `json:"processed"`
	Total         int      `json:"total"`
	Succeeded     int      `json:"succeeded"`
	Skipped       int      `json:"skipped"`
	Failed        int      `json:"failed"`
	ReceivedBytes int64    `json:"received_bytes"`
	Messages      []string `json:"messages"`
}

func (s *Server) handleProgressAPI(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.mu.RLock()
	state, ok := s.runs[id]
	if !ok {
		s.mu.RUnlock()
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown run"})
		return
	}

	resp := progressResponse{
		ID:        state.ID,
		Reference: state.Reference,
		Status:    state.Status,
		Error:     state.Error,
		Messages:  append([]string(nil), state.messages...),
	}
	manager := state.manager
	s.mu.RUnlock()

	if manager != nil {
		progress := manager.GetProgress()
		resp.Processed = progress.Processed
		resp.Total = progress.Total
		resp.Succeeded = progress.Succeeded
		resp.Skipped = progress.Skipped
		resp.Failed = progress.Failed
		resp.ReceivedBytes = progress.ReceivedBytes
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	var runs []store.Run
	if s.store != nil {
		var err error
		runs, err = s.store.Runs(r.Context(), 50)
		if err != nil {
			logging.Error("list runs: %v", err)
			http.Error(w, "history unavailable", http.StatusInternalServerError)
			return
		}
	}

	s.render(w, "history", map[string]any{"Runs": runs})
}

func (s *Server) handleHistoryDetail(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.NotFound(w, r)
		return
	}
	id := mux.Vars(r)["id"]

	run, err := s.store.RunByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logging.Error("load run %s: %v", id, err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	tracks, err := s.store.RunTracks(r.Context(), id)
	if err != nil {
		logging.Error("load run tracks %s: %v", id, err)
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	s.render(w, "rundetail", map[string]any{"Run": run, "Tracks": tracks})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		logging.Error("render %s: %v", name, err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encode response: %v", err)
	}
}
