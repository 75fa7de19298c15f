package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"svw.info/powerletter/internal/domain"
	"svw.info/powerletter/internal/infrastructure/storage"
	"svw.info/powerletter/internal/ports"
	"svw.info/powerletter/internal/scoring"
	"svw.info/powerletter/internal/session"
	"svw.info/powerletter/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/session", h.handleStart)
	mux.HandleFunc("/api/state", h.handleState)
	mux.HandleFunc("/api/press", h.event(func(s *session.Session, req eventReq) domain.Outcome { return s.Press(req.coord()) }))
	mux.HandleFunc("/api/enter", h.event(func(s *session.Session, req eventReq) domain.Outcome { return s.Enter(req.coord()) }))
	mux.HandleFunc("/api/release", h.event(func(s *session.Session, _ eventReq) domain.Outcome { return s.Release() }))
	mux.HandleFunc("/api/capture-lost", h.event(func(s *session.Session, _ eventReq) domain.Outcome { return s.CaptureLost() }))
	mux.HandleFunc("/api/undo", h.event(func(s *session.Session, _ eventReq) domain.Outcome { return s.Undo() }))
	mux.HandleFunc("/api/reset", h.event(func(s *session.Session, _ eventReq) domain.Outcome { return s.Reset() }))
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/next", h.handleNext)
	mux.HandleFunc("/api/back", h.handleBack)
	mux.HandleFunc("/api/close", h.handleClose)
	mux.HandleFunc("/api/levels", h.handleLevels)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/standings", h.handleStandings)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// decode reads an optional JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrMalformedLevel), errors.Is(err, storage.ErrBadSelection):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) lookup(w http.ResponseWriter, id string) (*session.Session, bool) {
	s, err := h.UC.Session(id)
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return nil, false
	}
	return s, true
}

func selectionFrom(lang, cat, diff string) domain.Selection {
	return domain.Selection{Language: lang, Category: cat, Difficulty: domain.ParseDifficulty(diff)}
}

// ---- Session lifecycle ----

type startReq struct {
	Language   string `json:"language,omitempty"`
	Category   string `json:"category,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

type stateResp struct {
	Outcome domain.Outcome  `json:"outcome"`
	State   domain.Snapshot `json:"state"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req startReq
	if !decode(w, r, &req) {
		return
	}
	s, err := h.UC.Start(r.Context(), selectionFrom(req.Language, req.Category, req.Difficulty), domain.ParseMode(req.Mode))
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, stateResp{Outcome: domain.OutcomeStarted, State: s.Snapshot()})
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	s, ok := h.lookup(w, r.URL.Query().Get("session"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stateResp{Outcome: domain.OutcomeIgnored, State: s.Snapshot()})
}

func (h *Handler) handleClose(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req eventReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.UC.Close(req.Session); err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Pointer and toolbar events ----

type eventReq struct {
	Session string `json:"session"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

func (e eventReq) coord() domain.Coord { return domain.Coord{X: e.X, Y: e.Y} }

func (h *Handler) event(apply func(*session.Session, eventReq) domain.Outcome) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allow(w, r, http.MethodPost) {
			return
		}
		var req eventReq
		if !decode(w, r, &req) {
			return
		}
		s, ok := h.lookup(w, req.Session)
		if !ok {
			return
		}
		out := apply(s, req)
		writeJSON(w, http.StatusOK, stateResp{Outcome: out, State: s.Snapshot()})
	}
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req eventReq
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.Session)
	if !ok {
		return
	}
	out, err := s.Hint(r.Context())
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stateResp{Outcome: out, State: s.Snapshot()})
}

type navResp struct {
	Moved bool            `json:"moved"`
	State domain.Snapshot `json:"state"`
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req eventReq
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.Session)
	if !ok {
		return
	}
	moved := s.Next()
	writeJSON(w, http.StatusOK, navResp{Moved: moved, State: s.Snapshot()})
}

func (h *Handler) handleBack(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req eventReq
	if !decode(w, r, &req) {
		return
	}
	s, ok := h.lookup(w, req.Session)
	if !ok {
		return
	}
	h.UC.Back(s.ID)
	writeJSON(w, http.StatusOK, navResp{Moved: true, State: s.Snapshot()})
}

// ---- Levels ----

type levelsResp struct {
	Levels []domain.LevelMeta `json:"levels"`
	Error  string             `json:"error,omitempty"`
}

type saveReq struct {
	Language   string        `json:"language,omitempty"`
	Category   string        `json:"category,omitempty"`
	Difficulty string        `json:"difficulty,omitempty"`
	Level      *domain.Level `json:"level"`
}

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

// handleLevels lists a pack on GET and stores an authored level on POST.
func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		ls, err := h.UC.ListLevels(r.Context(), selectionFrom(q.Get("language"), q.Get("category"), q.Get("difficulty")))
		if err != nil {
			writeJSON(w, statusFor(err), levelsResp{Error: err.Error()})
			return
		}
		if ls == nil {
			ls = []domain.LevelMeta{}
		}
		writeJSON(w, http.StatusOK, levelsResp{Levels: ls})
	case http.MethodPost:
		var req saveReq
		if !decode(w, r, &req) {
			return
		}
		if req.Level == nil {
			writeJSON(w, http.StatusBadRequest, saveResp{Error: "missing level"})
			return
		}
		if err := h.UC.SaveLevel(r.Context(), selectionFrom(req.Language, req.Category, req.Difficulty), req.Level); err != nil {
			writeJSON(w, statusFor(err), saveResp{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusCreated, saveResp{ID: req.Level.ID})
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

// ---- Solve ----

type solveReq struct {
	Session string `json:"session"`
	Unique  bool   `json:"unique,omitempty"`
}

type solveResp struct {
	Paths      []domain.WordPath `json:"paths,omitempty"`
	Unique     *bool             `json:"unique,omitempty"`
	DurationMs int64             `json:"durationMs,omitempty"`
	Nodes      int               `json:"nodes,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req solveReq
	if !decode(w, r, &req) {
		return
	}
	fail := func(err error, st ports.Stats) {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
	}
	paths, st, err := h.UC.Solve(r.Context(), req.Session)
	if err != nil {
		fail(err, st)
		return
	}
	resp := solveResp{Paths: paths, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes}
	if req.Unique {
		unique, ust, err := h.UC.Unique(r.Context(), req.Session)
		if err != nil {
			fail(err, ust)
			return
		}
		resp.Unique = &unique
		resp.DurationMs += ust.Duration.Milliseconds()
		resp.Nodes += ust.Nodes
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Teams ----

type standingsResp struct {
	Teams []scoring.Team `json:"teams"`
}

func (h *Handler) handleStandings(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	teams, err := h.UC.Standings(r.URL.Query().Get("session"))
	if err != nil {
		writeJSON(w, statusFor(err), errorResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, standingsResp{Teams: teams})
}
