package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "github.com/hbauer/flowview/pkg/errors"

	"github.com/hbauer/flowview/pkg/cache"
	"github.com/hbauer/flowview/pkg/events"
	"github.com/hbauer/flowview/pkg/observability"
	"github.com/hbauer/flowview/pkg/preview"
	"github.com/hbauer/flowview/pkg/session"
	"github.com/hbauer/flowview/pkg/store"
)

// =============================================================================
// Wire Types
// =============================================================================

type diagramRequest struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

type diagramResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type openSessionRequest struct {
	// Exactly one of DiagramID and Source must be set.
	DiagramID string `json:"diagram_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Name      string `json:"name,omitempty"`
}

type nodeState struct {
	ID      string `json:"id"`
	Label   string `json:"label,omitempty"`
	Visible bool   `json:"visible"`
}

type sessionResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name,omitempty"`
	Nodes []nodeState `json:"nodes"`
	Text  string      `json:"text"`
}

type visibilityRequest struct {
	Node    string `json:"node"`
	Visible bool   `json:"visible"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// Diagram Handlers
// =============================================================================

func (s *Server) handleCreateDiagram(w http.ResponseWriter, r *http.Request) {
	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if err := apperrors.ValidateSource(req.Source); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	if err := apperrors.ValidateName(req.Name); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	now := time.Now().UTC()
	d := &store.Diagram{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Source:    req.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.diagrams.Put(r.Context(), d); err != nil {
		s.logger.Errorf("store diagram: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "store diagram"))
		return
	}
	writeJSON(w, http.StatusCreated, diagramResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	list, err := s.diagrams.List(r.Context())
	if err != nil {
		s.logger.Errorf("list diagrams: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "list diagrams"))
		return
	}
	out := make([]diagramResponse, 0, len(list))
	for _, d := range list {
		out = append(out, diagramResponse{ID: d.ID, Name: d.Name, CreatedAt: d.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	d, err := s.diagrams.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		httpError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeDiagramNotFound, "diagram not found"))
		return
	}
	if err != nil {
		s.logger.Errorf("get diagram: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "get diagram"))
		return
	}
	writeJSON(w, http.StatusOK, diagramResponse{ID: d.ID, Name: d.Name, Source: d.Source, CreatedAt: d.CreatedAt})
}

func (s *Server) handleDeleteDiagram(w http.ResponseWriter, r *http.Request) {
	if err := s.diagrams.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Errorf("delete diagram: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete diagram"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Session Handlers
// =============================================================================

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}

	source := req.Source
	name := req.Name
	switch {
	case req.DiagramID != "" && req.Source != "":
		httpError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "diagram_id and source are mutually exclusive"))
		return
	case req.DiagramID != "":
		d, err := s.diagrams.Get(r.Context(), req.DiagramID)
		if errors.Is(err, store.ErrNotFound) {
			httpError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeDiagramNotFound, "diagram not found"))
			return
		}
		if err != nil {
			s.logger.Errorf("get diagram: %v", err)
			httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "get diagram"))
			return
		}
		source = d.Source
		if name == "" {
			name = d.Name
		}
	case req.Source == "":
		httpError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "diagram_id or source is required"))
		return
	default:
		if err := apperrors.ValidateSource(req.Source); err != nil {
			httpError(w, http.StatusBadRequest, err)
			return
		}
	}
	if err := apperrors.ValidateName(name); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}

	sess := session.New(name, source)
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.logger.Errorf("store session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "store session"))
		return
	}
	observability.Session().OnOpen(r.Context(), sess.ID, sess.Model().NodeCount(), sess.Model().EdgeCount())
	writeJSON(w, http.StatusCreated, s.sessionResponse(sess))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.logger.Errorf("list sessions: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "list sessions"))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.fetchSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Errorf("delete session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.fetchSession(w, r)
	if !ok {
		return
	}
	start := time.Now()
	text := sess.Render(s.renderer)
	observability.Session().OnRender(r.Context(), sess.ID, time.Since(start))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.fetchSession(w, r)
	if !ok {
		return
	}

	key := cache.PreviewKey(sess.Source, sess.Visibility().Visible(), "svg")
	if svg, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "preview")
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "preview")

	dot := preview.ToDOT(sess.Model(), sess.Visibility())
	svg, err := preview.RenderSVG(r.Context(), dot)
	if err != nil {
		s.logger.Errorf("render preview: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeRender, err, "render preview"))
		return
	}
	if err := s.cache.Set(r.Context(), key, svg, s.previewTTL); err != nil {
		s.logger.Warnf("cache preview: %v", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "preview", len(svg))
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

// =============================================================================
// Visibility Handlers
// =============================================================================

func (s *Server) handleSetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON body"))
		return
	}
	if err := apperrors.ValidateNodeID(req.Node); err != nil {
		httpError(w, http.StatusBadRequest, err)
		return
	}
	s.mutate(w, r, func(sess *session.Session) {
		sess.Visibility().SetVisible(req.Node, req.Visible)
	})
}

func (s *Server) handleShowAll(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) { sess.Visibility().ShowAll() })
}

func (s *Server) handleHideAll(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(sess *session.Session) { sess.Visibility().HideAll() })
}

func (s *Server) handleShowDescendants(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "node")
	s.mutate(w, r, func(sess *session.Session) { sess.Visibility().ShowDescendants(node) })
}

func (s *Server) handleShowAncestors(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "node")
	s.mutate(w, r, func(sess *session.Session) { sess.Visibility().ShowAncestors(node) })
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		httpError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found"))
		return
	}
	if err != nil {
		s.logger.Errorf("get session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "get session"))
		return
	}

	node := chi.URLParam(r, "node")
	if !sess.Model().Knows(node) {
		httpError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeNodeNotFound, "unknown node"))
		return
	}

	// The hub handlers mutate and persist the session; re-read afterwards.
	s.hub.Emit(events.Click{Session: id, Node: node})

	sess, err = s.sessions.Get(r.Context(), id)
	if err != nil {
		s.logger.Errorf("get session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "get session"))
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

// =============================================================================
// Helpers
// =============================================================================

// mutate applies one visibility mutation, persists the session, and
// responds with the refreshed session view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*session.Session)) {
	sess, ok := s.fetchSession(w, r)
	if !ok {
		return
	}
	fn(sess)
	if err := s.sessions.Put(r.Context(), sess); err != nil {
		s.logger.Errorf("store session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "store session"))
		return
	}
	observability.Session().OnVisibilityChange(r.Context(), sess.ID, len(sess.Visibility().Visible()))
	writeJSON(w, http.StatusOK, s.sessionResponse(sess))
}

func (s *Server) fetchSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		httpError(w, http.StatusNotFound, apperrors.New(apperrors.ErrCodeSessionNotFound, "session not found"))
		return nil, false
	}
	if err != nil {
		s.logger.Errorf("get session: %v", err)
		httpError(w, http.StatusInternalServerError, apperrors.Wrap(apperrors.ErrCodeStore, err, "get session"))
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionResponse(sess *session.Session) sessionResponse {
	m := sess.Model()
	vis := sess.Visibility()
	nodes := make([]nodeState, 0, len(m.KnownIDs()))
	for _, id := range m.KnownIDs() {
		ns := nodeState{ID: id, Visible: vis.IsVisible(id)}
		if n, ok := m.Node(id); ok {
			ns.Label = n.Label
		}
		nodes = append(nodes, ns)
	}
	return sessionResponse{
		ID:    sess.ID,
		Name:  sess.Name,
		Nodes: nodes,
		Text:  sess.Render(s.renderer),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  string(apperrors.GetCode(err)),
	})
}
