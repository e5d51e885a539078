package handler

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YashGhavghave/Glass-Billing-Software/internal/editor"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/geom"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/models"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/render"
	"github.com/YashGhavghave/Glass-Billing-Software/internal/store"
)

// session is a server-side canvas editor bound to one custom design.
type session struct {
	mu       sync.Mutex
	id       string
	designID string
	store    *store.Store
	editor   *editor.Editor
}

// state snapshots the session. The caller holds s.mu.
func (s *session) state() models.EditorState {
	st := models.EditorState{
		SessionID:   s.id,
		DesignID:    s.designID,
		Tool:        string(s.editor.Tool()),
		Mode:        s.editor.Mode().String(),
		EditingText: s.editor.EditingText(),
		CanUndo:     s.editor.CanUndo(),
		CanRedo:     s.editor.CanRedo(),
		View:        s.store.View(),
	}
	if sel := s.editor.Selected(); !sel.IsZero() {
		st.Selected = &sel
	}
	if d, err := s.store.Active(); err == nil {
		st.Scene = d.Scene
		st.Outputs = d.Outputs
	}
	return st
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.id] = s
}

func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("editor session %s: %w", id, models.ErrNotFound)
	}
	return s, nil
}

func (r *sessionRegistry) remove(id string) (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("editor session %s: %w", id, models.ErrNotFound)
	}
	delete(r.sessions, id)
	return s, nil
}

func (r *sessionRegistry) removeDesign(designID string) []*session {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*session
	for id, s := range r.sessions {
		if s.designID == designID {
			out = append(out, s)
			delete(r.sessions, id)
		}
	}
	return out
}

func (r *sessionRegistry) drain() []*session {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.sessions = make(map[string]*session)
	return out
}

// OpenEditor handles starting an editor session on a custom design.
// @Summary Open editor session
// @Tags editor
// @Accept json
// @Produce json
// @Param id path string true "Design ID"
// @Param viewport body models.OpenEditorRequest false "Canvas size in pixels"
// @Success 201 {object} models.EditorStateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/designs/{id}/editor [post]
func (h *Handler) OpenEditor(c *gin.Context) {
	var req models.OpenEditorRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.invalidRequest(c, "Invalid editor request", err)
			return
		}
	}

	design, err := h.load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "failed to retrieve design")
		return
	}
	if !design.IsCustom() {
		h.respondError(c, errNotCustom, "failed to open editor")
		return
	}

	st := h.newStore()
	st.Load([]models.Design{*design}, design.ID)
	ed := editor.New(st, h.opts.Editor, h.logger)
	ed.SetViewport(geom.Point{X: req.Width, Y: req.Height})

	s := &session{
		id:       uuid.New().String(),
		designID: design.ID,
		store:    st,
		editor:   ed,
	}
	h.sessions.add(s)
	h.logger.Info("Opened editor session", zap.String("session", s.id), zap.String("design", design.ID))

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusCreated, models.EditorStateResponse{Data: s.state()})
}

// EditorState handles reading the state of an editor session.
// @Summary Get editor session
// @Tags editor
// @Produce json
// @Param session path string true "Session ID"
// @Success 200 {object} models.EditorStateResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/editor/{session} [get]
func (h *Handler) EditorState(c *gin.Context) {
	s, err := h.sessions.get(c.Param("session"))
	if err != nil {
		h.respondError(c, err, "failed to find editor session")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, models.EditorStateResponse{Data: s.state()})
}

// ApplyEvents handles replaying input events against an editor session.
// Events are applied in order up to the first failure; the resulting
// scene is persisted either way.
// @Summary Apply editor events
// @Tags editor
// @Accept json
// @Produce json
// @Param session path string true "Session ID"
// @Param events body models.EditorEventsRequest true "Input events"
// @Success 200 {object} models.EditorStateResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/v1/editor/{session}/events [post]
func (h *Handler) ApplyEvents(c *gin.Context) {
	var req models.EditorEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidRequest(c, "Invalid editor events", err)
		return
	}

	s, err := h.sessions.get(c.Param("session"))
	if err != nil {
		h.respondError(c, err, "failed to find editor session")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var applyErr error
	for i, ev := range req.Events {
		if err := s.editor.Apply(ev); err != nil {
			applyErr = fmt.Errorf("%w: event %d: %v", errInvalidEvent, i, err)
			break
		}
	}

	if _, err := h.commit(c.Request.Context(), s.store); err != nil {
		h.respondError(c, err, "failed to save design")
		return
	}
	if applyErr != nil {
		h.respondError(c, applyErr, "failed to apply editor events")
		return
	}

	c.JSON(http.StatusOK, models.EditorStateResponse{Data: s.state()})
}

// EditorSVG handles drawing the canvas of an editor session, including
// selection grips.
// @Summary Render editor canvas
// @Tags editor
// @Produce image/svg+xml
// @Param session path string true "Session ID"
// @Success 200 {string} string "SVG document"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/editor/{session}/svg [get]
func (h *Handler) EditorSVG(c *gin.Context) {
	s, err := h.sessions.get(c.Param("session"))
	if err != nil {
		h.respondError(c, err, "failed to find editor session")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.editor.Viewport()
	svg := render.SceneSVG(s.store.Scene(), render.SceneOptions{
		View:     s.store.View(),
		Selected: s.editor.Selected(),
		Width:    size.X,
		Height:   size.Y,
	})
	c.Data(http.StatusOK, svgContentType, []byte(svg))
}

// CloseEditor handles ending an editor session.
// @Summary Close editor session
// @Tags editor
// @Param session path string true "Session ID"
// @Success 204 "No Content"
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/editor/{session} [delete]
func (h *Handler) CloseEditor(c *gin.Context) {
	s, err := h.sessions.remove(c.Param("session"))
	if err != nil {
		h.respondError(c, err, "failed to find editor session")
		return
	}
	s.store.Close()
	h.logger.Info("Closed editor session", zap.String("session", s.id))
	c.Status(http.StatusNoContent)
}
