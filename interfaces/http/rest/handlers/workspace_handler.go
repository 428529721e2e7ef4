package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/aggregate"
	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/application/workspace"
	"github.com/lasersoldier/MuseMemo/pkg/common"
	"github.com/lasersoldier/MuseMemo/pkg/utils"
)

const (
	defaultViewportWidth  = 800
	defaultViewportHeight = 600
)

// WorkspaceHandler handles bubble-view HTTP requests
type WorkspaceHandler struct {
	manager    *store.Manager
	workspaces *workspace.Registry
	logger     *zap.Logger
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(manager *store.Manager, workspaces *workspace.Registry, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		manager:    manager,
		workspaces: workspaces,
		logger:     logger,
	}
}

// SelectRequest represents the request body for drilling into a bubble
type SelectRequest struct {
	ID   string `json:"id" validate:"required"`
	Kind string `json:"type" validate:"required,oneof=model category"`
}

// DragRequest represents the request body for drag interactions
type DragRequest struct {
	ID string  `json:"id" validate:"required"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

func (h *WorkspaceHandler) userWorkspace(r *http.Request) (*workspace.Workspace, error) {
	userCtx, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		return nil, err
	}
	return h.workspaces.For(userCtx.UserID, st), nil
}

// GetView handles GET /workspace
func (h *WorkspaceHandler) GetView(w http.ResponseWriter, r *http.Request) {
	ws, err := h.userWorkspace(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, ws.View())
}

// Select handles POST /workspace/select
func (h *WorkspaceHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	ws, err := h.userWorkspace(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, ws.Select(req.ID, aggregate.NodeKind(req.Kind)))
}

// Back handles POST /workspace/back
func (h *WorkspaceHandler) Back(w http.ResponseWriter, r *http.Request) {
	ws, err := h.userWorkspace(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, ws.Back())
}

// GetLayout handles GET /workspace/layout. Width and height describe
// the client viewport the bubbles are positioned in.
func (h *WorkspaceHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	ws, err := h.userWorkspace(r)
	if err != nil {
		respondAppError(w, err)
		return
	}

	width := queryFloat(r, "width", defaultViewportWidth)
	height := queryFloat(r, "height", defaultViewportHeight)
	if width <= 0 || height <= 0 {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "width and height must be positive")
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"nodes": ws.Layout(width, height),
	})
}

// DragStart handles POST /workspace/drag/start
func (h *WorkspaceHandler) DragStart(w http.ResponseWriter, r *http.Request) {
	h.drag(w, r, func(ws *workspace.Workspace, req DragRequest) interface{} {
		return ws.DragStart(req.ID)
	})
}

// DragMove handles POST /workspace/drag/move
func (h *WorkspaceHandler) DragMove(w http.ResponseWriter, r *http.Request) {
	h.drag(w, r, func(ws *workspace.Workspace, req DragRequest) interface{} {
		return ws.DragMove(req.ID, req.X, req.Y)
	})
}

// DragEnd handles POST /workspace/drag/end
func (h *WorkspaceHandler) DragEnd(w http.ResponseWriter, r *http.Request) {
	h.drag(w, r, func(ws *workspace.Workspace, req DragRequest) interface{} {
		return ws.DragEnd(req.ID)
	})
}

func (h *WorkspaceHandler) drag(w http.ResponseWriter, r *http.Request, apply func(*workspace.Workspace, DragRequest) interface{}) {
	var req DragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	ws, err := h.userWorkspace(r)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"nodes": apply(ws, req),
	})
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
