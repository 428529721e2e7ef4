package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/application/workspace"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
	"github.com/lasersoldier/MuseMemo/pkg/auth"
	"github.com/lasersoldier/MuseMemo/pkg/common"
	"github.com/lasersoldier/MuseMemo/pkg/utils"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	manager    *store.Manager
	workspaces *workspace.Registry
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(manager *store.Manager, workspaces *workspace.Registry, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		manager:    manager,
		workspaces: workspaces,
		logger:     logger,
	}
}

// LoginRequest represents the request body for logging in. An empty
// password selects the passwordless magic-link flow.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionResponse represents an established session
type SessionResponse struct {
	User        *prompt.Profile `json:"user"`
	AccessToken string          `json:"accessToken"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	st := h.manager.Anonymous()
	result, err := st.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		st.Close()
		h.logger.Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		respondAppError(w, err)
		return
	}

	if result.LinkSent {
		st.Close()
		common.RespondJSON(w, http.StatusAccepted, map[string]interface{}{
			"linkSent": true,
			"message":  "Check your email for the login link!",
		})
		return
	}

	h.manager.Adopt(result.User.ID, st)
	common.RespondJSON(w, http.StatusOK, SessionResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	st := h.manager.Anonymous()
	result, err := st.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		st.Close()
		h.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		respondAppError(w, err)
		return
	}

	h.manager.Adopt(result.User.ID, st)
	common.RespondJSON(w, http.StatusCreated, SessionResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	h.workspaces.Drop(userCtx.UserID)
	h.manager.Drop(r.Context(), userCtx.UserID)
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, st.User())
}
