package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
	"github.com/lasersoldier/MuseMemo/pkg/common"
	"github.com/lasersoldier/MuseMemo/pkg/utils"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	manager *store.Manager
	logger  *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(manager *store.Manager, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{manager: manager, logger: logger}
}

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, st.User())
}

// UpdateProfile handles PATCH /profile. The name change is pushed to
// the backend synchronously; when that push fails the local profile is
// rolled back and the error surfaced.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	userCtx, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	patch := prompt.ProfilePatch{
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	}
	if err := st.UpdateProfile(r.Context(), patch); err != nil {
		h.logger.Warn("profile update failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, st.User())
}
