package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/domain/prompt"
	"github.com/lasersoldier/MuseMemo/pkg/common"
	"github.com/lasersoldier/MuseMemo/pkg/utils"
)

// PromptHandler handles prompt HTTP requests
type PromptHandler struct {
	manager *store.Manager
	logger  *zap.Logger
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(manager *store.Manager, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{manager: manager, logger: logger}
}

// CreatePromptRequest represents the request body for creating a prompt
type CreatePromptRequest struct {
	Title          string   `json:"title" validate:"required,min=1,max=200"`
	Content        string   `json:"content" validate:"required"`
	Model          string   `json:"model" validate:"required"`
	Tags           []string `json:"tags" validate:"required,min=1,dive,min=1,max=50"`
	Description    string   `json:"description,omitempty" validate:"omitempty,max=500"`
	SampleResponse string   `json:"sampleResponse,omitempty"`
}

// UpdatePromptRequest represents the request body for updating a prompt
type UpdatePromptRequest struct {
	Title          *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content        *string   `json:"content,omitempty"`
	Tags           *[]string `json:"tags,omitempty" validate:"omitempty,min=1,dive,min=1,max=50"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=500"`
	SampleResponse *string   `json:"sampleResponse,omitempty"`
}

// ListPrompts handles GET /prompts
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"prompts": st.Prompts(),
	})
}

// ListSavedPrompts handles GET /prompts/saved. Saved prompts are the
// user's own plus any favorites.
func (h *PromptHandler) ListSavedPrompts(w http.ResponseWriter, r *http.Request) {
	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"prompts": st.SavedPrompts(),
	})
}

// CreatePrompt handles POST /prompts
func (h *PromptHandler) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req CreatePromptRequest
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

	created, err := st.AddPrompt(r.Context(), prompt.CreateInput{
		Title:          req.Title,
		Content:        req.Content,
		Model:          prompt.Model(req.Model),
		Tags:           req.Tags,
		Description:    req.Description,
		SampleResponse: req.SampleResponse,
	})
	if err != nil {
		h.logger.Warn("prompt creation failed",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, created)
}

// UpdatePrompt handles PUT /prompts/{promptID}
func (h *PromptHandler) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "promptID")

	var req UpdatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	updated, err := st.UpdatePrompt(r.Context(), promptID, prompt.Patch{
		Title:          req.Title,
		Content:        req.Content,
		Tags:           req.Tags,
		Description:    req.Description,
		SampleResponse: req.SampleResponse,
	})
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, updated)
}

// DeletePrompt handles DELETE /prompts/{promptID}
func (h *PromptHandler) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "promptID")

	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := st.DeletePrompt(r.Context(), promptID); err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Prompt deleted"})
}

// SavePrompt handles POST /prompts/{promptID}/save, adding a public
// prompt to the user's saved collection.
func (h *PromptHandler) SavePrompt(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "promptID")

	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	saved, err := st.SavePublicPrompt(r.Context(), promptID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, saved)
}

// UnsubscribePrompt handles POST /prompts/{promptID}/unsubscribe,
// removing a prompt from the saved collection without deleting it.
func (h *PromptHandler) UnsubscribePrompt(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "promptID")

	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	unsubscribed, err := st.UnsubscribePrompt(r.Context(), promptID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, unsubscribed)
}

// RecordUsage handles POST /prompts/{promptID}/usage
func (h *PromptHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	promptID := chi.URLParam(r, "promptID")

	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	used, err := st.IncrementUsage(r.Context(), promptID)
	if err != nil {
		respondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, used)
}

// ClearUsage handles POST /prompts/usage/clear
func (h *PromptHandler) ClearUsage(w http.ResponseWriter, r *http.Request) {
	_, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	st.ClearUsageCounts(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "Usage counts cleared"})
}

// ResetAccount handles POST /account/reset, deleting the user's own
// prompts and restoring the starter collection.
func (h *PromptHandler) ResetAccount(w http.ResponseWriter, r *http.Request) {
	userCtx, st, err := sessionStore(r.Context(), h.manager)
	if err != nil {
		respondAppError(w, err)
		return
	}

	st.ResetUserData(r.Context())
	h.logger.Info("account data reset", zap.String("userID", userCtx.UserID))
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Account data reset",
		"prompts": st.Prompts(),
	})
}
