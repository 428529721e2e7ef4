package handlers

import (
	"context"
	"net/http"

	"github.com/lasersoldier/MuseMemo/application/store"
	"github.com/lasersoldier/MuseMemo/pkg/auth"
	"github.com/lasersoldier/MuseMemo/pkg/common"
	pkgerrors "github.com/lasersoldier/MuseMemo/pkg/errors"
)

// respondAppError maps an application error onto the response envelope
func respondAppError(w http.ResponseWriter, err error) {
	status := pkgerrors.HTTPStatusFor(err)
	code := "INTERNAL"
	message := "An unexpected error occurred"
	if appErr, ok := err.(*pkgerrors.AppError); ok {
		code = string(appErr.Type)
		message = appErr.Message
	}
	common.RespondError(w, status, code, message)
}

// sessionStore resolves the request's user context and their store
func sessionStore(ctx context.Context, manager *store.Manager) (*auth.UserContext, *store.Store, error) {
	userCtx, err := auth.GetUserFromContext(ctx)
	if err != nil {
		return nil, nil, pkgerrors.NewUnauthorizedError("authentication required")
	}
	st, err := manager.ForSession(ctx, userCtx.UserID, userCtx.AccessToken)
	if err != nil {
		return nil, nil, err
	}
	return userCtx, st, nil
}
