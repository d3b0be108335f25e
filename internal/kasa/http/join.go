package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type JoinHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP redeems an invite code and joins the caller to the company
// holding it.
func (h *JoinHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	membership, err := h.InviteService.Redeem(ctx, req.Code, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toMemberResponse(membership))
}

type InviteCodeHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP issues a fresh invite code for the company, replacing any
// previous one.
func (h *InviteCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	code, expiresAt, err := h.InviteService.Issue(ctx, companyID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, InviteCodeResponse{
		Code:      code,
		ExpiresAt: expiresAt,
	})
}
