package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type MembersHandler struct {
	MembershipService *service.MembershipService
}

// HandleList returns the company roster, oldest member first.
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	members, err := h.MembershipService.List(ctx, companyID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := MemberListResponse{Members: make([]MemberResponse, 0, len(members))}
	for _, m := range members {
		resp.Members = append(resp.Members, toMemberResponse(m))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSetRole switches a member between admin and user.
func (h *MembersHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")
	targetUserID := r.PathValue("userID")

	var req SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "role must be admin or user")
		return
	}

	updated, err := h.MembershipService.SetRole(ctx, companyID, userID, targetUserID, role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toMemberResponse(updated))
}

// HandleRemove takes a member off the roster.
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")
	targetUserID := r.PathValue("userID")

	if err := h.MembershipService.Remove(ctx, companyID, userID, targetUserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
