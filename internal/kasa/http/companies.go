package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type CompaniesHandler struct {
	CompanyService *service.CompanyService
}

// HandleCreate sets up a new company owned by the caller. The response
// includes the initial invite code so the onboarding flow can show it
// without a second request.
func (h *CompaniesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	company, err := h.CompanyService.Create(ctx, req.Name, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := CompanyResponse{
		ID:                  company.ID,
		Name:                company.Name,
		OwnerID:             company.OwnerID,
		Role:                "owner",
		InviteCode:          company.InviteCode,
		InviteCodeExpiresAt: company.InviteCodeExpiresAt,
		CreatedAt:           company.CreatedAt,
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleList returns every company the caller belongs to.
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)

	list, err := h.CompanyService.ListForUser(ctx, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := CompanyListResponse{Companies: make([]CompanyResponse, 0, len(list))}
	for _, uc := range list {
		resp.Companies = append(resp.Companies, toCompanyResponse(uc.Company, uc.Role))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns one company with the caller's role. Owners and admins
// also see the current invite code.
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	company, membership, err := h.CompanyService.ResolveForUser(ctx, companyID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := toCompanyResponse(company, membership.Role)
	if membership.Role.CanManageTeam() {
		resp.InviteCode = company.InviteCode
		resp.InviteCodeExpiresAt = company.InviteCodeExpiresAt
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRename updates the company name.
func (h *CompaniesHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	var req RenameCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	company, err := h.CompanyService.Rename(ctx, companyID, userID, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCompanyResponse(company, ""))
}
