package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type CategoriesHandler struct {
	CategoryService *service.CategoryService
}

// HandleList returns the company's categories ordered by type then name.
func (h *CategoriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	categories, err := h.CategoryService.List(ctx, companyID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate adds a category.
func (h *CategoriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	created, err := h.CategoryService.Create(ctx, companyID, userID, req.Name, req.Type, req.Color)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toCategoryResponse(created))
}

// HandleUpdate renames or recolors a category.
func (h *CategoriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")
	categoryID := r.PathValue("categoryID")

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	updated, err := h.CategoryService.Update(ctx, companyID, userID, categoryID, req.Name, req.Color)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toCategoryResponse(updated))
}

// HandleDelete removes a category; its transactions survive uncategorised.
func (h *CategoriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")
	categoryID := r.PathValue("categoryID")

	if err := h.CategoryService.Delete(ctx, companyID, userID, categoryID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
