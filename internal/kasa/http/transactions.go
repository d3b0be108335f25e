package http

import (
	"encoding/json"
	"net/http"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/pkg/httpx"
)

type TransactionsHandler struct {
	TransactionService *service.TransactionService
}

// HandleRecord appends a ledger entry.
func (h *TransactionsHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	recorded, err := h.TransactionService.Record(ctx, companyID, userID, service.RecordTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Date:        req.Date,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTransactionResponse(recorded))
}

// HandleList returns ledger entries, newest first, narrowed by the query
// string: from, to (YYYY-MM-DD), type, category_id, q (description search).
func (h *TransactionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")

	filter, err := filterFromQuery(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	transactions, err := h.TransactionService.List(ctx, companyID, userID, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TransactionListResponse{
		Transactions: toTransactionResponses(transactions),
	})
}

// HandleDelete removes a ledger entry.
func (h *TransactionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := httpx.UserIDFromCtx(ctx)
	companyID := r.PathValue("companyID")
	transactionID := r.PathValue("transactionID")

	if err := h.TransactionService.Delete(ctx, companyID, userID, transactionID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (store.TransactionFilter, error) {
	q := r.URL.Query()
	var filter store.TransactionFilter

	if raw := q.Get("from"); raw != "" {
		from, err := domain.ParseDate(raw)
		if err != nil {
			return filter, domain.ErrInvalidDate
		}
		filter.From = from
	}
	if raw := q.Get("to"); raw != "" {
		to, err := domain.ParseDate(raw)
		if err != nil {
			return filter, domain.ErrInvalidDate
		}
		filter.To = to
	}
	if raw := q.Get("type"); raw != "" {
		typ, err := domain.ParseEntryType(raw)
		if err != nil {
			return filter, err
		}
		filter.Type = typ
	}
	filter.CategoryID = q.Get("category_id")
	filter.Search = q.Get("q")
	return filter, nil
}
