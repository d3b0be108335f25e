package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/service"
	"github.com/tallyworks/kasa/internal/kasa/store"
	"github.com/tallyworks/kasa/pkg/httpx"
	"github.com/tallyworks/kasa/pkg/identity"
	"github.com/tallyworks/kasa/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     identity.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store              store.Store
	CompanyService     *service.CompanyService
	InviteService      *service.InviteService
	MembershipService  *service.MembershipService
	CategoryService    *service.CategoryService
	TransactionService *service.TransactionService
	ReportService      *service.ReportService
}

func NewRouter(
	verifier identity.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCompanies()
	r.registerJoin()
	r.registerMembers()
	r.registerCategories()
	r.registerTransactions()
	r.registerReports()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with bearer authentication and a per-user rate limit.
func (r *Router) secured(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerCompanies() {
	h := &CompaniesHandler{CompanyService: r.CompanyService}

	r.Mux.Handle("POST /v1/companies", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/companies", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/companies/{companyID}", r.secured(http.HandlerFunc(h.HandleGet), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/companies/{companyID}", r.secured(http.HandlerFunc(h.HandleRename), httpx.ModerateLimit))
}

func (r *Router) registerJoin() {
	joinHandler := &JoinHandler{InviteService: r.InviteService}
	codeHandler := &InviteCodeHandler{InviteService: r.InviteService}

	// Redeeming is the brute-force target: six digits only survive a
	// strict per-user limit on top of the short code lifetime.
	r.Mux.Handle("POST /v1/join", r.secured(joinHandler, httpx.StrictLimit))

	r.Mux.Handle("POST /v1/companies/{companyID}/invite-code", r.secured(codeHandler, httpx.ModerateLimit))
}

func (r *Router) registerMembers() {
	h := &MembersHandler{MembershipService: r.MembershipService}

	r.Mux.Handle("GET /v1/companies/{companyID}/members", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("PATCH /v1/companies/{companyID}/members/{userID}", r.secured(http.HandlerFunc(h.HandleSetRole), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/companies/{companyID}/members/{userID}", r.secured(http.HandlerFunc(h.HandleRemove), httpx.ModerateLimit))
}

func (r *Router) registerCategories() {
	h := &CategoriesHandler{CategoryService: r.CategoryService}

	r.Mux.Handle("GET /v1/companies/{companyID}/categories", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/companies/{companyID}/categories", r.secured(http.HandlerFunc(h.HandleCreate), httpx.ModerateLimit))
	r.Mux.Handle("PATCH /v1/companies/{companyID}/categories/{categoryID}", r.secured(http.HandlerFunc(h.HandleUpdate), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/companies/{companyID}/categories/{categoryID}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerTransactions() {
	h := &TransactionsHandler{TransactionService: r.TransactionService}

	r.Mux.Handle("GET /v1/companies/{companyID}/transactions", r.secured(http.HandlerFunc(h.HandleList), httpx.LenientLimit))
	r.Mux.Handle("POST /v1/companies/{companyID}/transactions", r.secured(http.HandlerFunc(h.HandleRecord), httpx.ModerateLimit))
	r.Mux.Handle("DELETE /v1/companies/{companyID}/transactions/{transactionID}", r.secured(http.HandlerFunc(h.HandleDelete), httpx.ModerateLimit))
}

func (r *Router) registerReports() {
	h := &ReportsHandler{ReportService: r.ReportService}

	r.Mux.Handle("GET /v1/companies/{companyID}/reports", r.secured(http.HandlerFunc(h.HandleSummary), httpx.LenientLimit))
	r.Mux.Handle("GET /v1/companies/{companyID}/overview", r.secured(http.HandlerFunc(h.HandleOverview), httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
