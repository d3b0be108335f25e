package http

import (
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/report"
)

// Wire types for the JSON API. Domain structs never cross the HTTP
// boundary directly; these shapes are the contract clients code against.

type CompanyResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	OwnerID             string     `json:"owner_id"`
	Role                string     `json:"role,omitempty"`
	InviteCode          string     `json:"invite_code,omitempty"`
	InviteCodeExpiresAt *time.Time `json:"invite_code_expires_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

type CreateCompanyRequest struct {
	Name string `json:"name"`
}

type RenameCompanyRequest struct {
	Name string `json:"name"`
}

type JoinRequest struct {
	Code string `json:"code"`
}

type InviteCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type CategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
}

type CategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type TransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
	Date        string `json:"date"`
}

type TransactionResponse struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Amount      domain.Money `json:"amount"`
	Description string       `json:"description,omitempty"`
	CategoryID  string       `json:"category_id,omitempty"`
	Date        domain.Date  `json:"date"`
	CreatedBy   string       `json:"created_by"`
	CreatedAt   time.Time    `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

type SummaryResponse struct {
	From       string                 `json:"from,omitempty"`
	To         string                 `json:"to,omitempty"`
	Totals     report.Totals          `json:"totals"`
	ByCategory []report.CategoryTotal `json:"by_category"`
	ByDay      []report.DayTotal      `json:"by_day"`
}

type OverviewResponse struct {
	Totals report.Totals         `json:"totals"`
	Today  report.Totals         `json:"today"`
	Recent []TransactionResponse `json:"recent"`
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func toCompanyResponse(c domain.Company, role domain.Role) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		Role:      role.String(),
		CreatedAt: c.CreatedAt,
	}
}

func toMemberResponse(m domain.Membership) MemberResponse {
	return MemberResponse{
		UserID:   m.UserID,
		Role:     m.Role.String(),
		JoinedAt: m.JoinedAt,
	}
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:    c.ID,
		Name:  c.Name,
		Type:  c.Type.String(),
		Color: c.Color,
	}
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type.String(),
		Amount:      t.Amount,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		Date:        t.TransactionDate,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}

func toTransactionResponses(transactions []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, toTransactionResponse(t))
	}
	return out
}
