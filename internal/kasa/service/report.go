package service

import (
	"context"
	"time"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/report"
	"github.com/tallyworks/kasa/internal/kasa/store"
)

// overviewRecentLimit is how many latest entries the dashboard shows.
const overviewRecentLimit = 5

// Summary is a period report: overall totals plus the category and daily
// breakdowns the chart layer renders.
type Summary struct {
	From       domain.Date
	To         domain.Date
	Totals     report.Totals
	ByCategory []report.CategoryTotal
	ByDay      []report.DayTotal
}

// Overview is the dashboard payload: all-time totals, today's totals, and
// the most recent entries.
type Overview struct {
	Totals report.Totals
	Today  report.Totals
	Recent []domain.Transaction
}

// ReportService derives read-only aggregates from the ledger. All the
// arithmetic lives in the report package; this service only fetches the
// rows and scopes access.
type ReportService struct {
	Store store.Store
}

// Summarize aggregates the company's ledger over [from, to]. Zero dates
// leave that side of the range open.
func (s *ReportService) Summarize(
	ctx context.Context,
	companyID string,
	actingUserID string,
	from, to domain.Date,
) (Summary, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return Summary{}, err
	}

	transactions, err := s.Store.Transactions().ListTransactions(ctx, companyID, store.TransactionFilter{
		From: from,
		To:   to,
	})
	if err != nil {
		return Summary{}, err
	}

	categories, err := s.Store.Categories().ListCategoriesForCompany(ctx, companyID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		From:       from,
		To:         to,
		Totals:     report.Sum(transactions),
		ByCategory: report.ByCategory(transactions, categories),
		ByDay:      report.ByDay(transactions),
	}, nil
}

// Dashboard builds the company overview for the landing screen.
func (s *ReportService) Dashboard(
	ctx context.Context,
	companyID string,
	actingUserID string,
) (Overview, error) {
	if _, err := requireMembership(ctx, s.Store, companyID, actingUserID); err != nil {
		return Overview{}, err
	}

	transactions, err := s.Store.Transactions().ListTransactions(ctx, companyID, store.TransactionFilter{})
	if err != nil {
		return Overview{}, err
	}

	today := domain.DateOf(time.Now().UTC())
	recent := transactions
	if len(recent) > overviewRecentLimit {
		recent = recent[:overviewRecentLimit]
	}

	return Overview{
		Totals: report.Sum(transactions),
		Today:  report.Sum(report.Today(transactions, today)),
		Recent: recent,
	}, nil
}
