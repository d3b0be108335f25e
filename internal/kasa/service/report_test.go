package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallyworks/kasa/internal/kasa/domain"
	"github.com/tallyworks/kasa/internal/kasa/service"
)

func TestReportSummarize(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	reports := &service.ReportService{Store: st}
	transactions := &service.TransactionService{Store: st}
	categories := &service.CategoryService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")
	sales, err := categories.Create(ctx, company.ID, "user-owner", "Weddings", "income", "#123456")
	require.NoError(t, err)

	record := func(typ, amount, date, categoryID string) {
		t.Helper()
		_, err := transactions.Record(ctx, company.ID, "user-owner", service.RecordTransactionInput{
			Type: typ, Amount: amount, Date: date, CategoryID: categoryID,
		})
		require.NoError(t, err)
	}
	record("income", "100.00", "2026-08-10", sales.ID)
	record("income", "10.00", "2026-08-10", "")
	record("expense", "40.00", "2026-08-12", "")
	record("income", "999.00", "2026-07-01", "") // outside the range

	summary, err := reports.Summarize(ctx, company.ID, "user-owner",
		domain.NewDate(2026, time.August, 1), domain.NewDate(2026, time.August, 31))
	require.NoError(t, err)

	require.Equal(t, int64(11000), summary.Totals.Income.Cents)
	require.Equal(t, int64(4000), summary.Totals.Expense.Cents)
	require.Equal(t, int64(7000), summary.Totals.Balance.Cents)
	require.Equal(t, 3, summary.Totals.Count)

	// Only categorised entries show up in the breakdown.
	require.Len(t, summary.ByCategory, 1)
	require.Equal(t, "Weddings", summary.ByCategory[0].CategoryName)
	require.Equal(t, int64(10000), summary.ByCategory[0].Amount.Cents)

	// Days ascend.
	require.Len(t, summary.ByDay, 2)
	require.Equal(t, domain.NewDate(2026, time.August, 10), summary.ByDay[0].Date)
	require.Equal(t, domain.NewDate(2026, time.August, 12), summary.ByDay[1].Date)

	_, err = reports.Summarize(ctx, company.ID, "user-stranger", domain.Date{}, domain.Date{})
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestReportDashboard(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	reports := &service.ReportService{Store: st}
	transactions := &service.TransactionService{Store: st}

	company := newTestCompany(t, st, "Bakery", "user-owner")

	today := domain.DateOf(time.Now().UTC())
	_, err := transactions.Record(ctx, company.ID, "user-owner", service.RecordTransactionInput{
		Type: "income", Amount: "50.00", Date: today.String(),
	})
	require.NoError(t, err)

	for range 6 {
		_, err := transactions.Record(ctx, company.ID, "user-owner", service.RecordTransactionInput{
			Type: "expense", Amount: "1.00", Date: "2026-01-15",
		})
		require.NoError(t, err)
	}

	overview, err := reports.Dashboard(ctx, company.ID, "user-owner")
	require.NoError(t, err)

	require.Equal(t, int64(5000), overview.Totals.Income.Cents)
	require.Equal(t, int64(600), overview.Totals.Expense.Cents)
	require.Equal(t, 7, overview.Totals.Count)

	require.Equal(t, int64(5000), overview.Today.Income.Cents)
	require.Equal(t, 1, overview.Today.Count)

	// Recent is capped and newest-first, so today's entry leads.
	require.Len(t, overview.Recent, 5)
	require.Equal(t, today, overview.Recent[0].TransactionDate)
}
