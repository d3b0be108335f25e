// Package report reduces ledger slices into the figures the dashboard and
// report views display. Everything here is a pure function over a slice of
// transactions: no I/O, no clock, and the result never depends on input
// order. Amounts stay in integer cents throughout.
package report

import (
	"sort"

	"github.com/tallyworks/kasa/internal/kasa/domain"
)

// Totals are the headline figures for a slice of the ledger.
type Totals struct {
	Income  domain.Money `json:"income"`
	Expense domain.Money `json:"expense"`
	Balance domain.Money `json:"balance"`
	Count   int          `json:"count"`
}

// CategoryTotal is one slice of the category breakdown.
type CategoryTotal struct {
	CategoryID   string           `json:"category_id"`
	CategoryName string           `json:"category_name"`
	Type         domain.EntryType `json:"type"`
	Color        string           `json:"color"`
	Amount       domain.Money     `json:"amount"`
}

// DayTotal is one day's worth of income and expense.
type DayTotal struct {
	Date    domain.Date  `json:"date"`
	Income  domain.Money `json:"income"`
	Expense domain.Money `json:"expense"`
}

// Sum computes the headline totals. An empty slice yields zeroes.
func Sum(transactions []domain.Transaction) Totals {
	var t Totals
	for _, tx := range transactions {
		switch tx.Type {
		case domain.TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case domain.TypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
		t.Count++
	}
	t.Balance = t.Income.Sub(t.Expense)
	return t
}

// ByCategory groups amounts by (category, type). Transactions without a
// category are excluded from this view; that is not an error. Category
// names and colors come from the provided category set. Output is ordered
// by amount descending, ties broken by name, so charts are deterministic.
func ByCategory(transactions []domain.Transaction, categories []domain.Category) []CategoryTotal {
	byID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	type key struct {
		categoryID string
		typ        domain.EntryType
	}
	groups := make(map[key]domain.Money)
	for _, tx := range transactions {
		if tx.CategoryID == "" {
			continue
		}
		k := key{categoryID: tx.CategoryID, typ: tx.Type}
		groups[k] = groups[k].Add(tx.Amount)
	}

	out := make([]CategoryTotal, 0, len(groups))
	for k, amount := range groups {
		ct := CategoryTotal{
			CategoryID: k.categoryID,
			Type:       k.typ,
			Amount:     amount,
		}
		if c, ok := byID[k.categoryID]; ok {
			ct.CategoryName = c.Name
			ct.Color = c.Color
		}
		out = append(out, ct)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out
}

// ByDay groups income and expense sums per calendar day, ordered ascending
// by date.
func ByDay(transactions []domain.Transaction) []DayTotal {
	groups := make(map[domain.Date]DayTotal)
	for _, tx := range transactions {
		d := groups[tx.TransactionDate]
		d.Date = tx.TransactionDate
		switch tx.Type {
		case domain.TypeIncome:
			d.Income = d.Income.Add(tx.Amount)
		case domain.TypeExpense:
			d.Expense = d.Expense.Add(tx.Amount)
		}
		groups[tx.TransactionDate] = d
	}

	out := make([]DayTotal, 0, len(groups))
	for _, d := range groups {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Today filters the slice to transactions dated exactly today. The caller
// supplies today computed in the same calendar convention transaction
// dates are stored in.
func Today(transactions []domain.Transaction, today domain.Date) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range transactions {
		if tx.TransactionDate.Equal(today) {
			out = append(out, tx)
		}
	}
	return out
}
