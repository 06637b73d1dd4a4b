package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fintrack-server/src/apperr"
	"fintrack-server/src/models"
	"fintrack-server/src/util"
)

// Reporting aggregates a user's records on every call. Nothing is cached.
type Reporting struct {
	expenses EntryStore[*models.Expense]
	incomes  EntryStore[*models.Income]
}

func NewReporting(expenses EntryStore[*models.Expense], incomes EntryStore[*models.Income]) *Reporting {
	return &Reporting{expenses: expenses, incomes: incomes}
}

func (r *Reporting) ExpenseStats(ctx context.Context, callerID string) (models.ExpenseStats, error) {
	expenses, err := r.expenses.List(ctx, callerID, models.EntryFilter{})
	if err != nil {
		return models.ExpenseStats{}, apperr.Internal(fmt.Errorf("list expenses: %w", err))
	}
	return SummarizeExpenses(expenses), nil
}

func (r *Reporting) IncomeTotal(ctx context.Context, callerID string) (models.Totals, error) {
	incomes, err := r.incomes.List(ctx, callerID, models.EntryFilter{})
	if err != nil {
		return models.Totals{}, apperr.Internal(fmt.Errorf("list incomes: %w", err))
	}
	return SumIncomes(incomes), nil
}

// Summary returns income and expense totals side by side with the balance
// between them. Both totals are computed concurrently.
func (r *Reporting) Summary(ctx context.Context, callerID string) (models.Summary, error) {
	var (
		income models.Totals
		stats  models.ExpenseStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = r.IncomeTotal(gctx, callerID)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = r.ExpenseStats(gctx, callerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Summary{}, err
	}

	balance := decimal.NewFromFloat(income.Total).Sub(decimal.NewFromFloat(stats.Overall.Total))
	return models.Summary{
		Income:   income,
		Expenses: stats.Overall,
		Balance:  balance.InexactFloat64(),
	}, nil
}

// Calendar returns per-day expense totals for the month starting at month.
// Days without expenses are omitted.
func (r *Reporting) Calendar(ctx context.Context, callerID string, month time.Time) ([]models.DailyTotal, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	expenses, err := r.expenses.List(ctx, callerID, models.EntryFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list expenses: %w", err))
	}
	return DailyTotals(expenses), nil
}

type bucket struct {
	total decimal.Decimal
	count int
}

// SummarizeExpenses groups expenses by category, sorted by total descending
// (ties by category name). Overall always equals the sum of the groups.
func SummarizeExpenses(expenses []*models.Expense) models.ExpenseStats {
	groups := map[models.Category]*bucket{}

	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		b, ok := groups[e.Category]
		if !ok {
			b = &bucket{total: decimal.Zero}
			groups[e.Category] = b
		}
		b.total = b.total.Add(amount)
		b.count++
	}
	count := len(expenses)

	categoryWise := make([]models.CategoryTotal, 0, len(groups))
	for category, b := range groups {
		categoryWise = append(categoryWise, models.CategoryTotal{
			Category:    category,
			TotalAmount: b.total.InexactFloat64(),
			Count:       b.count,
		})
	}
	sort.Slice(categoryWise, func(i, j int) bool {
		if categoryWise[i].TotalAmount != categoryWise[j].TotalAmount {
			return categoryWise[i].TotalAmount > categoryWise[j].TotalAmount
		}
		return categoryWise[i].Category < categoryWise[j].Category
	})

	// Overall is summed from the emitted rows so the JSON totals agree exactly.
	var total float64
	for _, c := range categoryWise {
		total += c.TotalAmount
	}

	return models.ExpenseStats{
		CategoryWise: categoryWise,
		Overall:      models.Totals{Total: total, Count: count},
	}
}

func SumIncomes(incomes []*models.Income) models.Totals {
	total := decimal.Zero
	for _, i := range incomes {
		total = total.Add(decimal.NewFromFloat(i.Amount))
	}
	return models.Totals{Total: total.InexactFloat64(), Count: len(incomes)}
}

// DailyTotals buckets expenses by UTC calendar day, ascending.
func DailyTotals(expenses []*models.Expense) []models.DailyTotal {
	days := map[string]*bucket{}
	for _, e := range expenses {
		key := util.FormatDate(e.Date)
		b, ok := days[key]
		if !ok {
			b = &bucket{total: decimal.Zero}
			days[key] = b
		}
		b.total = b.total.Add(decimal.NewFromFloat(e.Amount))
		b.count++
	}

	totals := make([]models.DailyTotal, 0, len(days))
	for date, b := range days {
		totals = append(totals, models.DailyTotal{Date: date, Total: b.total.InexactFloat64(), Count: b.count})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals
}
