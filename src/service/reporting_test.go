package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack-server/src/models"
)

func TestExpenseStatsScenario(t *testing.T) {
	store := newTestStore(t)
	ledger := NewExpenseLedger(store.Expenses)
	reports := NewReporting(store.Expenses, store.Incomes)

	_, err := ledger.Create(context.Background(), "alice", lunch())
	require.NoError(t, err)

	stats, err := reports.ExpenseStats(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryTotal{{Category: models.CategoryFood, TotalAmount: 250, Count: 1}}, stats.CategoryWise)
	assert.Equal(t, models.Totals{Total: 250, Count: 1}, stats.Overall)
}

func TestEmptyReports(t *testing.T) {
	store := newTestStore(t)
	reports := NewReporting(store.Expenses, store.Incomes)

	total, err := reports.IncomeTotal(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, models.Totals{Total: 0, Count: 0}, total)

	stats, err := reports.ExpenseStats(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, stats.CategoryWise)
	assert.Empty(t, stats.CategoryWise)
	assert.Equal(t, models.Totals{}, stats.Overall)
}

func TestSummarizeExpenses(t *testing.T) {
	expenses := []*models.Expense{
		{Category: models.CategoryFood, Amount: 0.1},
		{Category: models.CategoryFood, Amount: 0.2},
		{Category: models.CategoryBills, Amount: 0.3},
		{Category: models.CategoryTransport, Amount: 12},
		{Category: models.CategoryHealth, Amount: 0},
	}

	stats := SummarizeExpenses(expenses)
	require.Len(t, stats.CategoryWise, 4)

	assert.Equal(t, models.CategoryTransport, stats.CategoryWise[0].Category)
	// Food and Bills tie at 0.3; ties sort by category name.
	assert.Equal(t, models.CategoryBills, stats.CategoryWise[1].Category)
	assert.Equal(t, models.CategoryFood, stats.CategoryWise[2].Category)
	assert.Equal(t, 0.3, stats.CategoryWise[2].TotalAmount)
	assert.Equal(t, 2, stats.CategoryWise[2].Count)
	assert.Equal(t, models.CategoryHealth, stats.CategoryWise[3].Category)

	var sum float64
	var count int
	for _, c := range stats.CategoryWise {
		sum += c.TotalAmount
		count += c.Count
	}
	assert.Equal(t, sum, stats.Overall.Total)
	assert.InDelta(t, 12.6, stats.Overall.Total, 1e-9)
	assert.Equal(t, 5, stats.Overall.Count)
	assert.Equal(t, count, stats.Overall.Count)
}

func TestOverallMatchesCategoryRows(t *testing.T) {
	tests := []struct {
		name     string
		expenses []*models.Expense
	}{
		{"two categories", []*models.Expense{
			{Category: models.CategoryFood, Amount: 0.1},
			{Category: models.CategoryBills, Amount: 0.2},
		}},
		{"three categories", []*models.Expense{
			{Category: models.CategoryFood, Amount: 0.1},
			{Category: models.CategoryBills, Amount: 0.2},
			{Category: models.CategoryHealth, Amount: 0.7},
			{Category: models.CategoryHealth, Amount: 1.15},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := SummarizeExpenses(tt.expenses)

			var sum float64
			for _, c := range stats.CategoryWise {
				sum += c.TotalAmount
			}
			assert.Equal(t, sum, stats.Overall.Total)
			assert.Equal(t, len(tt.expenses), stats.Overall.Count)
		})
	}
}

func TestSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	expenses := NewExpenseLedger(store.Expenses)
	incomes := NewIncomeLedger(store.Incomes)
	reports := NewReporting(store.Expenses, store.Incomes)

	_, err := incomes.Create(ctx, "alice", &models.IncomeRequest{Amount: ptr(1000.0), Source: ptr("Salary"), Date: ptr("2025-01-01")})
	require.NoError(t, err)
	_, err = expenses.Create(ctx, "alice", lunch())
	require.NoError(t, err)
	_, err = expenses.Create(ctx, "bob", lunch())
	require.NoError(t, err)

	summary, err := reports.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.Totals{Total: 1000, Count: 1}, summary.Income)
	assert.Equal(t, models.Totals{Total: 250, Count: 1}, summary.Expenses)
	assert.Equal(t, 750.0, summary.Balance)
}

func TestCalendar(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ledger := NewExpenseLedger(store.Expenses)
	reports := NewReporting(store.Expenses, store.Incomes)

	for _, date := range []string{"2025-01-10", "2025-01-10", "2025-01-31T23:30:00Z", "2025-01-02", "2025-02-01"} {
		req := lunch()
		req.Date = ptr(date)
		_, err := ledger.Create(ctx, "alice", req)
		require.NoError(t, err)
	}

	days, err := reports.Calendar(ctx, "alice", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []models.DailyTotal{
		{Date: "2025-01-02", Total: 250, Count: 1},
		{Date: "2025-01-10", Total: 500, Count: 2},
		{Date: "2025-01-31", Total: 250, Count: 1},
	}, days)
}
