package insights

import "github.com/shopspring/decimal"

// ExpenseLine is the slice of an expense that aggregation needs.
type ExpenseLine struct {
	Category string
	Cost     decimal.Decimal
	Paid     bool
}

// BudgetSummary relates a client's allocated budget to committed spend.
// Total is the canonical spend definition used everywhere: venue cost plus
// planned services plus recorded expenses, all three contributing.
type BudgetSummary struct {
	Budget       decimal.Decimal `json:"budget"`
	VenueCost    decimal.Decimal `json:"venueCost"`
	PlannedTotal decimal.Decimal `json:"plannedTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Total        decimal.Decimal `json:"total"`
	Remaining    decimal.Decimal `json:"remaining"`
	OverBudget   bool            `json:"overBudget"`
}

// Summarize computes the budget/spend relationship for one client. An
// absent budget or unassigned venue is passed as zero. The over-budget flag
// drives display coloring only; it never blocks a mutation.
func Summarize(budget, venueCost decimal.Decimal, serviceCosts []decimal.Decimal, expenses []ExpenseLine) BudgetSummary {
	planned := decimal.Zero
	for _, c := range serviceCosts {
		planned = planned.Add(c)
	}
	spent := decimal.Zero
	for _, e := range expenses {
		// Paid and unpaid both count; isPaid is payment status, not a filter.
		spent = spent.Add(e.Cost)
	}
	total := venueCost.Add(planned).Add(spent)
	remaining := budget.Sub(total)
	return BudgetSummary{
		Budget:       budget,
		VenueCost:    venueCost,
		PlannedTotal: planned,
		ExpenseTotal: spent,
		Total:        total,
		Remaining:    remaining,
		OverBudget:   remaining.IsNegative(),
	}
}

// CategoryTotal is an amount aggregated under one expense category.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// CategoryTotals groups expenses by exact category string, summing cost per
// group, in first-seen order. Matching is case-sensitive: "Catering" and
// "catering" are distinct buckets.
func CategoryTotals(expenses []ExpenseLine) []CategoryTotal {
	idx := make(map[string]int)
	var totals []CategoryTotal
	for _, e := range expenses {
		if i, ok := idx[e.Category]; ok {
			totals[i].Value = totals[i].Value.Add(e.Cost)
			continue
		}
		idx[e.Category] = len(totals)
		totals = append(totals, CategoryTotal{Name: e.Category, Value: e.Cost})
	}
	return totals
}
