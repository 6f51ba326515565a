// Package forecast implements the spending projections shown on the
// dashboard: the daily burn rate, the estimated spend at the end of the
// month and the date at which the balance runs out at the current rate.
//
// All functions are pure. The reference date is always passed in by the
// caller so results are reproducible and testable without touching the
// wall clock.
package forecast

import (
	"time"

	"github.com/finboard/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Result holds the projections for one user and month. It is derived data,
// recomputed on every request and never persisted.
type Result struct {
	DailyAverage        decimal.Decimal // Average expenses per elapsed day of the month
	EstimatedEndOfMonth decimal.Decimal // Projected total expenses if the rate continues
	Balance             decimal.Decimal // Income minus expenses, can be negative
	BurnoutDate         *time.Time      // Projected date the balance reaches zero, nil if it survives the month
	IsRisk              bool            // Set when a burnout date exists
}

// Compute derives the spending projections for one month from the month's
// income and expense totals.
//
// For the current month, the daily average is taken over the days elapsed
// up to today. Any other month counts as fully elapsed, which avoids
// dividing by a partial day count for future months.
//
// The burnout date is only projected for a positive balance. A balance
// that is already zero or negative yields no burnout date even though the
// user is effectively already at risk; callers that want to alert on
// overspending have to check Balance themselves.
func Compute(month types.Month, income decimal.Decimal, expenses decimal.Decimal, today time.Time) Result {
	days := month.Days()
	currentDay := month.ElapsedDays(today)

	// currentDay is at least 1 for any real calendar month, the guard
	// keeps the zero value of types.Month from dividing by zero
	dailyAverage := decimal.Zero
	if currentDay > 0 {
		dailyAverage = expenses.Div(decimal.NewFromInt(int64(currentDay)))
	}

	result := Result{
		DailyAverage:        dailyAverage,
		EstimatedEndOfMonth: dailyAverage.Mul(decimal.NewFromInt(int64(days))),
		Balance:             income.Sub(expenses),
	}

	if !dailyAverage.IsPositive() || !result.Balance.IsPositive() {
		return result
	}

	daysRemaining := int64(days - currentDay)
	daysUntilZero := result.Balance.Div(dailyAverage).Floor().IntPart()

	if daysUntilZero < daysRemaining {
		burnout := today.AddDate(0, 0, int(daysUntilZero))
		result.BurnoutDate = &burnout
		result.IsRisk = true
	}

	return result
}

// BudgetProgress describes how much of a category's monthly budget limit
// has been consumed. Derived data, never persisted.
type BudgetProgress struct {
	Limit      decimal.Decimal // The configured limit, zero when none is set
	Spent      decimal.Decimal
	Percentage decimal.Decimal // Spent as a percentage of the limit, uncapped
	IsOver     bool
}

// ComputeProgress derives the budget consumption for one category.
//
// A category without a configured limit is untracked, not limited to zero:
// it reports zero percent and is never over budget, regardless of spend.
func ComputeProgress(limit decimal.Decimal, spent decimal.Decimal) BudgetProgress {
	progress := BudgetProgress{
		Limit: limit,
		Spent: spent,
	}

	if limit.IsPositive() {
		progress.Percentage = spent.Div(limit).Mul(decimal.NewFromInt(100))
		progress.IsOver = spent.GreaterThan(limit)
	} else {
		progress.Percentage = decimal.Zero
	}

	return progress
}
