package models

import (
	"fmt"

	"github.com/finboard/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyAggregate holds the transaction totals of one user within one month.
type MonthlyAggregate struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	TransactionCount int64
}

// Balance returns income minus expenses. It can be negative.
func (a MonthlyAggregate) Balance() decimal.Decimal {
	return a.Income.Sub(a.Expenses)
}

// CategorySpend is the aggregate of one user's transactions for one
// category within one month.
type CategorySpend struct {
	CategoryID uuid.UUID       `json:"categoryId"`
	Name       string          `json:"category"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Type       CategoryType    `json:"type"`
	Total      decimal.Decimal `json:"total"`
	Count      int64           `json:"count"`
}

// monthSum returns the sum of all non-deleted transactions of the user
// with the given type in the month.
//
// Every aggregate query uses the same window predicate,
// [first instant of month, first instant of next month), on the UTC dates
// set by Transaction.BeforeSave. Totals from different aggregates therefore
// always reconcile.
func monthSum(userID uuid.UUID, month types.Month, t CategoryType) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := DB.Table("transactions").
		Select("SUM(amount)").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ? AND deleted_at IS NULL", userID, t, month.First(), month.Next()).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting %s total for month %s failed: %w", t, month, err)
	}

	return sum.Decimal, nil
}

// GetMonthlyAggregate reads the income and expense totals of the user for
// the month.
func GetMonthlyAggregate(userID uuid.UUID, month types.Month) (MonthlyAggregate, error) {
	income, err := monthSum(userID, month, CategoryTypeIncome)
	if err != nil {
		return MonthlyAggregate{}, err
	}

	expenses, err := monthSum(userID, month, CategoryTypeExpense)
	if err != nil {
		return MonthlyAggregate{}, err
	}

	var count int64
	err = DB.Model(&Transaction{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, month.First(), month.Next()).
		Count(&count).Error
	if err != nil {
		return MonthlyAggregate{}, err
	}

	return MonthlyAggregate{
		Income:           income,
		Expenses:         expenses,
		TransactionCount: count,
	}, nil
}

// GetCategorySpends reads the per-category totals of the user for the month,
// optionally restricted to one transaction type. Categories without
// transactions in the month are not returned.
func GetCategorySpends(userID uuid.UUID, month types.Month, t CategoryType) ([]CategorySpend, error) {
	q := DB.Table("transactions").
		Select("categories.id AS category_id, categories.name AS name, categories.color AS color, categories.icon AS icon, categories.type AS type, SUM(transactions.amount) AS total, COUNT(transactions.id) AS count").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date < ? AND transactions.deleted_at IS NULL", userID, month.First(), month.Next()).
		Group("categories.id").
		Order("categories.name ASC")

	if t != "" {
		q = q.Where("transactions.type = ?", t)
	}

	spends := make([]CategorySpend, 0)
	err := q.Scan(&spends).Error
	if err != nil {
		return nil, err
	}

	return spends, nil
}

// GetBudgetLimits reads all budget limits of the user for the month.
func GetBudgetLimits(userID uuid.UUID, month types.Month) ([]Budget, error) {
	budgets := make([]Budget, 0)

	err := DB.Where(&Budget{UserID: userID, Month: month}).Find(&budgets).Error
	if err != nil {
		return nil, err
	}

	return budgets, nil
}

// UpsertBudget creates the budget limit or, when one already exists for
// its (user, category, month) key, updates the amount of the existing one.
func UpsertBudget(budget Budget) (Budget, error) {
	var existing Budget

	err := DB.Where(&Budget{
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Month:      budget.Month,
	}).Limit(1).Find(&existing).Error
	if err != nil {
		return Budget{}, err
	}

	if existing.ID == uuid.Nil {
		err = DB.Create(&budget).Error
		return budget, err
	}

	err = DB.Model(&existing).Select("Amount").Updates(Budget{Amount: budget.Amount}).Error
	return existing, err
}

// MonthTotals is one month of a historical comparison.
type MonthTotals struct {
	Month    types.Month     `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// GetMonthlyTotals reads income and expense totals for the given number of
// months up to and including the end month, oldest month first.
func GetMonthlyTotals(userID uuid.UUID, end types.Month, months int) ([]MonthTotals, error) {
	totals := make([]MonthTotals, 0, months)

	for i := months - 1; i >= 0; i-- {
		month := end.AddDate(0, -i)

		aggregate, err := GetMonthlyAggregate(userID, month)
		if err != nil {
			return nil, err
		}

		totals = append(totals, MonthTotals{
			Month:    month,
			Income:   aggregate.Income,
			Expenses: aggregate.Expenses,
		})
	}

	return totals, nil
}
