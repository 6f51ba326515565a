package models_test

import (
	"time"

	"github.com/finboard/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToNow() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)

	transaction := suite.createTestTransaction(category, decimal.NewFromFloat(17.23))

	assert.False(suite.T(), transaction.Date.IsZero())
	assert.Equal(suite.T(), time.UTC, transaction.Date.Location())
}

// TestTransactionDateUTC verifies that dates are normalized to UTC on save
// so that month windows match on a single timeline.
func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)

	tz, err := time.LoadLocation("Europe/Berlin")
	require.NoError(suite.T(), err)

	transaction := models.Transaction{
		UserID:     user.ID,
		CategoryID: category.ID,
		Amount:     decimal.NewFromInt(10),
		Type:       models.CategoryTypeExpense,
		Date:       time.Date(2024, 2, 1, 0, 30, 0, 0, tz),
	}
	err = models.DB.Create(&transaction).Error
	require.NoError(suite.T(), err)

	// 00:30 CET is still January in UTC
	assert.Equal(suite.T(), time.Date(2024, 1, 31, 23, 30, 0, 0, time.UTC), transaction.Date)
}

func (suite *TestSuiteStandard) TestTransactionInvalid() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)

	tests := []struct {
		name        string
		transaction models.Transaction
		error       error
	}{
		{
			"No type",
			models.Transaction{UserID: user.ID, CategoryID: category.ID, Amount: decimal.NewFromInt(10)},
			models.ErrTransactionTypeInvalid,
		},
		{
			"Zero amount",
			models.Transaction{UserID: user.ID, CategoryID: category.ID, Type: models.CategoryTypeExpense},
			models.ErrTransactionAmountNotPositive,
		},
		{
			"Negative amount",
			models.Transaction{UserID: user.ID, CategoryID: category.ID, Amount: decimal.NewFromInt(-10), Type: models.CategoryTypeExpense},
			models.ErrTransactionAmountNotPositive,
		},
		{
			"Unknown user",
			models.Transaction{UserID: uuid.New(), CategoryID: category.ID, Amount: decimal.NewFromInt(10), Type: models.CategoryTypeExpense},
			models.ErrResourceNotFound,
		},
		{
			"Unknown category",
			models.Transaction{UserID: user.ID, CategoryID: uuid.New(), Amount: decimal.NewFromInt(10), Type: models.CategoryTypeExpense},
			models.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		transaction := tt.transaction
		err := models.DB.Create(&transaction).Error
		assert.ErrorIs(suite.T(), err, tt.error, "Test %q returned the wrong error: %v", tt.name, err)
	}
}

func (suite *TestSuiteStandard) TestTransactionTrimsDescription() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)

	transaction := models.Transaction{
		UserID:      user.ID,
		CategoryID:  category.ID,
		Amount:      decimal.NewFromInt(10),
		Type:        models.CategoryTypeExpense,
		Description: "  Lunch  ",
	}
	err := models.DB.Create(&transaction).Error
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Lunch", transaction.Description)
}
