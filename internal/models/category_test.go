package models_test

import (
	"github.com/finboard/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTypeInvalid() {
	user := suite.createTestUser()

	category := models.Category{UserID: user.ID, Name: "Broken", Type: "transfer"}
	err := models.DB.Create(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryDisplayDefaults() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)

	assert.Equal(suite.T(), "#6366f1", category.Color)
	assert.Equal(suite.T(), "default", category.Icon)
}

// TestCategoryDeleteGuard verifies that a category cannot be deleted while
// transactions still reference it.
func (suite *TestSuiteStandard) TestCategoryDeleteGuard() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)
	transaction := suite.createTestTransaction(category, decimal.NewFromFloat(17.23))

	err := models.DB.Delete(&category).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryHasTransactions)

	err = models.DB.Delete(&transaction).Error
	require.NoError(suite.T(), err)

	err = models.DB.Delete(&category).Error
	assert.NoError(suite.T(), err)
}

// TestCategoryBatchDelete verifies that deleting by condition is not
// blocked by the transaction guard of individual categories.
func (suite *TestSuiteStandard) TestCategoryBatchDelete() {
	user := suite.createTestUser()
	category := suite.createTestCategory(user, models.CategoryTypeExpense)
	_ = suite.createTestTransaction(category, decimal.NewFromFloat(17.23))

	err := models.DB.Unscoped().Where("true").Delete(&models.Transaction{}).Error
	require.NoError(suite.T(), err)

	err = models.DB.Unscoped().Where("true").Delete(&models.Category{}).Error
	require.NoError(suite.T(), err)

	var count int64
	err = models.DB.Unscoped().Model(&models.Category{}).Count(&count).Error
	require.NoError(suite.T(), err)
	assert.Zero(suite.T(), count)
}
