package models_test

import (
	"github.com/finboard/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserTrimWhitespace() {
	user := models.User{
		Name:     "  Jane Doe ",
		Email:    " jane@example.com ",
		Username: " jane ",
	}
	err := models.DB.Create(&user).Error
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), "Jane Doe", user.Name)
	assert.Equal(suite.T(), "jane@example.com", user.Email)
	assert.Equal(suite.T(), "jane", user.Username)
}

func (suite *TestSuiteStandard) TestUserCurrencyDefault() {
	user := suite.createTestUser()
	assert.Equal(suite.T(), "€", user.Currency)

	custom := models.User{Name: "Dollar User", Email: "d@example.com", Username: "d", Currency: "$"}
	err := models.DB.Create(&custom).Error
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "$", custom.Currency)
}

// TestUserSeedsCategories verifies that every new user starts with the
// default category set.
func (suite *TestSuiteStandard) TestUserSeedsCategories() {
	user := suite.createTestUser()

	var categories []models.Category
	err := models.DB.Where(&models.Category{UserID: user.ID}).Find(&categories).Error
	require.NoError(suite.T(), err)

	assert.Len(suite.T(), categories, 6)

	var income int
	for _, category := range categories {
		if category.Type == models.CategoryTypeIncome {
			income++
		}
		assert.NotEmpty(suite.T(), category.Color)
		assert.NotEmpty(suite.T(), category.Icon)
	}
	assert.Equal(suite.T(), 1, income, "Exactly one default category is an income category")
}

func (suite *TestSuiteStandard) TestUserUniqueConstraints() {
	user := suite.createTestUser()

	duplicateEmail := models.User{Name: "Dup", Email: user.Email, Username: "other-username"}
	err := models.DB.Create(&duplicateEmail).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserEmailNotUnique)

	duplicateUsername := models.User{Name: "Dup", Email: "other@example.com", Username: user.Username}
	err = models.DB.Create(&duplicateUsername).Error
	assert.ErrorIs(suite.T(), err, models.ErrUserUsernameNotUnique)
}
