package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/finboard/backend/internal/controllers/v1"
	"github.com/finboard/backend/internal/models"
	"github.com/finboard/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestCategory(t *testing.T, c v1.CategoryEditable, expectedStatus ...int) v1.CategoryResponse {
	if c.UserID == uuid.Nil {
		c.UserID = createTestUser(t, v1.UserEditable{}).Data.ID
	}

	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	if c.Type == "" {
		c.Type = models.CategoryTypeExpense
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.CategoryEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var category v1.CategoryCreateResponse
	test.DecodeResponse(t, &r, &category)

	if r.Code == http.StatusCreated {
		return category.Data[0]
	}

	return v1.CategoryResponse{}
}

// TestCategoriesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestCategoriesDBClosed() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestCategory(t, v1.CategoryEditable{UserID: u.Data.ID}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/categories", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.CategoryListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestCategoriesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestCategoriesOptions() {
	tests := []struct {
		name   string
		id     string // path at the categories endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Category with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category exists", createTestCategory(suite.T(), v1.CategoryEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/categories", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestCategoriesCreate verifies creation including validation and defaults.
func (suite *TestSuiteStandard) TestCategoriesCreate() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	category := createTestCategory(suite.T(), v1.CategoryEditable{UserID: u.Data.ID, Name: "Dining"})
	require.NotNil(suite.T(), category.Data)
	assert.Equal(suite.T(), "#6366f1", category.Data.Color, "Color does not default correctly")
	assert.Equal(suite.T(), "default", category.Data.Icon, "Icon does not default correctly")

	tests := []struct {
		name     string
		category v1.CategoryEditable
		error    string
	}{
		{"Invalid type", v1.CategoryEditable{UserID: u.Data.ID, Name: "Broken", Type: "savings"}, models.ErrCategoryTypeInvalid.Error()},
		{"Non-existing user", v1.CategoryEditable{UserID: uuid.New(), Name: "Orphan", Type: models.CategoryTypeExpense}, "there is no user matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{tt.category})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest, http.StatusNotFound)

			var response v1.CategoryCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.error, *response.Data[0].Error)
		})
	}
}

// TestCategoriesDeleteGuard verifies that categories with transactions
// cannot be deleted.
func (suite *TestSuiteStandard) TestCategoriesDeleteGuard() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID:     category.Data.UserID,
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromFloat(12.34),
	})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrCategoryHasTransactions.Error(), response.Error)

	// After the transaction is gone, deletion works
	var transactions v1.TransactionListResponse
	tr := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?category=%s", category.Data.ID), "")
	test.DecodeResponse(suite.T(), &tr, &transactions)
	require.Len(suite.T(), transactions.Data, 1)

	tr = test.Request(suite.T(), http.MethodDelete, transactions.Data[0].Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &tr, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Before"})

	tests := []struct {
		name   string
		body   map[string]any
		status int
	}{
		{"Rename", map[string]any{"name": "After"}, http.StatusOK},
		{"Set color", map[string]any{"color": "#ff0000"}, http.StatusOK},
		{"Invalid type", map[string]any{"type": "savings"}, http.StatusBadRequest},
		{"Non-existing user", map[string]any{"userId": uuid.New().String()}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, category.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFiltered() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{UserID: u.Data.ID, Name: "Aquarium Supplies", Type: models.CategoryTypeExpense})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{UserID: u.Data.ID, Name: "Lottery Wins", Type: models.CategoryTypeIncome})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		// The user starts with 6 seeded categories, one of them income
		{"All for user", fmt.Sprintf("user=%s", u.Data.ID), 8},
		{"Income for user", fmt.Sprintf("user=%s&type=income", u.Data.ID), 2},
		{"By name", "name=Aquarium", 1},
		{"Search", "search=lottery", 1},
		{"No match", "name=Florists", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CategoryListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.len)
		})
	}
}
