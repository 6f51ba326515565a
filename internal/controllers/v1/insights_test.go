package v1_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finboard/backend/internal/advisor"
	v1 "github.com/finboard/backend/internal/controllers/v1"
	"github.com/finboard/backend/internal/forecast"
	"github.com/finboard/backend/internal/types"
	"github.com/finboard/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdvisor starts a provider returning the passed text and points the
// advisor client at it.
func fakeAdvisor(t *testing.T, text string) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(server.Close)

	t.Setenv("ADVISOR_BASE_URL", server.URL)
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func (suite *TestSuiteStandard) TestInsightsOptions() {
	id := uuid.New()

	tests := []string{
		fmt.Sprintf("http://example.com/v1/insights/%s", id),
		fmt.Sprintf("http://example.com/v1/insights/%s/analyze", id),
	}

	for _, path := range tests {
		suite.T().Run(path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, "GET", r.Header().Get("allow"))
		})
	}
}

// TestInsights verifies the spending projections and the generated advice.
func (suite *TestSuiteStandard) TestInsights() {
	fakeAdvisor(suite.T(), "Nice savings rate, keep it up!")

	u := createTestUser(suite.T(), v1.UserEditable{})
	expense := createTestCategory(suite.T(), v1.CategoryEditable{UserID: u.Data.ID})
	income := createTestCategory(suite.T(), v1.CategoryEditable{UserID: u.Data.ID, Type: "income"})

	now := time.Now().In(time.UTC)

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID: u.Data.ID, CategoryID: income.Data.ID, Type: "income",
		Amount: decimal.NewFromInt(3000), Date: now,
	})
	_ = createTestTransaction(suite.T(), v1.TransactionEditable{
		UserID: u.Data.ID, CategoryID: expense.Data.ID,
		Amount: decimal.NewFromInt(900), Date: now,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/insights/%s", u.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Nice savings rate, keep it up!", response.Data.AIAdvice)

	// The projections must match a computation over the same data
	expected := forecast.Compute(types.MonthOf(now), decimal.NewFromInt(3000), decimal.NewFromInt(900), now)
	assert.Equal(suite.T(), expected.DailyAverage.StringFixed(2), response.Data.MathematicalInsights.DailyAverage)
	assert.Equal(suite.T(), expected.EstimatedEndOfMonth.StringFixed(2), response.Data.MathematicalInsights.EstimatedEndMonth)
	assert.Equal(suite.T(), expected.IsRisk, response.Data.MathematicalInsights.IsRisk)

	if expected.BurnoutDate == nil {
		assert.Nil(suite.T(), response.Data.MathematicalInsights.BurnoutDate)
	} else {
		require.NotNil(suite.T(), response.Data.MathematicalInsights.BurnoutDate)
		assert.Equal(suite.T(), expected.BurnoutDate.Format("2006-01-02"), *response.Data.MathematicalInsights.BurnoutDate)
	}
}

// TestInsightsFallback verifies that a missing API key degrades the advice
// to the static fallback instead of failing the request.
func (suite *TestSuiteStandard) TestInsightsFallback() {
	suite.T().Setenv("GEMINI_API_KEY", "")

	u := createTestUser(suite.T(), v1.UserEditable{})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/insights/%s", u.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.InsightsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), advisor.FallbackAdvice, response.Data.AIAdvice)
	assert.Equal(suite.T(), "0.00", response.Data.MathematicalInsights.DailyAverage)
}

func (suite *TestSuiteStandard) TestInsightsInvalid() {
	u := createTestUser(suite.T(), v1.UserEditable{})

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Unknown user", fmt.Sprintf("http://example.com/v1/insights/%s", uuid.New()), http.StatusNotFound},
		{"Invalid UUID", "http://example.com/v1/insights/NotAUUID", http.StatusBadRequest},
		{"Invalid month", fmt.Sprintf("http://example.com/v1/insights/%s?month=not-a-month", u.Data.ID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestAnalyze verifies the transaction history analysis.
func (suite *TestSuiteStandard) TestAnalyze() {
	fakeAdvisor(suite.T(), "Most of your spending goes to groceries.")

	u := createTestUser(suite.T(), v1.UserEditable{})

	// Without transactions there is nothing to analyze
	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/insights/%s/analyze", u.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AnalyzeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), advisor.NotEnoughDataAdvice, response.Data.Analysis)

	_ = createTestTransaction(suite.T(), v1.TransactionEditable{UserID: u.Data.ID})

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/insights/%s/analyze", u.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "Most of your spending goes to groceries.", response.Data.Analysis)
}
