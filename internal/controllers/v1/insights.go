package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/finboard/backend/internal/advisor"
	"github.com/finboard/backend/internal/forecast"
	"github.com/finboard/backend/internal/httputil"
	"github.com/finboard/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterInsightsRoutes registers the routes for insights with
// the RouterGroup that is passed.
func RegisterInsightsRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/:userId", OptionsInsights)
		r.GET("/:userId", GetInsights)
	}

	{
		r.OPTIONS("/:userId/analyze", OptionsInsights)
		r.GET("/:userId/analyze", GetAnalysis)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Insights
// @Success		204
// @Router			/v1/insights/{userId} [options]
func OptionsInsights(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get insights
// @Description	Returns the spending projections of a user for one month together with generated advice. The projections are always computed, a failing advice provider only degrades the advice to a static text.
// @Tags			Insights
// @Produce		json
// @Success		200		{object}	InsightsResponse
// @Failure		400		{object}	InsightsResponse
// @Failure		404		{object}	InsightsResponse
// @Failure		500		{object}	InsightsResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	query		string	false	"The month, as YYYY-MM. Defaults to the current month"
// @Router			/v1/insights/{userId} [get]
func GetInsights(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, InsightsResponse{
			Error: &s,
		})
		return
	}

	aggregate, err := models.GetMonthlyAggregate(user.ID, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), InsightsResponse{
			Error: &s,
		})
		return
	}

	result := forecast.Compute(month, aggregate.Income, aggregate.Expenses, time.Now().In(time.UTC))

	insights := Insights{
		MathematicalInsights: MathematicalInsights{
			DailyAverage:      result.DailyAverage.StringFixed(2),
			EstimatedEndMonth: result.EstimatedEndOfMonth.StringFixed(2),
			IsRisk:            result.IsRisk,
		},
	}

	if result.BurnoutDate != nil {
		burnout := result.BurnoutDate.Format("2006-01-02")
		insights.MathematicalInsights.BurnoutDate = &burnout
	}

	prompt := advisor.InsightsPrompt(
		aggregate.Income,
		aggregate.Expenses,
		result.Balance,
		result.DailyAverage,
		result.EstimatedEndOfMonth,
		result.BurnoutDate,
	)
	insights.AIAdvice = advisor.New().Advise(c.Request.Context(), prompt).Resolve(advisor.FallbackAdvice)

	c.JSON(http.StatusOK, InsightsResponse{Data: &insights})
}

// @Summary		Analyze finances
// @Description	Summarizes the most recent transactions of a user and returns a generated analysis of their spending patterns
// @Tags			Insights
// @Produce		json
// @Success		200		{object}	AnalyzeResponse
// @Failure		400		{object}	AnalyzeResponse
// @Failure		404		{object}	AnalyzeResponse
// @Failure		500		{object}	AnalyzeResponse
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/insights/{userId}/analyze [get]
func GetAnalysis(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnalyzeResponse{
			Error: &s,
		})
		return
	}

	// The last 50 transactions with their category names, summed up
	// per type and category
	var rows []struct {
		Type     models.CategoryType
		Category string
		Total    decimal.Decimal
	}

	err = models.DB.Table("transactions").
		Select("transactions.type AS type, categories.name AS category, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.id IN (?)", models.DB.Table("transactions").
			Select("id").
			Where("user_id = ? AND deleted_at IS NULL", user.ID).
			Order("date DESC").
			Limit(50)).
		Group("transactions.type, categories.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnalyzeResponse{
			Error: &s,
		})
		return
	}

	if len(rows) == 0 {
		c.JSON(http.StatusOK, AnalyzeResponse{
			Data: &Analysis{Analysis: advisor.NotEnoughDataAdvice},
		})
		return
	}

	summary := make([]string, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, fmt.Sprintf("%s - %s: %s", row.Type, row.Category, row.Total.StringFixed(2)))
	}

	text := advisor.New().
		Advise(c.Request.Context(), advisor.AnalyzePrompt(summary)).
		Resolve(advisor.FallbackAdvice)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Data: &Analysis{Analysis: text},
	})
}
