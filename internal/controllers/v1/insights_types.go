package v1

// MathematicalInsights are the spending projections for one month. All
// money values are rendered with two decimal places, the burnout date as
// YYYY-MM-DD or null when the balance survives the month.
type MathematicalInsights struct {
	DailyAverage      string  `json:"dailyAverage" example:"29.00"`      // Average expenses per elapsed day of the month
	EstimatedEndMonth string  `json:"estimatedEndMonth" example:"841.00"` // Projected total expenses if the rate continues
	BurnoutDate       *string `json:"burnoutDate" example:"2024-02-21"`  // Projected date the balance reaches zero
	IsRisk            bool    `json:"isRisk" example:"false"`            // Set when a burnout date exists
}

// Insights combines the numeric projections with the generated advice.
// The projections never depend on the advice call, a failing text
// provider only degrades aiAdvice to a static fallback.
type Insights struct {
	MathematicalInsights MathematicalInsights `json:"mathematicalInsights"`
	AIAdvice             string               `json:"aiAdvice" example:"You are spending a lot on dining out, consider a weekly budget."`
}

type InsightsResponse struct {
	Data  *Insights `json:"data"`                                                          // The insights for the month
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Analysis is a free-text review of the recent transaction history.
type Analysis struct {
	Analysis string `json:"analysis" example:"## Your spending\n..."` // The generated analysis, Markdown formatted
}

type AnalyzeResponse struct {
	Data  *Analysis `json:"data"`                                                          // The analysis
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
