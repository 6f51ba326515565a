package v1

import (
	"fmt"

	"github.com/finboard/backend/internal/models"
	"github.com/finboard/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	UserID     uuid.UUID       `json:"userId" example:"d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`                          // ID of the user the budget belongs to
	CategoryID uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`                      // ID of the category the limit applies to
	Month      types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`                                           // The month the limit applies to
	Amount     decimal.Decimal `json:"amount" example:"180.50" minimum:"0.00000001" maximum:"999999999999.99999999"`   // The limit amount
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		UserID:     editable.UserID,
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Amount:     editable.Amount,
	}
}

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/budgets/6f73b206-e67d-4421-a1a1-c3a7b49b1a07"`   // The budget itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category the limit applies to
}

// Budget is the representation of a Budget in API v1.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

// newBudget returns the API v1 representation of the resource
func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString("baseURL")

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			UserID:     model.UserID,
			CategoryID: model.CategoryID,
			Month:      model.Month,
			Amount:     model.Amount,
		},
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
		},
	}
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BudgetProgress is the monthly progress of one expense category. A
// category without a budget is untracked: the percentage stays zero and
// it is never over budget, regardless of spend.
type BudgetProgress struct {
	BudgetID   *uuid.UUID      `json:"budgetId"`                                                  // ID of the budget, null for untracked categories
	CategoryID uuid.UUID       `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the category
	Category   string          `json:"category" example:"Groceries"`                              // Name of the category
	Color      string          `json:"color" example:"#6366f1"`                                   // Hex color of the category
	Icon       string          `json:"icon" example:"🍽️"`                                         // Icon of the category
	Month      types.Month     `json:"month" example:"2024-02-01T00:00:00Z"`                      // The month the progress is calculated for
	Limit      decimal.Decimal `json:"limit" example:"180.50"`                                    // The configured limit, zero when none is set
	Spent      decimal.Decimal `json:"spent" example:"97.31"`                                     // Total expenses of the category in the month
	Percentage decimal.Decimal `json:"percentage" example:"53.91"`                                // Spent as a percentage of the limit, uncapped
	IsOver     bool            `json:"isOver" example:"false"`                                    // Is the category over its limit?
}

type BudgetProgressResponse struct {
	Data  []BudgetProgress `json:"data"`                                                          // Progress of every expense category of the user
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
