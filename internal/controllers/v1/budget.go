package v1

import (
	"net/http"

	"github.com/finboard/backend/internal/forecast"
	"github.com/finboard/backend/internal/httputil"
	"github.com/finboard/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.POST("", CreateBudget)
	}

	// The wildcard is the user ID for GET and the budget ID for DELETE.
	// Gin requires a single wildcard name per path segment.
	{
		r.OPTIONS("/:id", OptionsBudgetProgress)
		r.GET("/:id", GetBudgetProgress)
		r.DELETE("/:id", DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/{userId} [options]
func OptionsBudgetProgress(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Create or update budget
// @Description	Sets the budget limit for a category and month. If a limit already exists for the combination of user, category and month, its amount is updated.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	budget, err := models.UpsertBudget(editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Get budget progress
// @Description	Returns the budget progress of every expense category of the user for one month. Categories without a limit are included with a zero limit.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetProgressResponse
// @Failure		400		{object}	BudgetProgressResponse
// @Failure		404		{object}	BudgetProgressResponse
// @Failure		500		{object}	BudgetProgressResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	query		string	false	"The month, as YYYY-MM. Defaults to the current month"
// @Router			/v1/budgets/{userId} [get]
func GetBudgetProgress(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := httputil.ErrInvalidUUID.Error()
		c.JSON(http.StatusBadRequest, BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	// The limits, the spends and the category list are independent reads,
	// run them concurrently
	var budgets []models.Budget
	var spends []models.CategorySpend
	var categories []models.Category

	g, _ := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		budgets, err = models.GetBudgetLimits(user.ID, month)
		return err
	})
	g.Go(func() (err error) {
		spends, err = models.GetCategorySpends(user.ID, month, models.CategoryTypeExpense)
		return err
	})
	g.Go(func() (err error) {
		err = models.DB.
			Where(&models.Category{UserID: user.ID, Type: models.CategoryTypeExpense}).
			Order("name ASC").
			Find(&categories).Error
		return err
	})

	if err := g.Wait(); err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetProgressResponse{
			Error: &s,
		})
		return
	}

	limits := make(map[uuid.UUID]models.Budget, len(budgets))
	for _, budget := range budgets {
		limits[budget.CategoryID] = budget
	}

	spent := make(map[uuid.UUID]models.CategorySpend, len(spends))
	for _, spend := range spends {
		spent[spend.CategoryID] = spend
	}

	data := make([]BudgetProgress, 0, len(categories))
	for _, category := range categories {
		budget, tracked := limits[category.ID]

		progress := forecast.ComputeProgress(budget.Amount, spent[category.ID].Total)

		entry := BudgetProgress{
			CategoryID: category.ID,
			Category:   category.Name,
			Color:      category.Color,
			Icon:       category.Icon,
			Month:      month,
			Limit:      progress.Limit,
			Spent:      progress.Spent,
			Percentage: progress.Percentage,
			IsOver:     progress.IsOver,
		}

		if tracked {
			id := budget.ID
			entry.BudgetID = &id
		}

		data = append(data, entry)
	}

	c.JSON(http.StatusOK, BudgetProgressResponse{Data: data})
}

// @Summary		Delete budget
// @Description	Deletes a budget limit
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
