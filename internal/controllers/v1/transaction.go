package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/finboard/backend/internal/httputil"
	"github.com/finboard/backend/internal/models"
	"github.com/finboard/backend/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// RegisterAggregateRoutes registers the routes for the aggregated views on
// transactions. These are registered directly below the version group, gin
// does not allow static segments next to the ":id" wildcard.
func RegisterAggregateRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/balance/:userId", OptionsTransactionCalculated)
		r.GET("/balance/:userId", GetBalance)
	}

	{
		r.OPTIONS("/stats/:userId", OptionsTransactionCalculated)
		r.GET("/stats/:userId", GetCategoryStats)
	}

	{
		r.OPTIONS("/historical/:userId", OptionsTransactionCalculated)
		r.GET("/historical/:userId", GetHistorical)
	}

	{
		r.OPTIONS("/export/:userId", OptionsTransactionCalculated)
		r.GET("/export/:userId", GetExport)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/balance/{userId} [options]
func OptionsTransactionCalculated(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// @Summary		Create transactions
// @Description	Creates new transactions
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		404				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		if editable.Type != models.CategoryTypeIncome && editable.Type != models.CategoryTypeExpense {
			status = r.appendError(errTransactionTypeInvalid, status)
			continue
		}

		transaction := editable.model()

		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			user				query	string	false	"Filter by user ID"
// @Param			category			query	string	false	"Filter by category ID"
// @Param			type				query	string	false	"Filter by type"
// @Param			month				query	string	false	"Filter by month, as YYYY-MM"
// @Param			year				query	int		false	"Filter by calendar year"
// @Param			description			query	string	false	"Description contains this string"
// @Param			amount				query	string	false	"Filter by exact amount"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			offset				query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("date DESC, id ASC").
		Where(&filterModel, queryFields...)

	if slices.Contains(setFields, "Month") {
		month := types.MonthOf(filter.Month)
		q = q.Where("date >= ? AND date < ?", month.First(), month.Next())
	}

	if slices.Contains(setFields, "Year") {
		q = q.Where("date >= ? AND date < ?",
			time.Date(filter.Year, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(filter.Year+1, 1, 1, 0, 0, 0, 0, time.UTC))
	}

	if filter.Description != "" {
		q = q.Where("description LIKE ?", "%"+filter.Description+"%")
	} else if slices.Contains(setFields, "Description") {
		q = q.Where("description = ''")
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("transactions.amount <= ?", filter.AmountLessOrEqual)
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("transactions.amount >= ?", filter.AmountMoreOrEqual)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0)
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	// If the type is updated, it must be valid
	for _, field := range updateFields {
		if field == "Type" && data.Type != models.CategoryTypeIncome && data.Type != models.CategoryTypeExpense {
			s := errTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, TransactionResponse{
				Error: &s,
			})
			return
		}
	}

	err = models.DB.Model(&transaction).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	r := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// monthFromQuery reads the month query parameter, defaulting to the
// month of the current time.
func monthFromQuery(c *gin.Context) (types.Month, error) {
	var query QueryMonth
	err := c.BindQuery(&query)
	if err != nil {
		return types.Month{}, httputil.ErrInvalidMonth
	}

	if query.Month.IsZero() {
		return types.MonthOf(time.Now().In(time.UTC)), nil
	}

	return types.MonthOf(query.Month), nil
}

// userFromParam reads the userId URI parameter and loads the user.
func userFromParam(c *gin.Context) (models.User, error) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.User{}, httputil.ErrInvalidUUID
	}

	var user models.User
	err = models.DB.First(&user, uri.UserID).Error
	return user, err
}

// @Summary		Get balance
// @Description	Returns the income, expense and balance totals of a user for one month
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	BalanceResponse
// @Failure		400		{object}	BalanceResponse
// @Failure		404		{object}	BalanceResponse
// @Failure		500		{object}	BalanceResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	query		string	false	"The month, as YYYY-MM. Defaults to the current month"
// @Router			/v1/balance/{userId} [get]
func GetBalance(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BalanceResponse{
			Error: &s,
		})
		return
	}

	aggregate, err := models.GetMonthlyAggregate(user.ID, month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BalanceResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Data: &Balance{
			Income:           aggregate.Income.StringFixed(2),
			Expenses:         aggregate.Expenses.StringFixed(2),
			Balance:          aggregate.Balance().StringFixed(2),
			TransactionCount: aggregate.TransactionCount,
		},
	})
}

// @Summary		Get category statistics
// @Description	Returns the per-category transaction totals of a user for one month
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	CategoryStatsResponse
// @Failure		400		{object}	CategoryStatsResponse
// @Failure		404		{object}	CategoryStatsResponse
// @Failure		500		{object}	CategoryStatsResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	query		string	false	"The month, as YYYY-MM. Defaults to the current month"
// @Param			type	query		string	false	"Only include categories of this type"
// @Router			/v1/stats/{userId} [get]
func GetCategoryStats(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryStatsResponse{
			Error: &s,
		})
		return
	}

	month, err := monthFromQuery(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryStatsResponse{
			Error: &s,
		})
		return
	}

	categoryType := models.CategoryType(c.Query("type"))
	if categoryType != "" &&
		categoryType != models.CategoryTypeIncome && categoryType != models.CategoryTypeExpense {
		s := errTransactionTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, CategoryStatsResponse{
			Error: &s,
		})
		return
	}

	spends, err := models.GetCategorySpends(user.ID, month, categoryType)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryStatsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryStatsResponse{Data: spends})
}

// @Summary		Get historical totals
// @Description	Returns the monthly income and expense totals of a user for the last months, oldest first
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	HistoricalResponse
// @Failure		400		{object}	HistoricalResponse
// @Failure		404		{object}	HistoricalResponse
// @Failure		500		{object}	HistoricalResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			months	query		int		false	"Number of months to include, between 1 and 24. Defaults to 6"
// @Router			/v1/historical/{userId} [get]
func GetHistorical(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoricalResponse{
			Error: &s,
		})
		return
	}

	months := 6
	if raw := c.Query("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 || months > 24 {
			s := errMonthsOutOfRange.Error()
			c.JSON(http.StatusBadRequest, HistoricalResponse{
				Error: &s,
			})
			return
		}
	}

	end := types.MonthOf(time.Now().In(time.UTC))
	totals, err := models.GetMonthlyTotals(user.ID, end, months)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HistoricalResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, HistoricalResponse{Data: totals})
}

// @Summary		Export
// @Description	Returns all data of a user for backups or a migration to another tool
// @Tags			Transactions
// @Produce		json
// @Success		200		{object}	ExportResponse
// @Failure		400		{object}	ExportResponse
// @Failure		404		{object}	ExportResponse
// @Failure		500		{object}	ExportResponse
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/export/{userId} [get]
func GetExport(c *gin.Context) {
	user, err := userFromParam(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}

	export := Export{
		User:         newUser(c, user),
		Categories:   make([]Category, 0),
		Transactions: make([]Transaction, 0),
		Budgets:      make([]Budget, 0),
	}

	var categories []models.Category
	err = models.DB.Where("user_id = ?", user.ID).Order("name ASC").Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}
	for _, category := range categories {
		export.Categories = append(export.Categories, newCategory(c, category))
	}

	var transactions []models.Transaction
	err = models.DB.Where("user_id = ?", user.ID).Order("date ASC").Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}
	for _, transaction := range transactions {
		export.Transactions = append(export.Transactions, newTransaction(c, transaction))
	}

	var budgets []models.Budget
	err = models.DB.Where("user_id = ?", user.ID).Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ExportResponse{
			Error: &s,
		})
		return
	}
	for _, budget := range budgets {
		export.Budgets = append(export.Budgets, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, ExportResponse{Data: &export})
}
