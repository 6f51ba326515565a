package v1

import (
	"fmt"
	"time"

	"github.com/finboard/backend/internal/models"
	fb_uuid "github.com/finboard/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	UserID     uuid.UUID `json:"userId" example:"d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`     // ID of the user the transaction belongs to
	CategoryID uuid.UUID `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // ID of the category

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction

	Description string              `json:"description" example:"Lunch" default:""`        // A short description
	Date        time.Time           `json:"date" example:"2024-02-10T18:43:00.271152Z"`    // Date of the transaction. Defaults to the current time
	Type        models.CategoryType `json:"type" example:"expense"`                        // Type of the transaction, "income" or "expense"
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		UserID:      editable.UserID,
		CategoryID:  editable.CategoryID,
		Amount:      editable.Amount,
		Description: editable.Description,
		Date:        editable.Date,
		Type:        editable.Type,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString("baseURL")

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			UserID:      model.UserID,
			CategoryID:  model.CategoryID,
			Amount:      model.Amount,
			Description: model.Description,
			Date:        model.Date,
			Type:        model.Type,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	UserID            fb_uuid.UUID        `form:"user"`                                  // By ID of the user
	CategoryID        fb_uuid.UUID        `form:"category"`                              // By ID of the category
	Type              models.CategoryType `form:"type"`                                  // By type, "income" or "expense"
	Month             time.Time           `form:"month" filterField:"false" time_format:"2006-01" time_utc:"1"` // By month, as YYYY-MM
	Year              int                 `form:"year" filterField:"false"`              // By calendar year
	Description       string              `form:"description" filterField:"false"`       // Description contains this string
	Amount            decimal.Decimal     `form:"amount"`                                // Exact amount
	AmountLessOrEqual decimal.Decimal     `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual decimal.Decimal     `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Offset            uint                `form:"offset" filterField:"false"`            // The offset of the first Transaction returned. Defaults to 0.
	Limit             int                 `form:"limit" filterField:"false"`             // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	// This does not set the string, date and bound fields since they are
	// handled in the controller function
	return models.Transaction{
		UserID:     f.UserID.UUID,
		CategoryID: f.CategoryID.UUID,
		Type:       f.Type,
		Amount:     f.Amount,
	}, nil
}

// Balance is the monthly income/expense summary of one user. All money
// values are rendered with two decimal places.
type Balance struct {
	Income           string `json:"income" example:"1000.00"`   // Total income of the month
	Expenses         string `json:"expenses" example:"290.00"`  // Total expenses of the month
	Balance          string `json:"balance" example:"710.00"`   // Income minus expenses, can be negative
	TransactionCount int64  `json:"transactionCount" example:"17"` // Number of transactions in the month
}

type BalanceResponse struct {
	Data  *Balance `json:"data"`                                                          // The balance summary
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryStatsResponse struct {
	Data  []models.CategorySpend `json:"data"`                                                          // Per-category totals for the month
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type HistoricalResponse struct {
	Data  []models.MonthTotals `json:"data"`                                                          // Income and expense totals per month, oldest first
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Export is a complete dump of one user's data.
type Export struct {
	User         User          `json:"user"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
}

type ExportResponse struct {
	Data  *Export `json:"data"`                                                          // The exported data
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
