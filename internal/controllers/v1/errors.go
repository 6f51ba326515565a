package v1

import (
	"errors"
	"net/http"

	"github.com/finboard/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// User errors
var (
	errLoginIdentifierRequired = errors.New("the identifier parameter must be set to an email address or username")
	errLoginUnknownIdentifier  = errors.New("there is no user with this email address or username")
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
	errMonthsOutOfRange       = errors.New("the months parameter must be between 1 and 24")
)
