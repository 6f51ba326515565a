package v1

import (
	"fmt"

	"github.com/finboard/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name     string `json:"name" example:"Jane Doe" default:""`            // Full name of the user
	Email    string `json:"email" example:"jane@example.com" default:""`   // Email address, unique across all users
	Username string `json:"username" example:"jane" default:""`            // Username, unique across all users
	Currency string `json:"currency" example:"€" default:"€"`              // Currency symbol used for display
}

func (editable UserEditable) model() models.User {
	return models.User{
		Name:     editable.Name,
		Email:    editable.Email,
		Username: editable.Username,
		Currency: editable.Currency,
	}
}

type UserLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/users/d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`                      // The user itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?user=d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`  // Transactions of this user
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories?user=d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`      // Categories of this user
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets/d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`                 // Budgets of this user
	Insights     string `json:"insights" example:"https://example.com/api/v1/insights/d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"`               // Insights of this user
}

// User is the representation of a User in API v1.
type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

// newUser returns the API v1 representation of the resource
func newUser(c *gin.Context, model models.User) User {
	url := c.GetString("baseURL")

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Name:     model.Name,
			Email:    model.Email,
			Username: model.Username,
			Currency: model.Currency,
		},
		Links: UserLinks{
			Self:         fmt.Sprintf("%s/v1/users/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?user=%s", url, model.ID),
			Categories:   fmt.Sprintf("%s/v1/categories?user=%s", url, model.ID),
			Budgets:      fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
			Insights:     fmt.Sprintf("%s/v1/insights/%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of Users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // List of the created Users or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the User
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// LoginRequest is the body for the login endpoint. There is no password,
// authentication happens at a proxy in front of the API.
type LoginRequest struct {
	Identifier string `json:"identifier" example:"jane@example.com"` // Email address or username of the user
}

type UserQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Email    string `form:"email"`                      // By email address
	Username string `form:"username"`                   // By username
	Search   string `form:"search" filterField:"false"` // By string in name, email or username
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first User returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Users to return. Defaults to 50.
}

func (f UserQueryFilter) model() (models.User, error) {
	return models.User{
		Email:    f.Email,
		Username: f.Username,
	}, nil
}
