// Package v1 implements the v1 API.
package v1

import (
	"net/http"

	"github.com/finboard/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Users        string `json:"users" example:"https://example.com/api/v1/users"`               // URL of User collection endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of Category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`           // URL of Budget collection endpoint
	Insights     string `json:"insights" example:"https://example.com/api/v1/insights"`         // URL of the Insights endpoint
}

// GetV1 returns general information about the v1 API
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	V1Response
//	@Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString("baseURL")

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Users:        url + "/v1/users",
			Categories:   url + "/v1/categories",
			Transactions: url + "/v1/transactions",
			Budgets:      url + "/v1/budgets",
			Insights:     url + "/v1/insights",
		},
	})
}

// OptionsV1 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
