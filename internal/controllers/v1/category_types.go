package v1

import (
	"fmt"

	"github.com/finboard/backend/internal/models"
	fb_uuid "github.com/finboard/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	UserID uuid.UUID           `json:"userId" example:"d3c3be4c-ae52-4be4-a2b2-cfc925aff8ad"` // ID of the user the category belongs to
	Name   string              `json:"name" example:"Groceries" default:""`                   // Name of the category
	Type   models.CategoryType `json:"type" example:"expense"`                                // Type of the category, "income" or "expense"
	Color  string              `json:"color" example:"#6366f1" default:"#6366f1"`             // Hex color for rendering the category
	Icon   string              `json:"icon" example:"🍽️" default:"default"`                   // Icon for rendering the category
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		UserID: editable.UserID,
		Name:   editable.Name,
		Type:   editable.Type,
		Color:  editable.Color,
		Icon:   editable.Icon,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"`   // Transactions for this category
}

// Category is the representation of a Category in API v1.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

// newCategory returns the API v1 representation of the resource
func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString("baseURL")

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			UserID: model.UserID,
			Name:   model.Name,
			Type:   model.Type,
			Color:  model.Color,
			Icon:   model.Icon,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	UserID fb_uuid.UUID        `form:"user"`                       // By ID of the User
	Name   string              `form:"name" filterField:"false"`   // By name
	Type   models.CategoryType `form:"type"`                       // By type, "income" or "expense"
	Search string              `form:"search" filterField:"false"` // By string in name
	Offset uint                `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int                 `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() (models.Category, error) {
	return models.Category{
		UserID: f.UserID.UUID,
		Type:   f.Type,
	}, nil
}
