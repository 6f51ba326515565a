package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryType is the type of transactions a category groups.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category groups transactions of one user, e.g. "Groceries".
type Category struct {
	DefaultModel
	User   User      `json:"-"`
	UserID uuid.UUID `gorm:"not null"`
	Name   string    `gorm:"not null"`
	Type   CategoryType
	Color  string // Hex color used by clients when rendering the category
	Icon   string
}

var (
	ErrCategoryTypeInvalid     = errors.New("the category type must be 'income' or 'expense'")
	ErrCategoryHasTransactions = errors.New("a category with transactions cannot be deleted")
)

// BeforeSave validates the type and sets display defaults, matching the
// defaults clients rely on for uncustomized categories.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Type != CategoryTypeIncome && c.Type != CategoryTypeExpense {
		return ErrCategoryTypeInvalid
	}

	if c.Color == "" {
		c.Color = "#6366f1"
	}

	if c.Icon == "" {
		c.Icon = "default"
	}

	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Category)
	return c.checkIntegrity(tx, *toSave)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Category)

	if tx.Statement.Changed("UserID") {
		err := c.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// BeforeDelete blocks deletion while transactions still reference the
// category. Deleting would orphan those transactions, the user has to
// reassign or delete them first.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	// Batch deletes run the hook with an empty struct, the guard only
	// applies when a specific category is deleted
	if c.ID == uuid.Nil {
		return nil
	}

	var count int64
	err := tx.Model(&Transaction{}).Where("category_id = ?", c.ID).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoryHasTransactions
	}

	return nil
}

func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	return tx.First(&User{}, toSave.UserID).Error
}
