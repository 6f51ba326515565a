package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User represents a person tracking their finances.
type User struct {
	DefaultModel
	Name     string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Username string `gorm:"uniqueIndex;not null"`
	Currency string // Currency symbol used for display, defaults to "€"
}

var (
	ErrUserEmailNotUnique    = errors.New("the email address is already registered")
	ErrUserUsernameNotUnique = errors.New("the username is already registered")
)

// defaultCategories are seeded for every new user so that the first
// transaction can be recorded without any setup.
var defaultCategories = []Category{
	{Name: "Salary & Income", Type: CategoryTypeIncome, Icon: "💼", Color: "#10b981"},
	{Name: "Groceries", Type: CategoryTypeExpense, Icon: "🍽️", Color: "#f43f5e"},
	{Name: "Transport", Type: CategoryTypeExpense, Icon: "🛤️", Color: "#3b82f6"},
	{Name: "Rent & Utilities", Type: CategoryTypeExpense, Icon: "🏛️", Color: "#8b5cf6"},
	{Name: "Culture & Leisure", Type: CategoryTypeExpense, Icon: "🎟️", Color: "#f59e0b"},
	{Name: "Health", Type: CategoryTypeExpense, Icon: "⚕️", Color: "#ef4444"},
}

// BeforeSave trims whitespace and sets the currency default.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(u.Email)
	u.Username = strings.TrimSpace(u.Username)

	if u.Currency == "" {
		u.Currency = "€"
	}

	return nil
}

// AfterCreate seeds the default categories for the new user.
func (u *User) AfterCreate(tx *gorm.DB) error {
	for _, category := range defaultCategories {
		category.UserID = u.ID

		err := tx.Create(&category).Error
		if err != nil {
			return err
		}
	}

	return nil
}
