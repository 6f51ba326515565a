package models

import (
	"errors"

	"github.com/finboard/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for one category of a user in one month.
//
// There is at most one budget per (user, category, month), POSTing a
// second one for the same key updates the amount instead.
type Budget struct {
	DefaultModel
	User       User            `json:"-"`
	UserID     uuid.UUID       `gorm:"uniqueIndex:budget_user_category_month;not null"`
	Category   Category        `json:"-"`
	CategoryID uuid.UUID       `gorm:"uniqueIndex:budget_user_category_month;not null"`
	Month      types.Month     `gorm:"uniqueIndex:budget_user_category_month"`
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrBudgetAmountNotPositive = errors.New("budget amounts must be larger than zero")
	ErrBudgetMonthNotUnique    = errors.New("there is already a budget for this category and month")
)

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Budget)

	if tx.Statement.Changed("UserID") || tx.Statement.Changed("CategoryID") {
		err := b.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(b.Amount) {
		return ErrBudgetAmountNotPositive
	}

	return nil
}

func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	err := tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}
