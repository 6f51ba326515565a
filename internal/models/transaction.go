package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction represents a single income or expense movement of a user.
type Transaction struct {
	DefaultModel
	User        User            `json:"-"`
	UserID      uuid.UUID       `gorm:"not null"`
	Category    Category        `json:"-"`
	CategoryID  uuid.UUID       `gorm:"not null"`
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Description string
	Date        time.Time
	Type        CategoryType
}

var (
	ErrTransactionAmountNotPositive = errors.New("transaction amounts must be larger than zero")
	ErrTransactionTypeInvalid       = errors.New("the transaction type must be 'income' or 'expense'")
)

// AfterFind updates the date to use UTC as timezone, not +0000.
// See DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave validates the transaction and normalizes the date to UTC.
//
// All date range queries work on UTC instants, so the date must be stored
// in UTC for window membership to be consistent across queries.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Type != CategoryTypeIncome && t.Type != CategoryTypeExpense {
		return ErrTransactionTypeInvalid
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !decimal.Decimal.IsPositive(t.Amount) {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the transaction before
// committing an update to the database.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)

	if tx.Statement.Changed("UserID") || tx.Statement.Changed("CategoryID") {
		err := t.checkIntegrity(tx, toSave)
		if err != nil {
			return err
		}
	}

	return nil
}

// checkIntegrity verifies that all referenced resources exist.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}
