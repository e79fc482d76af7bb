package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string `gorm:"size:200;not null"`
	CategoryID  uint   `gorm:"not null"`
	Category    Category
	Description string          `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ImageURL    string
	CreatedBy   uint `gorm:"not null"`
}
