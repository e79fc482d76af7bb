package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;not null"`
	Description string
	CreatedBy   uint      `gorm:"not null"`
	Products    []Product `gorm:"foreignKey:CategoryID"`
}
