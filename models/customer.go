package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Name    string `gorm:"size:100;not null"`
	Email   string
	Phone   string `gorm:"size:20"`
	Address string
	Company string `gorm:"size:100"`
	Notes   string
	//建立者刪除後客戶資料仍保留
	CreatedBy *uint
	Orders    []Order `gorm:"foreignKey:CustomerID"`
}
