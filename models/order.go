package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPlaced    = "placed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 訂單的所有合法狀態
var OrderStatuses = []string{
	OrderStatusPlaced,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type Order struct {
	gorm.Model
	CustomerID uint `gorm:"not null"`
	Customer   Customer
	ProductID  uint `gorm:"not null"`
	Product    Product
	Quantity   uint   `gorm:"not null;default:1"`
	Status     string `gorm:"size:20;not null;default:placed"`
	Notes      string
	CreatedBy  uint `gorm:"not null"`
}

// 訂單總價=數量×商品單價，查詢時計算不另外儲存
func (o *Order) TotalPrice() decimal.Decimal {
	return o.Product.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}
