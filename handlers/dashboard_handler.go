package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"OrderManager/models"
)

// 查詢儀表板資料：該使用者的客戶與訂單數量、全域商品數量、最近5筆訂單
func GetDashboardHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var totalCustomers int64
	err := db.Model(&models.Customer{}).Scopes(OwnedBy(userID)).Count(&totalCustomers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢客戶數量失敗",
			"error":   err.Error(),
		})
		return
	}

	var totalProducts int64
	err = db.Model(&models.Product{}).Count(&totalProducts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品數量失敗",
			"error":   err.Error(),
		})
		return
	}

	var totalOrders int64
	err = db.Model(&models.Order{}).Scopes(OwnedBy(userID)).Count(&totalOrders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單數量失敗",
			"error":   err.Error(),
		})
		return
	}

	var recentOrders []models.Order
	err = db.
		Scopes(OwnedBy(userID)).
		Preload("Customer").
		Preload("Product").
		Order("created_at desc").
		Limit(5).
		Find(&recentOrders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢最近訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	var recentOrderList []gin.H
	for i := range recentOrders {
		recentOrderList = append(recentOrderList, orderData(&recentOrders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "成功查詢儀表板資料",
		"totalCustomers": totalCustomers,
		"totalProducts":  totalProducts,
		"totalOrders":    totalOrders,
		"recentOrders":   recentOrderList,
	})
}
