package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"OrderManager/models"
)

// 訂單回應資料，totalPrice為查詢時計算
func orderData(order *models.Order) gin.H {
	return gin.H{
		"ID":           order.ID,
		"customerID":   order.CustomerID,
		"customerName": order.Customer.Name,
		"productID":    order.ProductID,
		"productName":  order.Product.Name,
		"quantity":     order.Quantity,
		"status":       order.Status,
		"notes":        order.Notes,
		"totalPrice":   order.TotalPrice(),
		"orderTime":    order.CreatedAt,
	}
}

// 查詢訂單列表，只回傳該使用者建立的訂單
func GetOrderListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var orders []models.Order
	err := db.
		Scopes(OwnedBy(userID)).
		Preload("Customer").
		Preload("Product").
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單列表失敗",
			"error":   err.Error(),
		})
		return
	}

	var orderList []gin.H
	for i := range orders {
		orderList = append(orderList, orderData(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功查詢訂單列表",
		"orderList": orderList,
	})
}

func CreateOrderHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var orderReq struct {
		CustomerID uint   `json:"customerID"`
		ProductID  uint   `json:"productID"`
		Quantity   *uint  `json:"quantity"`
		Status     string `json:"status"`
		Notes      string `json:"notes"`
	}
	err := c.ShouldBindJSON(&orderReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//數量未填預設為1，狀態未填預設為placed
	quantity := uint(1)
	if orderReq.Quantity != nil {
		quantity = *orderReq.Quantity
	}
	status := orderReq.Status
	if status == "" {
		status = models.OrderStatusPlaced
	}

	errs := ValidateOrderInput(db, orderReq.CustomerID, orderReq.ProductID, quantity, status)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "訂單資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	order := models.Order{
		CustomerID: orderReq.CustomerID,
		ProductID:  orderReq.ProductID,
		Quantity:   quantity,
		Status:     status,
		Notes:      orderReq.Notes,
		CreatedBy:  userID,
	}

	err = db.Create(&order).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	//讀回關聯資料以計算總價
	err = db.Preload("Customer").Preload("Product").First(&order, order.ID).Error
	if err != nil {
		log.Printf("讀取訂單關聯資料失敗: %v\n", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "成功新增訂單",
		"order":   orderData(&order),
	})
}

func UpdateOrderHandler(c *gin.Context, db *gorm.DB) {
	orderID := c.Param("orderID")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var orderDataReq struct {
		CustomerID *uint   `json:"customerID"`
		ProductID  *uint   `json:"productID"`
		Quantity   *uint   `json:"quantity"`
		Status     *string `json:"status"`
		Notes      *string `json:"notes"`
	}
	err := c.ShouldBindJSON(&orderDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//非建立者一律回傳找不到，不洩漏資料是否存在
	var order models.Order
	err = db.Scopes(OwnedBy(userID)).First(&order, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此訂單",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	if orderDataReq.CustomerID != nil {
		order.CustomerID = *orderDataReq.CustomerID
	}
	if orderDataReq.ProductID != nil {
		order.ProductID = *orderDataReq.ProductID
	}
	if orderDataReq.Quantity != nil {
		order.Quantity = *orderDataReq.Quantity
	}
	if orderDataReq.Status != nil {
		order.Status = *orderDataReq.Status
	}
	if orderDataReq.Notes != nil {
		order.Notes = *orderDataReq.Notes
	}

	errs := ValidateOrderInput(db, order.CustomerID, order.ProductID, order.Quantity, order.Status)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "訂單資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	err = db.Save(&order).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "修改訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	err = db.Preload("Customer").Preload("Product").First(&order, order.ID).Error
	if err != nil {
		log.Printf("讀取訂單關聯資料失敗: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功修改訂單",
		"order":   orderData(&order),
	})
}

func DeleteOrderHandler(c *gin.Context, db *gorm.DB) {
	orderID := c.Param("orderID")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var order models.Order
	err := db.Scopes(OwnedBy(userID)).First(&order, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此訂單",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	err = db.Delete(&order).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除訂單",
	})
}
