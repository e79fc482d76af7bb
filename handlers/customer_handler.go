package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"OrderManager/models"
)

// 查詢客戶列表，只回傳該使用者建立的客戶
func GetCustomerListHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var customers []models.Customer
	err := db.Scopes(OwnedBy(userID)).Find(&customers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢客戶列表失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功查詢客戶列表",
		"customers": customers,
	})
}

func CreateCustomerHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var newCustomer struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Company string `json:"company"`
		Notes   string `json:"notes"`
	}
	err := c.ShouldBindJSON(&newCustomer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	errs := ValidateCustomerInput(newCustomer.Name, newCustomer.Email)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "客戶資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	customer := models.Customer{
		Name:      newCustomer.Name,
		Email:     newCustomer.Email,
		Phone:     newCustomer.Phone,
		Address:   newCustomer.Address,
		Company:   newCustomer.Company,
		Notes:     newCustomer.Notes,
		CreatedBy: &userID,
	}

	err = db.Create(&customer).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增客戶失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "成功新增客戶",
		"customer": customer,
	})
}

func UpdateCustomerHandler(c *gin.Context, db *gorm.DB) {
	customerID := c.Param("customerID")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var customerDataReq struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Company *string `json:"company"`
		Notes   *string `json:"notes"`
	}
	err := c.ShouldBindJSON(&customerDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//非建立者一律回傳找不到，不洩漏資料是否存在
	var customer models.Customer
	err = db.Scopes(OwnedBy(userID)).First(&customer, customerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此客戶",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢客戶失敗",
			"error":   err.Error(),
		})
		return
	}

	if customerDataReq.Name != nil {
		customer.Name = *customerDataReq.Name
	}
	if customerDataReq.Email != nil {
		customer.Email = *customerDataReq.Email
	}
	if customerDataReq.Phone != nil {
		customer.Phone = *customerDataReq.Phone
	}
	if customerDataReq.Address != nil {
		customer.Address = *customerDataReq.Address
	}
	if customerDataReq.Company != nil {
		customer.Company = *customerDataReq.Company
	}
	if customerDataReq.Notes != nil {
		customer.Notes = *customerDataReq.Notes
	}

	errs := ValidateCustomerInput(customer.Name, customer.Email)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "客戶資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	err = db.Save(&customer).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "修改客戶資料失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功修改客戶資料",
		"customer": customer,
	})
}

// 刪除客戶，連帶刪除該客戶的所有訂單
func DeleteCustomerHandler(c *gin.Context, db *gorm.DB) {
	customerID := c.Param("customerID")
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	var customer models.Customer
	err := tx.Scopes(OwnedBy(userID)).First(&customer, customerID).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此客戶",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢客戶失敗",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Where("customer_id = ?", customer.ID).Delete(&models.Order{}).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除客戶訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Delete(&customer).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除客戶失敗",
			"error":   err.Error(),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "提交事務失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除客戶",
	})
}
