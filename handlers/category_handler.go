package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"OrderManager/models"
	"OrderManager/storage"
)

// 查詢商品分類列表，分類為全域資料不做擁有者過濾
func GetCategoryListHandler(c *gin.Context, db *gorm.DB) {
	var categories []models.Category
	err := db.Find(&categories).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法讀取商品分類列表",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取商品分類列表",
		"categories": categories,
	})
}

func CreateCategoryHandler(c *gin.Context, db *gorm.DB) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var newCategory struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	err := c.ShouldBindJSON(&newCategory)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	errs := ValidateCategoryInput(newCategory.Name)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品分類資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	category := models.Category{
		Name:        newCategory.Name,
		Description: newCategory.Description,
		CreatedBy:   userID,
	}

	err = db.Create(&category).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增商品分類失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "成功新增商品分類",
		"category": category,
	})
}

func UpdateCategoryHandler(c *gin.Context, db *gorm.DB) {
	categoryID := c.Param("categoryID")

	var categoryDataReq struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	err := c.ShouldBindJSON(&categoryDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	var category models.Category
	err = db.First(&category, categoryID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品分類",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品分類失敗",
			"error":   err.Error(),
		})
		return
	}

	if categoryDataReq.Name != nil {
		category.Name = *categoryDataReq.Name
	}
	if categoryDataReq.Description != nil {
		category.Description = *categoryDataReq.Description
	}

	errs := ValidateCategoryInput(category.Name)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品分類資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	err = db.Save(&category).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "修改商品分類失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功修改商品分類",
		"category": category,
	})
}

// 刪除商品分類，連帶刪除分類下所有商品與其訂單
func DeleteCategoryHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	categoryID := c.Param("categoryID")

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	var category models.Category
	err := tx.First(&category, categoryID).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品分類",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品分類失敗",
			"error":   err.Error(),
		})
		return
	}

	var products []models.Product
	err = tx.Where("category_id = ?", category.ID).Find(&products).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢分類商品失敗",
			"error":   err.Error(),
		})
		return
	}

	if len(products) > 0 {
		productIDs := make([]uint, 0, len(products))
		for _, product := range products {
			productIDs = append(productIDs, product.ID)
		}

		//連帶刪除分類下商品的訂單
		err = tx.Where("product_id IN ?", productIDs).Delete(&models.Order{}).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "刪除分類商品訂單失敗",
				"error":   err.Error(),
			})
			return
		}

		err = tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error
		if err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "刪除分類商品失敗",
				"error":   err.Error(),
			})
			return
		}

		for _, product := range products {
			if err := RemoveProductFromRedis(c, rdb, product.ID); err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "無法將商品資料從Redis刪除",
					"error":   err.Error(),
				})
				return
			}
		}
	}

	err = tx.Delete(&category).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除商品分類失敗",
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

	//確定刪除成功後移除連帶商品的圖片檔案
	for _, product := range products {
		if err := storage.RemoveImage(product.ImageURL); err != nil {
			log.Printf("刪除商品圖片失敗: %v\n", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除商品分類",
	})
}
