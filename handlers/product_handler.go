package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"OrderManager/models"
	"OrderManager/storage"
)

// 商品回應資料
func productData(product *models.Product) gin.H {
	return gin.H{
		"ID":          product.ID,
		"name":        product.Name,
		"categoryID":  product.CategoryID,
		"description": product.Description,
		"price":       product.Price,
		"imageURL":    product.ImageURL,
		"createdBy":   product.CreatedBy,
		"createdAt":   product.CreatedAt,
		"updatedAt":   product.UpdatedAt,
	}
}

// 將商品寫入Redis快取
func UpdateProductToRedis(c *gin.Context, rdb *redis.Client, product *models.Product) (error, string) {
	if rdb == nil {
		return nil, ""
	}

	productJSON, err := json.Marshal(product)
	if err != nil {
		return err, "無法序列化商品資料"
	}

	score := strconv.Itoa(int(product.ID))
	err = rdb.ZRemRangeByScore(c, "products", score, score).Err()
	if err != nil {
		return err, "無法將商品資料從Redis刪除"
	}

	err = rdb.ZAdd(c, "products", redis.Z{
		Score:  float64(product.ID),
		Member: productJSON,
	}).Err()
	if err != nil {
		return err, "無法將商品資料加入Redis"
	}

	return nil, ""
}

// 將商品從Redis快取刪除
func RemoveProductFromRedis(c *gin.Context, rdb *redis.Client, productID uint) error {
	if rdb == nil {
		return nil
	}

	score := strconv.Itoa(int(productID))
	return rdb.ZRemRangeByScore(c, "products", score, score).Err()
}

// 查詢商品列表，商品為全域資料不做擁有者過濾
func GetProductListHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	//嘗試從Redis讀取商品列表，如失敗則從資料庫讀取並重建快取
	if rdb != nil && rdb.ZCard(c, "products").Val() > 0 {
		redisProducts, err := rdb.ZRange(c, "products", 0, -1).Result()
		if err == nil {
			var productsData []gin.H
			valid := true
			for _, redisProduct := range redisProducts {
				var product models.Product
				if err := json.Unmarshal([]byte(redisProduct), &product); err != nil {
					log.Printf("無法反序列化商品資料: %v\n", err)
					valid = false
					break
				}
				productsData = append(productsData, productData(&product))
			}
			if valid {
				c.JSON(http.StatusOK, gin.H{
					"message":  "成功讀取商品列表",
					"products": productsData,
				})
				return
			}
		}
	}

	var products []models.Product
	err := db.Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法讀取商品列表",
			"error":   err.Error(),
		})
		return
	}

	//重建Redis快取
	if rdb != nil {
		rdb.Del(c, "products")
		for i := range products {
			if err, _ := UpdateProductToRedis(c, rdb, &products[i]); err != nil {
				log.Printf("無法將商品資料加入Redis: %v\n", err)
			}
		}
	}

	var productsData []gin.H
	for i := range products {
		productsData = append(productsData, productData(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "成功讀取商品列表",
		"products": productsData,
	})
}

// 查詢商品詳細資料
func GetProductDataHandler(c *gin.Context, db *gorm.DB) {
	productID := c.Param("productID")

	var product models.Product
	err := db.First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品資料失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢商品資料",
		"product": productData(&product),
	})
}

func CreateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	var newProduct struct {
		Name        string `json:"name"`
		CategoryID  uint   `json:"categoryID"`
		Description string `json:"description"`
		Price       string `json:"price"`
		ImageURL    string `json:"imageURL"`
	}
	err := c.ShouldBindJSON(&newProduct)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	price, errs := ValidateProductInput(db, newProduct.Name, newProduct.CategoryID, newProduct.Description, newProduct.Price, newProduct.ImageURL)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品資料驗證失敗",
			"errors":  errs,
		})
		return
	}

	product := models.Product{
		Name:        newProduct.Name,
		CategoryID:  newProduct.CategoryID,
		Description: newProduct.Description,
		Price:       price,
		ImageURL:    newProduct.ImageURL,
		CreatedBy:   userID,
	}

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Create(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增商品失敗",
			"error":   err.Error(),
		})
		return
	}

	err, msg := UpdateProductToRedis(c, rdb, &product)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": msg,
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

	c.JSON(http.StatusCreated, gin.H{
		"message": "成功新增商品",
		"product": productData(&product),
	})
}

func UpdateProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var productDataReq struct {
		Name        *string `json:"name"`
		CategoryID  *uint   `json:"categoryID"`
		Description *string `json:"description"`
		Price       *string `json:"price"`
		ImageURL    *string `json:"imageURL"`
	}
	err := c.ShouldBindJSON(&productDataReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	var product models.Product
	err = db.First(&product, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品資料失敗",
			"error":   err.Error(),
		})
		return
	}

	oldImageURL := product.ImageURL

	if productDataReq.Name != nil {
		product.Name = *productDataReq.Name
	}
	if productDataReq.CategoryID != nil {
		product.CategoryID = *productDataReq.CategoryID
	}
	if productDataReq.Description != nil {
		product.Description = *productDataReq.Description
	}
	if productDataReq.ImageURL != nil {
		product.ImageURL = *productDataReq.ImageURL
	}
	priceInput := product.Price.String()
	if productDataReq.Price != nil {
		priceInput = *productDataReq.Price
	}

	price, errs := ValidateProductInput(db, product.Name, product.CategoryID, product.Description, priceInput, product.ImageURL)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品資料驗證失敗",
			"errors":  errs,
		})
		return
	}
	product.Price = price

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err = tx.Save(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "修改商品資料失敗",
			"error":   err.Error(),
		})
		return
	}

	err, msg := UpdateProductToRedis(c, rdb, &product)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": msg,
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

	//確定寫入成功後才刪除被替換的舊圖片
	if oldImageURL != "" && oldImageURL != product.ImageURL {
		if err := storage.RemoveImage(oldImageURL); err != nil {
			log.Printf("刪除舊商品圖片失敗: %v\n", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功修改商品資料",
		"product": productData(&product),
	})
}

func DeleteProductHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client) {
	productID := c.Param("productID")

	var product models.Product

	tx := db.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "開啟資料庫事務失敗",
			"error":   tx.Error.Error(),
		})
		return
	}

	err := tx.First(&product, productID).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "找不到此商品",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查找此商品失敗",
			"error":   err.Error(),
		})
		return
	}

	//連帶刪除引用此商品的訂單
	err = tx.Where("product_id = ?", product.ID).Delete(&models.Order{}).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除商品訂單失敗",
			"error":   err.Error(),
		})
		return
	}

	err = tx.Delete(&product).Error
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除商品失敗",
			"error":   err.Error(),
		})
		return
	}

	err = RemoveProductFromRedis(c, rdb, product.ID)
	if err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料從Redis刪除",
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

	//確定刪除成功後移除圖片檔案
	if err := storage.RemoveImage(product.ImageURL); err != nil {
		log.Printf("刪除商品圖片失敗: %v\n", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功刪除商品",
	})
}
