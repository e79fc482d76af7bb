package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"OrderManager/storage"
)

// 上傳商品圖片，回傳路徑供商品的imageURL欄位使用
func UploadImageHandler(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	if !IsValidImageExtension(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "圖片檔案格式錯誤",
		})
		return
	}

	imagePath, err := storage.SaveImage(c, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存圖片失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "成功上傳圖片",
		"imagePath": imagePath,
	})
}
