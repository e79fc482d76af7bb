package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// 限定查詢範圍為該使用者建立的資料
func OwnedBy(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("created_by = ?", userID)
	}
}

// 從Context取得目前登入的使用者ID
func currentUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get("UserID")
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}
