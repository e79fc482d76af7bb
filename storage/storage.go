package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const uploadsDir = "./uploads"

// 以UUID產生不重複的圖片檔名
func makeUniqueFileName(file *multipart.FileHeader) string {
	fileExt := filepath.Ext(file.Filename)
	return fmt.Sprintf("%s%s", uuid.New().String(), fileExt)
}

// 儲存上傳的圖片並回傳對外路徑
func SaveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	//檢查uploads資料夾是否存在，如不存在則創建
	_, err := os.Stat(uploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.Mkdir(uploadsDir, 0755); err != nil {
				return "", err
			}
		} else {
			return "", err
		}
	}

	filePath := filepath.Join(uploadsDir, makeUniqueFileName(file))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(filePath), nil
}

// 刪除圖片檔案，檔案不存在不視為錯誤
func RemoveImage(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	//只取檔名，避免路徑跳脫uploads資料夾
	filePath := filepath.Join(uploadsDir, filepath.Base(imageURL))
	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
