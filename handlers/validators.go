package handlers

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"OrderManager/models"
)

// 檢查使用者名稱是否合法
func ValidateUsername(username string) bool {
	if len(username) < 8 || len(username) > 20 {
		return false
	}
	pattern := "^[a-zA-Z0-9_-]+$"
	matched, _ := regexp.MatchString(pattern, username)
	return matched
}

// 檢查信箱是否合法
func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// 檢查密碼是否合法
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper   = false
		isLower   = false
		isNumber  = false
		isSpecial = false
		isSpace   = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isNumber = true
		case unicode.IsPunct(s) || unicode.IsSymbol(s):
			isSpecial = true
		default:
		}
	}

	return isUpper && isLower && isNumber && isSpecial && !isSpace
}

// 檢查圖片路徑副檔名是否合法
func IsValidImageExtension(imagePath string) bool {
	allowExtensions := []string{".jpg", ".jpeg", ".png"}
	fileExt := strings.ToLower(filepath.Ext(imagePath))
	for _, allowExt := range allowExtensions {
		if fileExt == allowExt {
			return true
		}
	}
	return false
}

// 檢查價格是否為合法金額：非負數、小數不超過2位、總位數不超過10位
func ValidatePrice(price string) (decimal.Decimal, string) {
	if strings.TrimSpace(price) == "" {
		return decimal.Decimal{}, "價格不可為空"
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Decimal{}, "價格格式錯誤"
	}
	if d.IsNegative() {
		return decimal.Decimal{}, "價格不可為負數"
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, "價格小數不可超過2位"
	}

	digits := int(d.NumDigits())
	if d.Exponent() > 0 {
		digits += int(d.Exponent())
	}
	if digits > 10 {
		return decimal.Decimal{}, "價格位數不可超過10位"
	}

	return d, ""
}

// 驗證商品分類欄位，錯誤以欄位名稱為key回傳
func ValidateCategoryInput(name string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(name) == "" {
		errs["name"] = "名稱不可為空"
	} else if utf8.RuneCountInString(name) > 100 {
		errs["name"] = "名稱長度不可超過100字"
	}
	return errs
}

// 驗證商品欄位，錯誤以欄位名稱為key回傳
func ValidateProductInput(db *gorm.DB, name string, categoryID uint, description string, price string, imageURL string) (decimal.Decimal, map[string]string) {
	errs := map[string]string{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = "名稱不可為空"
	} else if utf8.RuneCountInString(name) > 200 {
		errs["name"] = "名稱長度不可超過200字"
	}

	if categoryID == 0 {
		errs["categoryID"] = "必須選擇商品分類"
	} else {
		var category models.Category
		err := db.First(&category, categoryID).Error
		if err == gorm.ErrRecordNotFound {
			errs["categoryID"] = "商品分類不存在"
		} else if err != nil {
			errs["categoryID"] = "查詢商品分類失敗"
		}
	}

	if strings.TrimSpace(description) == "" {
		errs["description"] = "描述不可為空"
	}

	priceDecimal, priceErr := ValidatePrice(price)
	if priceErr != "" {
		errs["price"] = priceErr
	}

	if imageURL != "" && !IsValidImageExtension(imageURL) {
		errs["imageURL"] = "圖片檔案格式錯誤"
	}

	return priceDecimal, errs
}

// 驗證客戶欄位，錯誤以欄位名稱為key回傳
func ValidateCustomerInput(name string, email string) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = "名稱不可為空"
	} else if utf8.RuneCountInString(name) > 100 {
		errs["name"] = "名稱長度不可超過100字"
	}

	if email != "" && !ValidateEmail(email) {
		errs["email"] = "不合法的信箱"
	}

	return errs
}

// 驗證訂單欄位，錯誤以欄位名稱為key回傳
func ValidateOrderInput(db *gorm.DB, customerID uint, productID uint, quantity uint, status string) map[string]string {
	errs := map[string]string{}

	if customerID == 0 {
		errs["customerID"] = "必須選擇客戶"
	} else {
		var customer models.Customer
		err := db.First(&customer, customerID).Error
		if err == gorm.ErrRecordNotFound {
			errs["customerID"] = "客戶不存在"
		} else if err != nil {
			errs["customerID"] = "查詢客戶失敗"
		}
	}

	if productID == 0 {
		errs["productID"] = "必須選擇商品"
	} else {
		var product models.Product
		err := db.First(&product, productID).Error
		if err == gorm.ErrRecordNotFound {
			errs["productID"] = "商品不存在"
		} else if err != nil {
			errs["productID"] = "查詢商品失敗"
		}
	}

	if quantity < 1 {
		errs["quantity"] = "數量必須大於等於1"
	}

	validStatus := false
	for _, s := range models.OrderStatuses {
		if status == s {
			validStatus = true
			break
		}
	}
	if !validStatus {
		errs["status"] = "不合法的訂單狀態"
	}

	return errs
}
