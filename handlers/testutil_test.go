package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"OrderManager/models"
	"OrderManager/routers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testDBCounter int64

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// 建立測試用記憶體資料庫，每個測試一個獨立的shared cache資料庫
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(name), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.Order{},
	)
	require.NoError(t, err)

	return db
}

// 建立測試用路由器，以假middleware代替JWT驗證直接設定UserID
// userID為0時不設定，用來測試未登入的情況
func newTestRouter(db *gorm.DB, userID uint) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("UserID", userID)
		}
		c.Next()
	})
	routers.RegisterAPIRoutes(router, db, nil)
	return router
}

func performRequest(router *gin.Engine, method string, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	return resp
}

func createTestCategory(t *testing.T, db *gorm.DB, name string, createdBy uint) *models.Category {
	t.Helper()

	category := models.Category{Name: name, CreatedBy: createdBy}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, categoryID uint, price string, createdBy uint) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		CategoryID:  categoryID,
		Description: "測試商品",
		Price:       decimal.RequireFromString(price),
		CreatedBy:   createdBy,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func createTestCustomer(t *testing.T, db *gorm.DB, name string, createdBy uint) *models.Customer {
	t.Helper()

	customer := models.Customer{Name: name, CreatedBy: &createdBy}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func createTestOrder(t *testing.T, db *gorm.DB, customerID uint, productID uint, quantity uint, createdBy uint) *models.Order {
	t.Helper()

	order := models.Order{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
		Status:     models.OrderStatusPlaced,
		CreatedBy:  createdBy,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}
