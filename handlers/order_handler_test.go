package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OrderManager/models"
)

func TestCreateOrderThenList(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "12.34", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	router := newTestRouter(db, 1)

	w := performRequest(router, "POST", "/api/v1/orders", map[string]interface{}{
		"customerID": customer.ID,
		"productID":  product.ID,
		"quantity":   2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	resp := parseResponse(t, w)
	order, ok := resp["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, models.OrderStatusPlaced, order["status"])
	assert.Equal(t, "24.68", order["totalPrice"])

	//建立者的列表包含此訂單
	w = performRequest(router, "GET", "/api/v1/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	orderList, ok := resp["orderList"].([]interface{})
	require.True(t, ok)
	assert.Len(t, orderList, 1)

	//其他使用者的列表不包含此訂單
	otherRouter := newTestRouter(db, 2)
	w = performRequest(otherRouter, "GET", "/api/v1/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Empty(t, resp["orderList"])
}

func TestCreateOrderQuantityDefaults(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	router := newTestRouter(db, 1)

	//數量為0應被拒絕
	w := performRequest(router, "POST", "/api/v1/orders", map[string]interface{}{
		"customerID": customer.ID,
		"productID":  product.ID,
		"quantity":   0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseResponse(t, w)
	errs, ok := resp["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "quantity")

	//數量未填預設為1
	w = performRequest(router, "POST", "/api/v1/orders", map[string]interface{}{
		"customerID": customer.ID,
		"productID":  product.ID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	resp = parseResponse(t, w)
	order, ok := resp["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), order["quantity"])
}

func TestCreateOrderInvalidReferences(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	router := newTestRouter(db, 1)

	w := performRequest(router, "POST", "/api/v1/orders", map[string]interface{}{
		"customerID": 9999,
		"productID":  product.ID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, "POST", "/api/v1/orders", map[string]interface{}{
		"customerID": customer.ID,
		"productID":  9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	order := createTestOrder(t, db, customer.ID, product.ID, 1, 1)
	router := newTestRouter(db, 1)

	//狀態沒有轉換限制，delivered可以改回placed
	for _, status := range []string{
		models.OrderStatusDelivered,
		models.OrderStatusPlaced,
		models.OrderStatusCancelled,
	} {
		w := performRequest(router, "PATCH", "/api/v1/orders/"+itoa(order.ID), map[string]interface{}{
			"status": status,
		})
		assert.Equal(t, http.StatusOK, w.Code)

		var updated models.Order
		require.NoError(t, db.First(&updated, order.ID).Error)
		assert.Equal(t, status, updated.Status)
	}

	//列舉外的狀態應被拒絕
	w := performRequest(router, "PATCH", "/api/v1/orders/"+itoa(order.ID), map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderByNonCreator(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	order := createTestOrder(t, db, customer.ID, product.ID, 1, 1)

	//非建立者修改應回傳404而非403
	router := newTestRouter(db, 2)
	w := performRequest(router, "PATCH", "/api/v1/orders/"+itoa(order.ID), map[string]interface{}{
		"status": models.OrderStatusShipped,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.Order
	require.NoError(t, db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.OrderStatusPlaced, unchanged.Status)
}

func TestDeleteOrder(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	order := createTestOrder(t, db, customer.ID, product.ID, 1, 1)

	//非建立者刪除應回傳404
	otherRouter := newTestRouter(db, 2)
	w := performRequest(otherRouter, "DELETE", "/api/v1/orders/"+itoa(order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	router := newTestRouter(db, 1)
	w = performRequest(router, "DELETE", "/api/v1/orders/"+itoa(order.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	//客戶與商品不受影響
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customerA := createTestCustomer(t, db, "王小明", 1)
	createTestCustomer(t, db, "李大華", 2)
	createTestOrder(t, db, customerA.ID, product.ID, 1, 1)

	router := newTestRouter(db, 1)
	w := performRequest(router, "GET", "/api/v1/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	//客戶與訂單數量只計算該使用者的資料，商品為全域數量
	assert.Equal(t, float64(1), resp["totalCustomers"])
	assert.Equal(t, float64(1), resp["totalProducts"])
	assert.Equal(t, float64(1), resp["totalOrders"])

	recentOrders, ok := resp["recentOrders"].([]interface{})
	require.True(t, ok)
	assert.Len(t, recentOrders, 1)
}
