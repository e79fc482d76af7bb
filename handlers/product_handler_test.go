package handlers_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OrderManager/models"
)

func TestCreateProductThenList(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	router := newTestRouter(db, 1)

	w := performRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"name":        "紅茶",
		"categoryID":  category.ID,
		"description": "好喝的紅茶",
		"price":       "25.00",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	//商品為全域資料，其他使用者的列表也包含此商品
	otherRouter := newTestRouter(db, 2)
	w = performRequest(otherRouter, "GET", "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := parseResponse(t, w)
	products, ok := resp["products"].([]interface{})
	require.True(t, ok)
	assert.Len(t, products, 1)
}

func TestCreateProductPriceValidation(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	router := newTestRouter(db, 1)

	//小數3位應被拒絕
	w := performRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"name":        "紅茶",
		"categoryID":  category.ID,
		"description": "好喝的紅茶",
		"price":       "12.345",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseResponse(t, w)
	errs, ok := resp["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "price")

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	//小數2位應被接受
	w = performRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"name":        "紅茶",
		"categoryID":  category.ID,
		"description": "好喝的紅茶",
		"price":       "12.34",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateProductMissingCategory(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, 1)

	w := performRequest(router, "POST", "/api/v1/products", map[string]interface{}{
		"name":        "紅茶",
		"categoryID":  9999,
		"description": "好喝的紅茶",
		"price":       "25.00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := parseResponse(t, w)
	errs, ok := resp["errors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errs, "categoryID")
}

func TestUpdateProductByOtherUser(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)

	//商品為全域資料，非建立者也可修改
	router := newTestRouter(db, 2)
	w := performRequest(router, "PATCH", "/api/v1/products/"+itoa(product.ID), map[string]interface{}{
		"price": "30.00",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, db.First(&updated, product.ID).Error)
	assert.Equal(t, "30", updated.Price.String())
}

func TestUpdateProductReplacesImage(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)

	require.NoError(t, os.MkdirAll("uploads", 0755))
	t.Cleanup(func() { os.RemoveAll("uploads") })
	oldImage := filepath.Join("uploads", "old_image.png")
	require.NoError(t, os.WriteFile(oldImage, []byte("img"), 0644))
	require.NoError(t, db.Model(product).Update("image_url", "/uploads/old_image.png").Error)

	router := newTestRouter(db, 1)
	w := performRequest(router, "PATCH", "/api/v1/products/"+itoa(product.ID), map[string]interface{}{
		"imageURL": "/uploads/new_image.png",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	//被替換的舊圖片檔案應刪除
	_, err := os.Stat(oldImage)
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteProductCascade(t *testing.T) {
	db := newTestDB(t)
	category := createTestCategory(t, db, "飲料", 1)
	product := createTestProduct(t, db, "紅茶", category.ID, "25.00", 1)
	customer := createTestCustomer(t, db, "王小明", 1)
	createTestOrder(t, db, customer.ID, product.ID, 2, 1)

	require.NoError(t, os.MkdirAll("uploads", 0755))
	t.Cleanup(func() { os.RemoveAll("uploads") })
	imageFile := filepath.Join("uploads", "delete_me.png")
	require.NoError(t, os.WriteFile(imageFile, []byte("img"), 0644))
	require.NoError(t, db.Model(product).Update("image_url", "/uploads/delete_me.png").Error)

	router := newTestRouter(db, 1)
	w := performRequest(router, "DELETE", "/api/v1/products/"+itoa(product.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	//商品與引用它的訂單都應刪除
	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	//圖片檔案應一併刪除
	_, err := os.Stat(imageFile)
	assert.True(t, os.IsNotExist(err))

	//分類不受影響
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProductNotFound(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db, 1)

	w := performRequest(router, "DELETE", "/api/v1/products/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
