package routers

import (
	"OrderManager/handlers"
	"OrderManager/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"net/http"
)

func SetupRouters(db *gorm.DB, rdb *redis.Client) *gin.Engine {
	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	//設定商品圖片靜態資源路徑
	router.Static("/uploads", "./uploads")

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	////無須權限，使用中間件檢查是否登入
	router.Use(middleware.AuthMiddleware(db))
	{
		//註冊帳號
		router.POST("/api/v1/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, db)
		})
		//登入帳號
		router.POST("/api/v1/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db)
		})

		RegisterAPIRoutes(router, db, rdb)
	}

	return router
}

// 註冊所有需要登入的API路由
func RegisterAPIRoutes(router gin.IRouter, db *gorm.DB, rdb *redis.Client) {
	////需要登入，使用中間件檢查是否登入
	loginRequired := router.Group("/api/v1")
	loginRequired.Use(middleware.CheckLoginMiddleware())
	{
		//查詢儀表板資料
		loginRequired.GET("/dashboard", func(context *gin.Context) {
			handlers.GetDashboardHandler(context, db)
		})

		//上傳商品圖片
		loginRequired.POST("/image", func(context *gin.Context) {
			handlers.UploadImageHandler(context)
		})

		//查詢商品分類列表
		loginRequired.GET("/categories", func(context *gin.Context) {
			handlers.GetCategoryListHandler(context, db)
		})
		//新增商品分類
		loginRequired.POST("/categories", func(context *gin.Context) {
			handlers.CreateCategoryHandler(context, db)
		})
		//修改商品分類
		loginRequired.PATCH("/categories/:categoryID", func(context *gin.Context) {
			handlers.UpdateCategoryHandler(context, db)
		})
		//刪除商品分類及其連帶商品
		loginRequired.DELETE("/categories/:categoryID", func(context *gin.Context) {
			handlers.DeleteCategoryHandler(context, db, rdb)
		})

		//查詢商品列表
		loginRequired.GET("/products", func(context *gin.Context) {
			handlers.GetProductListHandler(context, db, rdb)
		})
		//查詢商品詳細資料
		loginRequired.GET("/products/:productID", func(context *gin.Context) {
			handlers.GetProductDataHandler(context, db)
		})
		//新增商品
		loginRequired.POST("/products", func(context *gin.Context) {
			handlers.CreateProductHandler(context, db, rdb)
		})
		//修改商品
		loginRequired.PATCH("/products/:productID", func(context *gin.Context) {
			handlers.UpdateProductHandler(context, db, rdb)
		})
		//刪除商品
		loginRequired.DELETE("/products/:productID", func(context *gin.Context) {
			handlers.DeleteProductHandler(context, db, rdb)
		})

		//查詢客戶列表
		loginRequired.GET("/customers", func(context *gin.Context) {
			handlers.GetCustomerListHandler(context, db)
		})
		//新增客戶
		loginRequired.POST("/customers", func(context *gin.Context) {
			handlers.CreateCustomerHandler(context, db)
		})
		//修改客戶資料
		loginRequired.PATCH("/customers/:customerID", func(context *gin.Context) {
			handlers.UpdateCustomerHandler(context, db)
		})
		//刪除客戶及其訂單
		loginRequired.DELETE("/customers/:customerID", func(context *gin.Context) {
			handlers.DeleteCustomerHandler(context, db)
		})

		//查詢訂單列表
		loginRequired.GET("/orders", func(context *gin.Context) {
			handlers.GetOrderListHandler(context, db)
		})
		//新增訂單
		loginRequired.POST("/orders", func(context *gin.Context) {
			handlers.CreateOrderHandler(context, db)
		})
		//修改訂單
		loginRequired.PATCH("/orders/:orderID", func(context *gin.Context) {
			handlers.UpdateOrderHandler(context, db)
		})
		//刪除訂單
		loginRequired.DELETE("/orders/:orderID", func(context *gin.Context) {
			handlers.DeleteOrderHandler(context, db)
		})

		//查詢使用者資料
		loginRequired.GET("/user/profile", func(context *gin.Context) {
			handlers.GetUserProfileHandler(context, db)
		})
		//登出
		loginRequired.POST("/user/logout", func(context *gin.Context) {
			handlers.LogOutHandler(context, db)
		})
	}
}
