package router

import (
	"fmt"
	"strings"

	"github.com/sweethub-erp/internal/cache"
	"github.com/sweethub-erp/internal/config"
	adminhandlers "github.com/sweethub-erp/internal/http/handlers/admin"
	poshandlers "github.com/sweethub-erp/internal/http/handlers/pos"
	wholesalehandlers "github.com/sweethub-erp/internal/http/handlers/wholesale"
	"github.com/sweethub-erp/internal/logger"
	"github.com/sweethub-erp/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按后台/收银/批发分组）
	adminHandler := adminhandlers.New(c)
	posHandler := poshandlers.New(c)
	wholesaleHandler := wholesalehandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sh"
	}
	redisClient := cache.Client()
	intakeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:intake", redisPrefix),
		WindowSeconds: cfg.Intake.RateLimit.WindowSeconds,
		MaxRequests:   cfg.Intake.RateLimit.MaxRequests,
		Message:       "order intake rate limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 签收凭证等上传文件
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 收银端接口
		pos := apiV1.Group("/pos")
		{
			pos.POST("/orders", RateLimitMiddleware(redisClient, intakeRule, KeyByIP), posHandler.CreateOrder)
			pos.GET("/orders/eligible", posHandler.GetEligibleOrders)
			pos.GET("/items/by-barcode/:barcode", posHandler.GetItemByBarcode)
		}

		// 批发端接口
		wholesale := apiV1.Group("/wholesale")
		{
			wholesale.POST("/orders", RateLimitMiddleware(redisClient, intakeRule, KeyByIP), wholesaleHandler.CreateOrder)
			wholesale.GET("/orders/eligible", wholesaleHandler.GetEligibleOrders)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			// 门店管理
			admin.GET("/stores", adminHandler.GetStores)
			admin.GET("/stores/:id", adminHandler.GetStore)
			admin.POST("/stores", adminHandler.CreateStore)
			admin.PUT("/stores/:id", adminHandler.UpdateStore)
			admin.DELETE("/stores/:id", adminHandler.DeleteStore)
			admin.GET("/store-categories", adminHandler.GetStoreCategories)
			admin.POST("/store-categories", adminHandler.CreateStoreCategory)
			admin.PUT("/store-categories/:id", adminHandler.UpdateStoreCategory)
			admin.DELETE("/store-categories/:id", adminHandler.DeleteStoreCategory)

			// 零售商品管理
			admin.GET("/items", adminHandler.GetItems)
			admin.GET("/items/:id", adminHandler.GetItem)
			admin.POST("/items", adminHandler.CreateItem)
			admin.PUT("/items/:id", adminHandler.UpdateItem)
			admin.DELETE("/items/:id", adminHandler.DeleteItem)
			admin.PUT("/items/:id/prices", adminHandler.SetItemPrice)
			admin.GET("/items/:id/prices", adminHandler.GetItemPrices)
			admin.GET("/item-categories", adminHandler.GetItemCategories)
			admin.POST("/item-categories", adminHandler.CreateItemCategory)
			admin.PUT("/item-categories/:id", adminHandler.UpdateItemCategory)
			admin.DELETE("/item-categories/:id", adminHandler.DeleteItemCategory)

			// 税率管理
			admin.GET("/taxes", adminHandler.GetTaxes)
			admin.POST("/taxes", adminHandler.CreateTax)
			admin.PUT("/taxes/:id", adminHandler.UpdateTax)
			admin.DELETE("/taxes/:id", adminHandler.DeleteTax)

			// 组合装管理
			admin.GET("/combos", adminHandler.GetCombos)
			admin.GET("/combos/:id", adminHandler.GetCombo)
			admin.POST("/combos", adminHandler.CreateCombo)
			admin.PUT("/combos/:id", adminHandler.UpdateCombo)
			admin.DELETE("/combos/:id", adminHandler.DeleteCombo)

			// 批发商品管理
			admin.GET("/products", adminHandler.GetProducts)
			admin.GET("/products/:id", adminHandler.GetProduct)
			admin.POST("/products", adminHandler.CreateProduct)
			admin.PUT("/products/:id", adminHandler.UpdateProduct)
			admin.DELETE("/products/:id", adminHandler.DeleteProduct)

			// 操作员管理
			admin.GET("/users", adminHandler.GetUsers)
			admin.POST("/users", adminHandler.CreateUser)
			admin.PUT("/users/:id", adminHandler.UpdateUser)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			// 订单管理
			admin.GET("/orders", adminHandler.GetAdminOrders)
			admin.GET("/orders/:id", adminHandler.GetAdminOrder)
			admin.POST("/orders/:id/approve", adminHandler.ApproveOrder)
			admin.POST("/orders/:id/cancel", adminHandler.CancelOrder)

			// 派送管理
			admin.GET("/dispatches", adminHandler.GetDispatches)
			admin.GET("/dispatches/:id", adminHandler.GetDispatch)
			admin.POST("/dispatches", adminHandler.CreateDispatch)
			admin.POST("/dispatches/from-order/:order_id", adminHandler.CreateDispatchFromOrder)
			admin.POST("/dispatches/:id/initialize-steps", adminHandler.InitializeDispatchSteps)
			admin.POST("/dispatches/:id/steps/complete", adminHandler.CompleteDispatchStep)
			admin.PUT("/dispatches/:id/quantity", adminHandler.SetDispatchQuantity)
			admin.GET("/dispatches/:id/progress", adminHandler.GetDispatchProgress)
			admin.POST("/dispatches/:id/cancel", adminHandler.CancelDispatch)
			admin.PUT("/dispatches/:id/acknowledgement", adminHandler.SetDispatchAcknowledgement)
			admin.GET("/dispatch-items", adminHandler.GetDispatchItems)
			admin.GET("/dispatch-steps", adminHandler.GetDispatchSteps)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
