package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/harhspalod/ecommerce-main/internal/config"
	"github.com/harhspalod/ecommerce-main/internal/handlers"
	"github.com/harhspalod/ecommerce-main/internal/middleware"
	"github.com/harhspalod/ecommerce-main/internal/services"
)

// SetupRouter configures the Gin router with all CRM routes
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// The dispatcher falls back to log-only when the broker is disabled or
	// unreachable; call triggers still persist either way.
	var dispatcher services.PayloadDispatcher = services.NewLogDispatcher()
	if cfg.RabbitMQ.Enabled {
		queueDispatcher, err := services.NewDispatchService(&cfg.RabbitMQ)
		if err != nil {
			logrus.Warnf("Failed to initialize RabbitMQ: %v", err)
		} else {
			logrus.Info("RabbitMQ dispatch queue initialized")
			dispatcher = queueDispatcher
		}
	}

	customerHandler := handlers.NewCustomerHandler(db)
	productHandler := handlers.NewProductHandler(db)
	purchaseHandler := handlers.NewPurchaseHandler(db)
	campaignHandler := handlers.NewCampaignHandler(db, dispatcher)
	callTriggerHandler := handlers.NewCallTriggerHandler(db)
	reportHandler := handlers.NewReportHandler(db, "exports")

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	triggerLimit := middleware.RateLimit(cfg.App.TriggerRPS, cfg.App.TriggerBurst)

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now().Format(time.RFC3339),
			})
		})

		customers := api.Group("/customers")
		{
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("", customerHandler.GetCustomers)
			customers.GET("/phone", customerHandler.GetCustomerPhones)
			customers.GET("/purchase-history", customerHandler.GetPurchaseHistory)
			customers.GET("/:id", customerHandler.GetCustomerByID)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
		}

		products := api.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProductByID)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", purchaseHandler.CreatePurchase)
			purchases.GET("", purchaseHandler.GetPurchases)
			purchases.DELETE("/:id", purchaseHandler.DeletePurchase)
		}

		campaigns := api.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.POST("/price-drop", triggerLimit, campaignHandler.TriggerPriceDrop)
			campaigns.POST("/trigger-call", triggerLimit, campaignHandler.TriggerCall)
			campaigns.GET("/:id", campaignHandler.GetCampaignByID)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.PUT("/:id", campaignHandler.UpdateCampaign)
			campaigns.DELETE("/:id", campaignHandler.DeleteCampaign)
		}

		api.GET("/call-triggers", callTriggerHandler.GetCallTriggers)

		reports := api.Group("/reports")
		{
			reports.GET("/purchases/export", reportHandler.ExportPurchases)
			reports.GET("/purchases/download/:filename", reportHandler.DownloadPurchaseReport)
		}
	}

	return r
}
