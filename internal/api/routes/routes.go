package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "supplier-management-api-server/config"
	"supplier-management-api-server/internal/api/handlers"
	"supplier-management-api-server/internal/api/middleware"
	"supplier-management-api-server/internal/metrics"
	"supplier-management-api-server/internal/services"
	"supplier-management-api-server/internal/socket"
)

// SetupRouter wires the handlers onto the HTTP surface.
func SetupRouter(
	cfg appconfig.Config,
	onboarding *services.OnboardingService,
	suppliers *services.SupplierService,
	clients *services.ClientService,
	workOrders *services.WorkOrderService,
	dashboard *services.DashboardService,
	accounts *services.AccountService,
	wsHub *socket.Hub,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.Server.CORSOrigin != "" {
		corsConfig.AllowOrigins = []string{cfg.Server.CORSOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	jwtSecret := []byte(cfg.JWT.Secret)

	supplierHandler := &handlers.SupplierHandler{Onboarding: onboarding, Suppliers: suppliers}
	clientHandler := &handlers.ClientHandler{Clients: clients}
	workOrderHandler := &handlers.WorkOrderHandler{WorkOrders: workOrders}
	dashboardHandler := &handlers.DashboardHandler{Dashboard: dashboard}
	userHandler := &handlers.UserHandler{Accounts: accounts}
	lookupHandler := &handlers.LookupHandler{}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, JWTSecret: jwtSecret}

	router.GET("/metrics", metrics.Handler())

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/forgot-password", userHandler.ForgotPassword)
			auth.POST("/reset-password", userHandler.ResetPassword)
		}

		// Lookup tables feed public onboarding forms, no token needed.
		lookupRoutes := apiV1.Group("/lookups")
		{
			lookupRoutes.GET("/regions", lookupHandler.GetRegions)
			lookupRoutes.GET("/services", lookupHandler.GetServices)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(jwtSecret))
		{
			supplierRoutes := protected.Group("/suppliers")
			{
				supplierRoutes.GET("/search", supplierHandler.SearchSuppliers)
				supplierRoutes.GET("/:id", supplierHandler.GetSupplier)

				editorRoutes := supplierRoutes.Group("/")
				editorRoutes.Use(middleware.Authorize("ADMIN", "EDITOR"))
				{
					editorRoutes.POST("/onboard", supplierHandler.OnboardSupplier)
				}

				adminRoutes := supplierRoutes.Group("/")
				adminRoutes.Use(middleware.Authorize("ADMIN"))
				{
					adminRoutes.GET("/", supplierHandler.GetAllSuppliers)
					adminRoutes.DELETE("/:id", supplierHandler.DeleteSupplier)
				}
			}

			clientRoutes := protected.Group("/clients")
			clientRoutes.Use(middleware.Authorize("ADMIN", "EDITOR"))
			{
				clientRoutes.POST("/", clientHandler.CreateClient)
				clientRoutes.GET("/:id", clientHandler.GetClient)
				clientRoutes.POST("/:id/suppliers", clientHandler.AddApprovedSupplier)
				clientRoutes.GET("/:id/suppliers", clientHandler.GetApprovedSuppliers)
				clientRoutes.GET("/:id/work-orders", workOrderHandler.GetClientWorkOrders)
			}

			workOrderRoutes := protected.Group("/work-orders")
			{
				workOrderRoutes.GET("/:id", workOrderHandler.GetWorkOrder)
				workOrderRoutes.GET("/by-services", workOrderHandler.GetWorkOrdersByServices)

				workOrderEditorRoutes := workOrderRoutes.Group("/")
				workOrderEditorRoutes.Use(middleware.Authorize("ADMIN", "EDITOR"))
				{
					workOrderEditorRoutes.POST("/", workOrderHandler.CreateWorkOrder)
					workOrderEditorRoutes.PUT("/:id/status", workOrderHandler.UpdateStatus)
					workOrderEditorRoutes.PUT("/:id/suppliers", workOrderHandler.AssignSuppliers)
					workOrderEditorRoutes.DELETE("/:id", workOrderHandler.VoidWorkOrder)
				}
			}

			dashboardRoutes := protected.Group("/dashboard")
			{
				dashboardRoutes.GET("/metrics", dashboardHandler.GetMetrics)
			}
		}
	}

	return router
}
