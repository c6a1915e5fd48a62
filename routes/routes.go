package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"washpro-backend/config"
	"washpro-backend/controllers"
	"washpro-backend/models"
	"washpro-backend/services"
	"washpro-backend/utils"
)

// Controllers collects every handler group the router mounts.
type Controllers struct {
	fx.In

	Auth       *controllers.AuthController
	Health     *controllers.HealthController
	Customers  *controllers.CustomerController
	Services   *controllers.ServiceController
	CheckIns   *controllers.CheckInController
	Inventory  *controllers.InventoryController
	Sales      *controllers.SalesController
	Bonuses    *controllers.BonusController
	Milestones *controllers.MilestoneController
	Staff      *controllers.StaffController
	Tools      *controllers.ToolController
	Payments   *controllers.PaymentController
	Reports    *controllers.ReportController
	Dashboard  *controllers.DashboardController
	Profile    *controllers.ProfileController
	Messages   *controllers.MessageController
}

func SetupRouter(cfg config.Config, h Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Trace-ID"},
		AllowCredentials: true,
	}))

	r.Use(utils.TraceIDMiddleware())
	r.Use(config.PerformanceLogger())

	r.GET("/health", h.Health.Health)

	auth := r.Group("/api/auth")
	{
		auth.POST("/admin/login", h.Auth.AdminLogin)
		auth.POST("/washer/login", h.Auth.WasherLogin)
	}

	admin := r.Group("/api/admin")
	admin.Use(utils.AuthMiddleware(cfg.JWTSecret, services.AdminRoles...))
	{
		// Service catalog
		svc := admin.Group("/services")
		{
			svc.POST("", h.Services.CreateService)
			svc.GET("", h.Services.GetServices)
			svc.GET("/:id", h.Services.GetService)
			svc.PUT("/:id", h.Services.UpdateService)
			svc.DELETE("/:id", h.Services.DeleteService)
		}

		customers := admin.Group("/customers")
		{
			customers.POST("", h.Customers.CreateCustomer)
			customers.GET("", h.Customers.GetCustomers)
			customers.GET("/:id", h.Customers.GetCustomer)
			customers.PUT("/:id", h.Customers.UpdateCustomer)
			customers.DELETE("/:id", h.Customers.DeleteCustomer)
			customers.POST("/:id/vehicles", h.Customers.AddVehicle)
		}

		checkIns := admin.Group("/checkins")
		{
			checkIns.POST("", h.CheckIns.CreateCheckIn)
			checkIns.GET("", h.CheckIns.GetCheckIns)
			checkIns.GET("/:id", h.CheckIns.GetCheckIn)
			checkIns.PUT("/:id/status", h.CheckIns.UpdateCheckInStatus)
		}

		inventory := admin.Group("/inventory")
		{
			inventory.POST("", h.Inventory.CreateItem)
			inventory.GET("", h.Inventory.GetItems)
			inventory.GET("/:id", h.Inventory.GetItem)
			inventory.PUT("/:id", h.Inventory.UpdateItem)
			inventory.DELETE("/:id", h.Inventory.DeleteItem)
			inventory.POST("/:id/restock", h.Inventory.RestockItem)
		}

		admin.POST("/sales", h.Sales.CreateSale)
		admin.GET("/sales", h.Sales.GetSales)

		admin.POST("/bonuses", h.Bonuses.CreateBonus)
		admin.GET("/bonuses", h.Bonuses.GetBonuses)
		admin.PUT("/bonuses/:id/status", h.Bonuses.UpdateBonusStatus)

		milestones := admin.Group("/milestones")
		{
			milestones.POST("", h.Milestones.CreateMilestone)
			milestones.GET("", h.Milestones.GetMilestones)
			milestones.PUT("/:id", h.Milestones.UpdateMilestone)
			milestones.DELETE("/:id", h.Milestones.DeleteMilestone)
		}
		admin.GET("/milestone-achievements", h.Milestones.GetAchievements)
		admin.POST("/milestone-achievements", h.Milestones.CheckAchievements)

		washers := admin.Group("/washers")
		{
			washers.POST("", h.Staff.CreateWasher)
			washers.GET("", h.Staff.GetWashers)
			washers.GET("/:id", h.Staff.GetWasher)
			washers.PUT("/:id", h.Staff.UpdateWasher)
			washers.DELETE("/:id", h.Staff.DeleteWasher)
		}

		// Only a super_admin manages admin accounts and their roles.
		admins := admin.Group("/admins", utils.AuthMiddleware(cfg.JWTSecret, models.RoleSuperAdmin))
		{
			admins.POST("", h.Staff.CreateAdmin)
			admins.GET("", h.Staff.GetAdmins)
			admins.PUT("/:id", h.Staff.UpdateAdmin)
			admins.DELETE("/:id", h.Staff.DeleteAdmin)
		}

		admin.POST("/washer-tools", h.Tools.AssignTool)
		admin.GET("/washer-tools", h.Tools.GetTools)
		admin.PUT("/washer-tools/:id/status", h.Tools.UpdateToolStatus)
		admin.POST("/tool-charges", h.Tools.CreateCharge)
		admin.GET("/tool-charges", h.Tools.GetCharges)
		admin.PUT("/tool-charges/:id/status", h.Tools.UpdateChargeStatus)

		admin.GET("/payment-requests", h.Payments.GetPaymentRequests)
		admin.PUT("/payment-requests/:id/status", h.Payments.UpdatePaymentStatus)

		admin.GET("/financial-reports", h.Reports.GetFinancialReport)
		admin.GET("/payment-reports", h.Reports.GetPaymentReport)
		admin.GET("/dashboard-metrics", h.Dashboard.GetDashboardMetrics)

		// Settings
		admin.GET("/settings", h.Profile.GetProfile)
		admin.PUT("/settings", h.Profile.UpdateProfile)
		admin.GET("/message-templates", h.Messages.GetTemplates)
		admin.PUT("/message-templates/:type", h.Messages.SaveTemplate)
		admin.GET("/notifications", h.Messages.GetNotifications)
	}

	worker := r.Group("/api/worker")
	worker.Use(utils.AuthMiddleware(cfg.JWTSecret, models.RoleWasher))
	{
		worker.GET("/bonuses", h.Bonuses.GetMyBonuses)
		worker.GET("/payment-requests", h.Payments.GetMyPaymentRequests)
		worker.POST("/payment-requests", h.Payments.CreatePaymentRequest)
	}

	return r
}
