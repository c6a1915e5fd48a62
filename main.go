package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"washpro-backend/cache"
	"washpro-backend/config"
	"washpro-backend/controllers"
	"washpro-backend/notify"
	"washpro-backend/routes"
	"washpro-backend/services"
	"washpro-backend/store"
	"washpro-backend/utils"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	fx.New(
		fx.Provide(
			loadConfig,
			config.ConnectDB,
			store.NewUnitOfWork,
			newMetricsCache,
			newSMSSender,
			newMailer,

			services.NewCatalogService,
			services.NewCustomerService,
			services.NewInventoryService,
			services.NewSettingsService,
			services.NewMessagingService,
			services.NewBonusService,
			services.NewMilestoneService,
			services.NewCheckInService,
			services.NewSalesService,
			services.NewToolService,
			services.NewPaymentService,
			services.NewAccountService,
			services.NewReportService,
			services.NewDashboardService,
			services.NewScheduler,

			controllers.NewAuthController,
			controllers.NewHealthController,
			controllers.NewCustomerController,
			controllers.NewServiceController,
			controllers.NewCheckInController,
			controllers.NewInventoryController,
			controllers.NewSalesController,
			controllers.NewBonusController,
			controllers.NewMilestoneController,
			controllers.NewStaffController,
			controllers.NewToolController,
			controllers.NewPaymentController,
			controllers.NewReportController,
			controllers.NewDashboardController,
			controllers.NewProfileController,
			controllers.NewMessageController,

			routes.SetupRouter,
		),
		fx.Invoke(
			migrate,
			seed,
			bootstrapAdmin,
			startScheduler,
			startServer,
		),
	).Run()
}

// loadConfig falls back to a random signing key so a dev setup starts
// without JWT_SECRET. Tokens then do not survive a restart.
func loadConfig() config.Config {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Println("[auth] JWT_SECRET not set, using a random per-process secret")
		cfg.JWTSecret = utils.GenerateJWTSecret()
	}
	return cfg
}

func migrate(lc fx.Lifecycle, db *gorm.DB) error {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			config.CloseDB(db)
			return nil
		},
	})
	return config.Migrate(db)
}

func seed(cfg config.Config, db *gorm.DB) error {
	if cfg.SeedFile == "" {
		return nil
	}
	s, err := config.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	return config.ApplySeed(db, s)
}

// bootstrapAdmin creates the first super_admin from ADMIN_EMAIL and
// ADMIN_PASSWORD while no admin exists yet.
func bootstrapAdmin(cfg config.Config, accounts *services.AccountService) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := accounts.EnsureSuperAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	return err
}

// newMetricsCache uses Redis when REDIS_ADDR is set and falls back to no
// caching when it is unset or unreachable.
func newMetricsCache(lc fx.Lifecycle, cfg config.Config) cache.MetricsCache {
	if cfg.RedisAddr == "" {
		return cache.NoopMetricsCache{}
	}
	redisCache := cache.NewRedisMetricsCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Printf("[cache] redis at %s unreachable, dashboard caching disabled: %v", cfg.RedisAddr, err)
		_ = redisCache.Close()
		return cache.NoopMetricsCache{}
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return redisCache.Close() },
	})
	return redisCache
}

func newSMSSender(cfg config.Config) notify.SMSSender {
	if !cfg.SMSConfigured() {
		log.Println("[notify] Twilio credentials not set, SMS disabled")
		return notify.NoopSMS{}
	}
	return notify.NewTwilioSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
}

func newMailer(cfg config.Config) notify.Mailer {
	if cfg.ResendAPIKey == "" {
		log.Println("[notify] RESEND_API_KEY not set, e-mail disabled")
		return notify.NoopMailer{}
	}
	return notify.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)
}

func startScheduler(lc fx.Lifecycle, scheduler *services.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return scheduler.Start() },
		OnStop:  scheduler.Stop,
	})
}

func startServer(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{Addr: cfg.Address(), Handler: r}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			printRoutes(r)
			log.Printf("Server listening on %s", srv.Addr)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("Server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: srv.Shutdown,
	})
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
