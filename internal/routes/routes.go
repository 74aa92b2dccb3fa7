package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/everestpress/printshop-api/internal/audit"
	"github.com/everestpress/printshop-api/internal/config"
	"github.com/everestpress/printshop-api/internal/handlers"
	"github.com/everestpress/printshop-api/internal/identity"
	infraRepo "github.com/everestpress/printshop-api/internal/infra/repository"
	"github.com/everestpress/printshop-api/internal/middleware"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
	"github.com/everestpress/printshop-api/internal/payment"
	"github.com/everestpress/printshop-api/internal/uploads"
	ucOrder "github.com/everestpress/printshop-api/internal/usecase/order"
	ucQuote "github.com/everestpress/printshop-api/internal/usecase/quote"
)

// Dispatchers owns the background workers started during route wiring so
// main can drain them on shutdown.
type Dispatchers struct {
	Notify *notify.Dispatcher
	Audit  *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *Dispatchers {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userRepo := infraRepo.NewUserGormRepository(db)
	quoteRepo := infraRepo.NewQuoteGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)

	notifier := notify.NewSMTP(cfg.EmailHost, cfg.EmailPort, cfg.EmailUser, cfg.EmailPassword, cfg.EmailFrom, cfg.AdminEmails)
	notifyDispatcher := notify.NewDispatcher(notifier, log)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	tokens := identity.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL)
	usedTokens := identity.NewRedisUsedTokenStore(rdb)
	identitySvc := identity.NewService(userRepo, tokens, usedTokens, notifier, log)

	stripeProcessor := payment.NewStripeProcessor(cfg.StripeSecretKey)

	var imageStore *uploads.ImageStore
	if cfg.S3Bucket != "" {
		imageStore = uploads.NewImageStore(cfg)
	}

	// ======================================================
	// USE CASES — QUOTES
	// ======================================================
	createQuoteUC := ucQuote.NewCreateQuote(quoteRepo, notifyDispatcher)
	listQuotesUC := ucQuote.NewListQuotes(quoteRepo)
	getQuoteUC := ucQuote.NewGetQuote(quoteRepo)
	updateQuoteStatusUC := ucQuote.NewUpdateQuoteStatus(quoteRepo, notifyDispatcher, auditDispatcher)

	// ======================================================
	// USE CASES — ORDERS
	// ======================================================
	createOrderUC := ucOrder.NewCreateOrder(orderRepo, notifyDispatcher)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)
	getOrderUC := ucOrder.NewGetOrder(orderRepo)
	updateOrderStatusUC := ucOrder.NewUpdateOrderStatus(orderRepo, notifyDispatcher, auditDispatcher)
	createPaymentIntentUC := ucOrder.NewCreatePaymentIntent(orderRepo, stripeProcessor, cfg.Currency, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(identitySvc)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	galleryHandler := handlers.NewGalleryHandler(db, imageStore, auditDispatcher)
	contactHandler := handlers.NewContactHandler(db, notifyDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	quoteHandler := handlers.NewQuoteHandler(
		createQuoteUC,
		listQuotesUC,
		getQuoteUC,
		updateQuoteStatusUC,
	)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		listOrdersUC,
		getOrderUC,
		updateOrderStatusUC,
		createPaymentIntentUC,
	)

	// ======================================================
	// MIDDLEWARE CHAINS
	// ======================================================
	authRequired := middleware.Auth(tokens, userRepo)
	authOptional := middleware.OptionalAuth(tokens, userRepo)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	loginLimiter := middleware.RateLimit(rdb, "login", 10, time.Minute)
	resetLimiter := middleware.RateLimit(rdb, "pwreset", 5, 15*time.Minute)
	contactLimiter := middleware.RateLimit(rdb, "contact", 5, time.Minute)
	paymentLimiter := middleware.RateLimit(rdb, "payment", 10, time.Minute)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", loginLimiter, authHandler.Login)
		api.POST("/auth/forgot-password", resetLimiter, authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)
		api.GET("/auth/profile", authRequired, authHandler.GetProfile)
		api.PUT("/auth/profile", authRequired, authHandler.UpdateProfile)

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/services", authOptional, serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/gallery", galleryHandler.List)
		api.GET("/gallery/:id", galleryHandler.Get)

		// ------------------------------
		// QUOTES / ORDERS / CONTACT (public entry points)
		// ------------------------------
		api.POST("/quotes", authOptional, quoteHandler.Create)
		api.POST("/orders", authOptional, orderHandler.Create)
		api.POST("/contact", contactLimiter, contactHandler.Create)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authRequired)
		{
			secured.GET("/quotes", quoteHandler.List)
			secured.GET("/quotes/:id", quoteHandler.Get)

			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.POST("/orders/payment-intent", paymentLimiter, orderHandler.CreatePaymentIntent)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/")
		admin.Use(authRequired, adminOnly)
		{
			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.POST("/gallery", galleryHandler.Create)
			admin.POST("/gallery/upload", galleryHandler.Upload)
			admin.PUT("/gallery/:id", galleryHandler.Update)
			admin.DELETE("/gallery/:id", galleryHandler.Delete)

			admin.PUT("/quotes/:id/status", quoteHandler.UpdateStatus)
			admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

			admin.GET("/contact", contactHandler.List)
			admin.GET("/contact/:id", contactHandler.Get)
			admin.PATCH("/contact/:id/read", contactHandler.MarkRead)
			admin.DELETE("/contact/:id", contactHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return &Dispatchers{Notify: notifyDispatcher, Audit: auditDispatcher}
}
