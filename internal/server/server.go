package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/Yuvraj13742/dodo-payments/internal/alerts"
	"github.com/Yuvraj13742/dodo-payments/internal/auth"
	"github.com/Yuvraj13742/dodo-payments/internal/coin"
	"github.com/Yuvraj13742/dodo-payments/internal/config"
	"github.com/Yuvraj13742/dodo-payments/internal/creator"
	"github.com/Yuvraj13742/dodo-payments/internal/gift"
	"github.com/Yuvraj13742/dodo-payments/internal/payment"
	"github.com/Yuvraj13742/dodo-payments/internal/settlement"
	"github.com/Yuvraj13742/dodo-payments/internal/subscription"
	"github.com/Yuvraj13742/dodo-payments/internal/user"
	"github.com/Yuvraj13742/dodo-payments/internal/wallet"
	"github.com/Yuvraj13742/dodo-payments/internal/webhook"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, redisClient *redis.Client) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())

	userRepo := user.NewRepository(db)
	walletRepo := wallet.NewRepository(db)
	giftRepo := gift.NewRepository(db)
	coinRepo := coin.NewRepository(db)
	subRepo := subscription.NewRepository(db)
	settlementRepo := settlement.NewRepository(db)

	provider := payment.NewDodoClient(cfg.DodoAPIKey, cfg.DodoAPIBase, cfg.DodoReturnURL, cfg.DodoCancelURL)
	alertQueue := alerts.NewQueue(redisClient)

	settlementService := settlement.NewService(settlementRepo, walletRepo, subRepo, coinRepo, alertQueue, cfg.CoinsPerRupee)

	userHandler := user.NewHandler(user.NewService(userRepo, cfg.JWTSecret))
	walletHandler := wallet.NewHandler(walletRepo)
	giftHandler := gift.NewHandler(gift.NewService(giftRepo, userRepo, walletRepo, cfg.GiftCommissionRate))
	coinHandler := coin.NewHandler(coin.NewService(coinRepo, userRepo, walletRepo, provider))
	subHandler := subscription.NewHandler(subscription.NewService(subRepo, userRepo, walletRepo, provider))
	creatorHandler := creator.NewHandler(creator.NewService(userRepo, walletRepo, provider, alertQueue, cfg.MinPayoutAmount, cfg.CommissionRate))
	paymentHandler := payment.NewHandler(settlementService)
	webhookHandler := webhook.NewHandler(settlementService)

	public := router.Group("/auth")
	public.Use(RateLimitMiddleware(5, 10))
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.GET("/transactions", walletHandler.ListTransactions)

		protected.GET("/coins/packages", coinHandler.ListPackages)
		protected.POST("/coins/purchase", coinHandler.Purchase)
		protected.GET("/coins/balance", coinHandler.Balance)

		protected.GET("/gifts", giftHandler.ListGifts)
		protected.POST("/gifts/send", giftHandler.SendGift)

		protected.POST("/subscriptions", subHandler.Create)
		protected.GET("/subscriptions/:id", subHandler.Get)
		protected.PUT("/subscriptions/:id", subHandler.Update)
		protected.POST("/subscriptions/:id/cancel", subHandler.Cancel)

		protected.GET("/creators", creatorHandler.List)
		protected.GET("/creators/:creatorID/subscriptions", subHandler.ListByCreator)

		protected.POST("/payments/confirm", paymentHandler.Confirm)
	}

	creatorOnly := router.Group("/creator")
	creatorOnly.Use(authMiddleware, auth.RequireRole(auth.RoleCreator))
	{
		creatorOnly.POST("/withdraw", creatorHandler.Withdraw)
		creatorOnly.GET("/earnings", creatorHandler.Earnings)
		creatorOnly.PUT("/kyc", creatorHandler.UpdateKYC)
	}

	// Provider callbacks authenticate with an HMAC signature, not JWT.
	hooks := router.Group("/webhooks")
	hooks.Use(webhook.SignatureMiddleware(cfg.DodoSignatureVerify, cfg.DodoWebhookSecret))
	{
		hooks.POST("/dodo", webhookHandler.HandleEvent)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
