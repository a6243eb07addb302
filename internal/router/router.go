package router

import (
	"time"

	"gameshop-api/config"
	"gameshop-api/internal/cache"
	"gameshop-api/internal/handlers"
	"gameshop-api/internal/middleware"
	"gameshop-api/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Auth     *handlers.AuthHandler
	Games    *handlers.GameHandler
	Orders   *handlers.OrderHandler
	Checkout *handlers.CheckoutHandler
	Reviews  *handlers.ReviewHandler

	Tokens service.TokenProvider
	Redis  *cache.RedisClient // nil disables rate limiting
}

func Router(cfg *config.Config, d Deps, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin, "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	if d.Redis != nil {
		r.Use(middleware.RateLimit(d.Redis, 100, 15*time.Minute, log))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.Static("/uploads", cfg.UploadDir)

	authRequired := middleware.AuthRequired(d.Tokens, log)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.Auth.Register)
			auth.POST("/login", d.Auth.Login)
			auth.GET("/verify-email", d.Auth.VerifyEmail)
			auth.POST("/request-password-reset", d.Auth.RequestPasswordReset)
			auth.POST("/reset-password", d.Auth.ResetPassword)
			auth.GET("/profile", authRequired, d.Auth.GetProfile)
			auth.PUT("/profile", authRequired, d.Auth.UpdateProfile)
		}

		games := api.Group("/games")
		{
			games.GET("", d.Games.List)
			games.GET("/:id", d.Games.Get)

			admin := games.Group("", authRequired, middleware.AdminRequired())
			{
				admin.POST("", d.Games.Create)
				admin.PUT("/:id", d.Games.Update)
				admin.DELETE("/:id", d.Games.Delete)
			}
		}

		orders := api.Group("/orders", authRequired)
		{
			orders.POST("", d.Orders.Create)
			orders.GET("/user/:userId", d.Orders.ListByUser)
		}

		checkout := api.Group("/checkout")
		{
			checkout.POST("/create-checkout-session", authRequired, d.Checkout.CreateSession)
			// raw signed body, no auth middleware
			checkout.POST("/webhook", d.Checkout.Webhook)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/:gameId", d.Reviews.ListByGame)
			reviews.POST("/:gameId", authRequired, d.Reviews.Create)
			reviews.PUT("/:id", authRequired, d.Reviews.Update)
			reviews.DELETE("/:id", authRequired, d.Reviews.Delete)
		}
	}

	return r
}
