package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RamadeviRamkumar/Veeras-Login/internal/config"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/handlers"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/middleware"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/otp"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/realtime"
	"github.com/RamadeviRamkumar/Veeras-Login/internal/sms"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, codes otp.Store, notifier sms.Notifier, hub *realtime.Hub, tokens *handlers.TokenHandler) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Signin Page")
	})

	var broadcaster handlers.Broadcaster
	if hub != nil {
		broadcaster = hub
		router.GET("/ws", func(c *gin.Context) {
			hub.ServeWS(c.Writer, c.Request)
		})
	}

	authHandler := handlers.NewAuthHandler(db, cfg, codes, notifier, broadcaster)
	userHandler := handlers.NewUserHandler(db)
	locationHandler := handlers.NewLocationHandler(db)

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "API Works", "message": "Welcome to User API"})
		})
		api.POST("/send", authHandler.Send)
		api.POST("/login", authHandler.Login)
		api.POST("/scan", authHandler.Scan)
		api.POST("/verify-secretkey", authHandler.VerifySecretKey)
		api.GET("/secretKey", authHandler.ListSecretKeys)
		api.POST("/logout", authHandler.Logout)
		api.GET("/checkSession/:sessionId", authHandler.CheckSession)

		api.GET("/generate-token", tokens.Generate)
		api.POST("/token", tokens.Validate)

		api.POST("/location", locationHandler.Create)
	}

	admin := api.Group("/user")
	admin.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		admin.GET("", userHandler.List)
		admin.GET("/:number", userHandler.View)
		admin.PATCH("/:number", userHandler.Update)
		admin.PUT("/:number", userHandler.Update)
		admin.DELETE("/:number", userHandler.Delete)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
