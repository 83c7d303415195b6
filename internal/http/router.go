package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates the bridge router. The bridge is a local JSON API the
// presentation layer drives; it holds no sessions of its own.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(SecurityHeadersMiddleware())

	health := NewHealthController(cfg.Checks, cfg.Version)
	stateController := NewStateController(cfg.Actions, cfg.Notifications)
	languages := NewLanguagesController(cfg.Actions, cfg.Actions)
	lexemes := NewLexemesController(cfg.Actions, cfg.Trigger, cfg.Actions, cfg.SearchMatch)
	authController := NewAuthController(cfg.Actions)
	contributions := NewContributionsController(cfg.Actions, cfg.Actions, cfg.Outbox)

	router.GET("/health", health.Status)
	router.GET("/oauth-callback", authController.Callback)

	api := router.Group("/api")
	{
		api.GET("/state", stateController.Snapshot)
		api.GET("/notifications", stateController.Notifications)

		api.GET("/languages", languages.List)
		api.PUT("/languages/:slot", languages.Select)

		api.POST("/search", lexemes.Search)
		api.POST("/suggest", lexemes.Suggest)
		api.POST("/lexemes/select", lexemes.Select)
		api.GET("/lexemes/details", lexemes.Details)

		api.POST("/translations", contributions.AddTranslations)
		api.POST("/audio", contributions.AddAudio)
		api.GET("/missing-audio", contributions.MissingAudio)
		api.GET("/outbox/:id", contributions.OutboxStatus)

		api.GET("/auth/login", authController.Login)
		api.POST("/auth/logout", authController.Logout)
	}

	return router
}
