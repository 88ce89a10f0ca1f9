package handlers

import (
	"anonboard/internal/logger"
	"anonboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Versioned API endpoints
	h.registerAPIRoutes(router)

	// Live feed of the latest posts (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerPostRoutes(api)
	}
}

func (h *Handler) registerPostRoutes(api *gin.RouterGroup) {
	posts := api.Group("/posts")
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/:id", h.getPost)
		posts.POST("/:id/password-check", h.checkPostPassword)
		posts.PATCH("/:id", h.updatePost)
		posts.DELETE("/:id", h.deletePost)
	}
}
