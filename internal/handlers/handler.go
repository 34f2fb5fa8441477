package handlers

import (
	"survey_registry/internal/logger"
	"survey_registry/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	mediaDir string // filesystem dir served under /media
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, mediaDir string) *Handler {
	return &Handler{services: services, log: log, mediaDir: mediaDir}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Registration / login
	h.registerAuthRoutes(router)

	// Versioned API endpoints (credential-checked)
	h.registerAPIRoutes(router)

	// Live records feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsRecords)

	// Stored audio notes
	if h.mediaDir != "" {
		router.Static("/media", h.mediaDir)
	}

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.basicAuthMiddleware)
	{
		h.registerFarmerRoutes(api)
		h.registerLocationRoutes(api)
		h.registerExportRoutes(api)
	}
}

func (h *Handler) registerFarmerRoutes(api *gin.RouterGroup) {
	farmers := api.Group("/farmers")
	{
		farmers.POST("", h.createFarmer)
		farmers.GET("", h.listFarmers)
		farmers.GET("/:id", h.getFarmer)
		farmers.PUT("/:id", h.updateFarmer)
		farmers.DELETE("/:id", h.deleteFarmer)
		farmers.POST("/:id/audio", h.uploadFarmerAudio)
	}
}

func (h *Handler) registerLocationRoutes(api *gin.RouterGroup) {
	locations := api.Group("/locations")
	{
		locations.POST("/woredas", h.addWoreda)
		locations.GET("/woredas", h.listWoredas)
		locations.PUT("/woredas/:id", h.renameWoreda)
		locations.DELETE("/woredas/:id", h.deleteWoreda)
		locations.POST("/woredas/:id/kebeles", h.addKebele)
		locations.DELETE("/kebeles/:id", h.deleteKebele)
	}
}

func (h *Handler) registerExportRoutes(api *gin.RouterGroup) {
	export := api.Group("/export")
	{
		export.GET("/farmers.csv", h.exportFarmersCSV)
	}
}
