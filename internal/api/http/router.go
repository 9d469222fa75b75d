package http

import (
	"context"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"kitchen-rush/internal/api/ws"
	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/config"
	"kitchen-rush/internal/logging"
)

func NewRouter(ctx context.Context, rooms RoomLister, hub *ws.Hub, results ResultReader, cat *catalog.Catalog, cfg config.Config) *gin.Engine {
	logger := logging.FromContext(ctx).Named("http")

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.AllowedOrigins))
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), logger))
		c.Next()
		logger.Debugw("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	})

	r.GET("/health", HealthHandler(rooms, hub))

	// WebSocket for every game interaction
	r.GET("/ws", hub.HandleWS)

	api := r.Group("/api")

	// --- ROOM ENDPOINTS ---
	api.GET("/rooms", ListRoomsHandler(rooms))
	api.GET("/rooms/:code", GetRoomHandler(rooms))

	// --- RESULT ENDPOINTS ---
	if results != nil {
		api.GET("/results", ListResultsHandler(results))
		api.GET("/results/:id", GetResultHandler(results))
	}

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(cat, cfg)
	api.GET("/catalog", ch.GetCatalogHandler)
	api.GET("/settings", ch.GetSettingsHandler)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Origin"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = origins
		conf.AllowCredentials = true
	}
	return cors.New(conf)
}
