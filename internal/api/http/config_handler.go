package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kitchen-rush/internal/catalog"
	"kitchen-rush/internal/config"
)

type ConfigHandler struct {
	cat *catalog.Catalog
	cfg config.Config
}

func NewConfigHandler(cat *catalog.Catalog, cfg config.Config) *ConfigHandler {
	return &ConfigHandler{
		cat: cat,
		cfg: cfg,
	}
}

// GetCatalogHandler returns the recipes, abilities and levels in play
// @Summary Get catalog
// @Description Returns every recipe, ability and level the server was started with
// @Tags Config
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/catalog [get]
func (h *ConfigHandler) GetCatalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, CatalogResponse{
		Recipes:   h.cat.Recipes(),
		Abilities: h.cat.Abilities(),
		Levels:    h.cat.Levels(),
	})
}

// GetSettingsHandler returns the timing and capacity settings
// @Summary Get game settings
// @Tags Config
// @Produce json
// @Success 200 {object} SettingsResponse
// @Router /api/settings [get]
func (h *ConfigHandler) GetSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, SettingsResponse{
		MaxPlayers:          h.cfg.MaxPlayers,
		TickSeconds:         h.cfg.TickInterval.Seconds(),
		LevelPauseSeconds:   h.cfg.LevelPause.Seconds(),
		AbilityDelaySeconds: h.cfg.AbilityDelay.Seconds(),
	})
}
