package routes

import (
	"net/http"
	"path/filepath"

	"guestbook_backend/internal/config"
	"guestbook_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers every HTTP route of the application.
func RegisterRoutes(
	ginRouter *gin.Engine,
	cfg *config.Config,
	appHandlers *handlers.AppHandlers,
) {
	appHandlers.MessageHandler.RegisterRoutes(ginRouter)
	appHandlers.GalleryHandler.RegisterRoutes(ginRouter)

	// Uploaded files are addressed solely by generated filename under a
	// single flat directory.
	ginRouter.Static("/uploads", cfg.Storage.BasePath)

	// Static pages
	ginRouter.Static("/static", cfg.Static.Dir)
	ginRouter.GET("/", servePage(filepath.Join(cfg.Static.Dir, "index.html")))
	ginRouter.GET("/admin", servePage(filepath.Join(cfg.Static.Dir, "admin.html")))

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func servePage(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(path)
	}
}
