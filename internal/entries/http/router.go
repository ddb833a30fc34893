package http

import "github.com/gin-gonic/gin"

// Register registers the entry collection routes. Responses carry
// Cache-Control: no-store so the browser form never reuses a stale
// listing.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.Use(noStore())

	rg.GET("/entries", h.List)
	rg.POST("/entries", h.Create)
	rg.PUT("/entries", h.Update)
	rg.DELETE("/entries", h.Delete)
	rg.GET("/entries/export", h.Export)
}

func noStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
