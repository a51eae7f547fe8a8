package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. The group is
// expected to sit behind the bearer guard.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/details", h.details)
	rg.GET("/details/:id", h.details)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
	rg.GET("/:id/location", h.location)
}
