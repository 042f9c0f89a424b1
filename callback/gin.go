package callback

import "github.com/gin-gonic/gin"

// Gin mounts h on a gin route.
func Gin(h *Handler) gin.HandlerFunc {
	return gin.WrapH(h)
}
