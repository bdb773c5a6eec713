package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elitecars/rental-backend/internal/services"
)

// WebSocketHandler upgrades the connection and registers the client
// with the hub. Auth runs in middleware; the token may arrive as a
// query parameter since browsers cannot set WebSocket headers.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("userId").(uint)
		role := c.MustGet("userRole").(string)

		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
