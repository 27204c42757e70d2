package player

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/appcurve/olivia-party-sub000/internal/pkg/response"
)

// Handler upgrades an authenticated request to the player's event
// channel. Auth happens before the upgrade via the regular access-token
// middleware; origin checking is CORS middleware's job.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/player/ws", h.Connect)
}

func (h *Handler) Connect(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Unauthorized(c)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}

	h.hub.Register(userID, conn)
	go h.readLoop(userID, conn)
}

// readLoop drains the connection until it closes. The player never sends
// anything meaningful upstream; reading is what surfaces disconnects.
func (h *Handler) readLoop(userID int64, conn *websocket.Conn) {
	defer h.hub.Unregister(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("player ws closed unexpectedly user_id=%d err=%v", userID, err)
			}
			return
		}
	}
}
