package ws_game

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

type Controller struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewController(hub *Hub) *Controller {
	return &Controller{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/games/:room_id/ws", c.subscribe)
}

func (c *Controller) subscribe(ctx *gin.Context) {
	roomID := model.RoomID(ctx.Param("room_id"))

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("failed to upgrade connection", "error", err, "room_id", roomID)
		return
	}

	client := &Client{
		Hub:    c.hub,
		Conn:   conn,
		Send:   make(chan []byte, 16),
		RoomID: roomID,
	}

	c.hub.RegisterClient(client)
	go c.hub.StartClientWriting(client)
	c.hub.StartClientReading(client)
}
