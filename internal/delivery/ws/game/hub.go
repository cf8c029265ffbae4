package ws_game

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/SriHarshaMande/Planning-poker/internal/model"
)

const EventGameUpdated = "GAME_UPDATE"

// Event carries the full GameState after every successful mutation. Clients
// are free to ignore the channel entirely and poll instead.
type Event struct {
	Type    string          `json:"type"`
	RoomID  model.RoomID    `json:"roomId"`
	Payload model.GameState `json:"payload"`
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	RoomID model.RoomID
}

type Hub struct {
	mu sync.RWMutex

	// Set of clients per room.
	rooms map[model.RoomID]map[*Client]bool

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[model.RoomID]map[*Client]bool),
		logger: logger,
	}
}

func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.RoomID]; !ok {
		h.rooms[client.RoomID] = make(map[*Client]bool)
	}
	h.rooms[client.RoomID][client] = true

	h.logger.Info("client registered", "room_id", client.RoomID)
}

func (h *Hub) RemoveClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.RoomID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		// Already dropped by a broadcast, Send is closed.
		return
	}

	delete(room, client)
	// Closing Send terminates the client's writer pump.
	close(client.Send)
	if len(room) == 0 {
		delete(h.rooms, client.RoomID)
	}

	h.logger.Info("client unregistered", "room_id", client.RoomID)
}

// NotifyGameUpdated satisfies the game usecase's notifier. Slow subscribers
// are dropped rather than allowed to stall a mutation.
func (h *Hub) NotifyGameUpdated(roomID model.RoomID, state model.GameState) {
	h.broadcastToRoom(roomID, Event{
		Type:    EventGameUpdated,
		RoomID:  roomID,
		Payload: state,
	})
}

func (h *Hub) broadcastToRoom(roomID model.RoomID, event Event) {
	// Full lock: dropping a slow client mutates the room set.
	h.mu.Lock()
	defer h.mu.Unlock()

	payload, _ := json.Marshal(event)

	if clients, ok := h.rooms[roomID]; ok {
		for client := range clients {
			select {
			case client.Send <- payload:
			default:
				close(client.Send)
				delete(h.rooms[roomID], client)
			}
		}
	}
}

func (h *Hub) StartClientReading(client *Client) {
	defer func() {
		h.RemoveClient(client)
		client.Conn.Close()
	}()

	for {
		_, _, err := client.Conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

func (h *Hub) StartClientWriting(client *Client) {
	defer client.Conn.Close()

	for message := range client.Send {
		err := client.Conn.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			break
		}
	}
}
