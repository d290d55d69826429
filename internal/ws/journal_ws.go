// Package ws рассылает изменения журнала подписчикам мероприятия через WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EventResultUpdated = "result_updated"
	EventResultDeleted = "result_deleted"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Update это сообщение, которое получают клиенты журнала.
type Update struct {
	EventType string `json:"event_type"`
	EventID   uint   `json:"event_id"`
	Data      any    `json:"data"`
}

// BroadcastMessage адресует сообщение подписчикам одного мероприятия.
type BroadcastMessage struct {
	EventID string
	Message []byte
}

// Hub хранит подключения, сгруппированные по мероприятию.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan BroadcastMessage
	// done закрывается, когда Run завершился, после этого отправки в каналы хаба не ждут.
	done       chan struct{}
	mu         sync.RWMutex
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan BroadcastMessage, sendBuffer),
		done:       make(chan struct{}),
		logger:     logger.With().Str("component", "journal_ws").Logger(),
	}
}

// Run обрабатывает каналы хаба до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.EventID] == nil {
				h.clients[client.EventID] = make(map[*Client]bool)
			}
			h.clients[client.EventID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[message.EventID] {
				select {
				case client.Send <- message.Message:
				default:
					// клиент не успевает читать
					h.remove(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove вызывается под h.mu.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.EventID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.EventID)
	}
}

// Subscribers возвращает число подключений к журналу мероприятия.
func (h *Hub) Subscribers(eventID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[strconv.FormatUint(uint64(eventID), 10)])
}

// BroadcastMessage не блокирует вызывающего: при переполненной очереди или
// остановленном хабе сообщение отбрасывается.
func (h *Hub) BroadcastMessage(msg BroadcastMessage) {
	select {
	case <-h.done:
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("event_id", msg.EventID).Msg("очередь рассылки переполнена, обновление пропущено")
	}
}

// Publish сериализует изменение и рассылает его подписчикам мероприятия.
func (h *Hub) Publish(eventID uint, eventType string, data any) {
	payload, err := json.Marshal(Update{EventType: eventType, EventID: eventID, Data: data})
	if err != nil {
		h.logger.Error().Err(err).Uint("event_id", eventID).Msg("не удалось сериализовать обновление журнала")
		return
	}
	h.BroadcastMessage(BroadcastMessage{
		EventID: strconv.FormatUint(uint64(eventID), 10),
		Message: payload,
	})
}

// Client описывает одно подключение к журналу мероприятия.
type Client struct {
	Hub     *Hub
	Conn    *websocket.Conn
	Send    chan []byte
	EventID string
}

// readPump только отслеживает разрыв соединения, входящие сообщения игнорируются.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.logger.Debug().Err(err).Str("event_id", c.EventID).Msg("соединение закрыто")
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler поднимает WebSocket для журнала мероприятия.
// @Summary Обновления журнала в реальном времени
// @Description Присылает сообщения result_updated и result_deleted по мероприятию. Токен можно передать в query-параметре token
// @Tags journal
// @Param event_id path int true "ID мероприятия"
// @Param token query string false "Access токен"
// @Success 101 {object} Update
// @Router /journal/ws/{event_id} [get]
func (h *Hub) Handler(c *gin.Context) {
	eventID := c.Param("event_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("event_id", eventID).Msg("ошибка обновления до WebSocket")
		return
	}
	client := &Client{
		Hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		EventID: eventID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
