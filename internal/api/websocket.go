package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/labelforge/sheet-engine/internal/label"
	"github.com/labelforge/sheet-engine/internal/layout"
	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

// WebSocket message types
const (
	EventLayout   = "layout"
	EventResponse = "response"
	EventError    = "error"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSClient represents a connected WebSocket client. Editors hold one open
// connection and push the full sheet document after every settings edit; the
// server answers with the recomputed layout.
type WSClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	server *Server
	mu     sync.Mutex
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		fmt.Printf("WebSocket upgrade failed: %v\n", err)
		return
	}

	client := &WSClient{
		conn:   conn,
		send:   make(chan WSMessage, 16),
		server: s,
	}

	go client.readPump()
	go client.writePump()
}

func (c *WSClient) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				fmt.Printf("WebSocket error: %v\n", err)
			}
			return
		}

		c.handleMessage(&msg)
	}
}

func (c *WSClient) writePump() {
	for msg := range c.send {
		c.mu.Lock()
		err := c.conn.WriteJSON(msg)
		c.mu.Unlock()

		if err != nil {
			fmt.Printf("WebSocket write error: %v\n", err)
			return
		}
	}
}

func (c *WSClient) handleMessage(msg *WSMessage) {
	switch msg.Event {
	case EventLayout:
		c.handleLayoutEvent(msg.Data)
	default:
		c.sendError(fmt.Sprintf("unknown event: %s", msg.Event))
	}
}

// handleLayoutEvent recomputes the layout for a pushed sheet document.
func (c *WSClient) handleLayoutEvent(data json.RawMessage) {
	var req struct {
		Settings *sheetformat.Settings `json:"settings"`
		Labels   []sheetformat.Label   `json:"labels"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError(fmt.Sprintf("invalid layout request: %v", err))
		return
	}

	settings := sheetformat.DefaultSettings()
	if req.Settings != nil {
		settings = *req.Settings
	}

	items, err := label.Build(req.Labels)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	result, err := layout.Compute(settings, items)
	if err != nil {
		c.sendError(err.Error())
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		c.sendError(fmt.Sprintf("failed to encode layout: %v", err))
		return
	}

	c.send <- WSMessage{Event: EventLayout, Data: payload}
}

func (c *WSClient) sendError(message string) {
	payload, _ := json.Marshal(map[string]string{"error": message})
	c.send <- WSMessage{Event: EventError, Data: payload}
}
