// Package server exposes the dashboard state to browser renderers: a small
// JSON API plus a websocket feed that pushes every accepted snapshot.
package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/railscope/stationboard/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// snapshotMessage is the wire envelope pushed to websocket clients.
type snapshotMessage struct {
	Type      string         `json:"type"`
	Data      model.Snapshot `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// Hub fans dashboard snapshots out to connected websocket clients.
type Hub struct {
	clients    map[string]*client
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
}

type client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

// NewHub creates an empty hub; call Run before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*client),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 16),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
			log.Printf("stationboard: client %s connected (%d total)", c.id, len(h.clients))
		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.send)
				log.Printf("stationboard: client %s disconnected (%d total)", c.id, len(h.clients))
			}
		case msg := <-h.broadcast:
			for id, c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Client too slow; drop it rather than stall the hub.
					delete(h.clients, id)
					close(c.send)
				}
			}
		case <-ctx.Done():
			for id, c := range h.clients {
				delete(h.clients, id)
				close(c.send)
			}
			return
		}
	}
}

// BroadcastSnapshot pushes one snapshot to every connected client.
func (h *Hub) BroadcastSnapshot(snap model.Snapshot) {
	msg, err := json.Marshal(snapshotMessage{
		Type:      "snapshot",
		Data:      snap,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("stationboard: snapshot marshal error: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

// newClient wraps an upgraded connection and starts its pumps.
func (h *Hub) newClient(conn *websocket.Conn, initial []byte) {
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  h,
		send: make(chan []byte, 16),
	}
	c.send <- initial
	h.register <- c
	go c.writePump()
	go c.readPump()
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("stationboard: client %s read error: %v", c.id, err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
