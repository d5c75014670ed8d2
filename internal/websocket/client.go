package websocket

import (
	"context"
	"encoding/json"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
	writeTimeout   = 10 * time.Second
)

// ActionConnected is sent to a client right after it joins. A client that
// reconnects after missing notifications should refetch its views.
const ActionConnected = "connected"

// Client is one browser tab listening for change notifications. Clients only
// receive; anything they send is discarded.
type Client struct {
	hub  *Hub
	conn *ws.Conn
	send chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

// Run registers the client and writes notifications until the peer goes
// away or ctx ends.
func (c *Client) Run(ctx context.Context) {
	// Queued before registering so it always precedes broadcasts.
	if hello, err := json.Marshal(NewMessage(EntityDocument, ActionConnected, "", nil)); err == nil {
		c.send <- hello
	}

	c.hub.Register(c)
	defer c.hub.Unregister(c)

	// CloseRead drains incoming frames and cancels ctx once the peer closes.
	ctx = c.conn.CloseRead(ctx)

	c.writeLoop(ctx)
}

func (c *Client) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.Close(ws.StatusGoingAway, "server shutting down")
				return
			}
			if err := c.write(ctx, msg); err != nil {
				c.hub.logger.Debug("websocket write", "error", err)
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return c.conn.Write(ctx, ws.MessageText, msg)
}
