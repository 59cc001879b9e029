package fanout

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"jdm-auctions/utils"

	"github.com/gorilla/websocket"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 1024

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 64

	// broadcastBufferSize bounds the hub's pending-event queue. When it is
	// full, events are dropped rather than blocking the bidding path.
	broadcastBufferSize = 256
)

// Event kinds pushed to subscribers.
const (
	EventBidPlaced = "bid:placed"
	EventExtended  = "auction:extended"
)

// upgrader configures the WebSocket upgrade parameters.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins. In production, restrict this to known origins.
		return true
	},
}

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// subscribeMsg is the JSON message a client sends to manage its listing
// subscription. A client watches at most one listing; subscribing again
// replaces the previous association.
type subscribeMsg struct {
	Action    string `json:"action"` // "subscribe" or "unsubscribe"
	ListingID string `json:"listing_id"`
}

// Event is the envelope pushed to subscribers of a listing.
type Event struct {
	Type      string `json:"type"`
	ListingID string `json:"listing_id"`
	Price     int64  `json:"price,omitempty"`
	EndAt     string `json:"end_at,omitempty"`
}

// envelope carries a marshaled event plus its target listing so the hub can
// route it only to clients watching that listing. An empty listing id means
// deliver to every connected client.
type envelope struct {
	listingID string
	data      []byte
}

// Hub maintains the registry of connected viewers and routes ledger state
// changes to the clients watching each listing. It keeps a forward map
// (client -> listing) and a reverse index (listing -> clients) so a targeted
// broadcast never scans unrelated connections.
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]string
	byListing map[string]map[*Client]struct{}

	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new fan-out hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]string),
		byListing:  make(map[string]map[*Client]struct{}),
		broadcast:  make(chan envelope, broadcastBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main event loop. It should be called in a goroutine.
// It handles client registration, unregistration, and event delivery. The
// loop exits when the provided context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
			}
			h.clients = make(map[*Client]string)
			h.byListing = make(map[string]map[*Client]struct{})
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = ""
			h.mu.Unlock()
			utils.Info("fanout: client connected", map[string]any{
				"total_clients": h.ClientCount(),
			})

		case c := <-h.unregister:
			h.remove(c)
			utils.Info("fanout: client disconnected", map[string]any{
				"total_clients": h.ClientCount(),
			})

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// PublishBidPlaced pushes a bid:placed event to subscribers of the listing.
func (h *Hub) PublishBidPlaced(listingID string, price int64) {
	h.publish(envelope{listingID: listingID, data: marshalEvent(Event{
		Type:      EventBidPlaced,
		ListingID: listingID,
		Price:     price,
	})})
}

// PublishExtended pushes an auction:extended event to subscribers of the
// listing.
func (h *Hub) PublishExtended(listingID string, endAt time.Time) {
	h.publish(envelope{listingID: listingID, data: marshalEvent(Event{
		Type:      EventExtended,
		ListingID: listingID,
		EndAt:     endAt.UTC().Format(time.RFC3339),
	})})
}

// BroadcastAll delivers an event to every connected client regardless of
// subscription.
func (h *Hub) BroadcastAll(evt Event) {
	h.publish(envelope{data: marshalEvent(evt)})
}

// publish enqueues an event without ever blocking the caller. If the hub's
// queue is full the event is dropped; live viewers re-sync on their next
// event or page load.
func (h *Hub) publish(msg envelope) {
	if msg.data == nil {
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		utils.Warn("fanout: dropping event, broadcast queue full", map[string]any{
			"listing_id": msg.listingID,
		})
	}
}

func marshalEvent(evt Event) []byte {
	data, err := json.Marshal(evt)
	if err != nil {
		utils.Error("fanout: failed to marshal event", map[string]any{
			"type":  evt.Type,
			"error": err.Error(),
		})
		return nil
	}
	return data
}

// deliver fans an event out to its target clients. Sends are non-blocking; a
// slow client's event is dropped rather than holding up the rest.
func (h *Hub) deliver(msg envelope) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if msg.listingID == "" {
		for c := range h.clients {
			c.trySend(msg.data)
		}
		return
	}

	for c := range h.byListing[msg.listingID] {
		c.trySend(msg.data)
	}
}

// Subscribe associates a client with a listing. Idempotent: subscribing to a
// new listing replaces the previous association.
func (h *Hub) Subscribe(c *Client, listingID string) {
	if listingID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return // already closed
	}

	h.dropAssociation(c)
	h.clients[c] = listingID
	set, ok := h.byListing[listingID]
	if !ok {
		set = make(map[*Client]struct{})
		h.byListing[listingID] = set
	}
	set[c] = struct{}{}
}

// Unsubscribe clears a client's listing association. No-op if the client is
// not subscribed.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropAssociation(c)
}

// dropAssociation removes c from the reverse index. Caller holds h.mu.
func (h *Hub) dropAssociation(c *Client) {
	listingID, ok := h.clients[c]
	if !ok || listingID == "" {
		return
	}
	h.clients[c] = ""
	if set, ok := h.byListing[listingID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byListing, listingID)
		}
	}
}

// remove unregisters a closed client entirely.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	h.dropAssociation(c)
	delete(h.clients, c)
	close(c.send)
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub.
// GET /ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Error("fanout: upgrade failed", map[string]any{"error": err.Error()})
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	h.register <- c

	// Start read and write pumps in separate goroutines.
	go c.writePump()
	go c.readPump()
}

// trySend queues data for the client without blocking the hub.
func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		utils.Warn("fanout: dropping event for slow client", nil)
	}
}

// readPump reads messages from the WebSocket connection. It handles
// subscription management requests (JSON text frames) from the client.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				utils.Warn("fanout: unexpected close error", map[string]any{
					"error": err.Error(),
				})
			}
			return
		}

		var sub subscribeMsg
		if err := json.Unmarshal(message, &sub); err != nil {
			continue
		}
		switch sub.Action {
		case "subscribe":
			c.hub.Subscribe(c, sub.ListingID)
		case "unsubscribe":
			c.hub.Unsubscribe(c)
		}
	}
}

// writePump pumps events from the hub to the WebSocket connection and sends
// periodic ping frames for keepalive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
