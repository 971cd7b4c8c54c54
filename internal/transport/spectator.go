package transport

import (
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lab1702/rtype-server/internal/instance"
)

// isValidOrigin allows same-host and localhost origins, rejecting other
// cross-origin browser clients while still accepting non-browser tools that
// send no Origin header at all.
func isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		log.Printf("spectator: invalid origin URL: %s", origin)
		return false
	}
	if r.Host == originURL.Host {
		return true
	}
	if strings.HasPrefix(originURL.Host, "localhost:") ||
		strings.HasPrefix(originURL.Host, "127.0.0.1:") ||
		originURL.Host == "localhost" || originURL.Host == "127.0.0.1" {
		return true
	}
	log.Printf("spectator: rejected connection from origin %s", origin)
	return false
}

var upgrader = websocket.Upgrader{
	CheckOrigin:       isValidOrigin,
	EnableCompression: true,
}

// spectatorClient is one connected read-only viewer of a single room.
type spectatorClient struct {
	id       int
	roomCode string
	conn     *websocket.Conn
	send     chan spectatorFrame
	server   *SpectatorServer
}

// spectatorFrame is the JSON payload pushed to every spectator of a room,
// distinct from the UDP gameplay wire format: spectators want a full,
// human-readable snapshot, not a bandwidth-optimized binary diff.
type spectatorFrame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// SpectatorServer runs the read-only WebSocket feed: one registry of
// clients grouped by room code, with a periodic snapshot broadcast per
// room handled by its own register/unregister/broadcast loop.
type SpectatorServer struct {
	mu         sync.RWMutex
	clients    map[int]*spectatorClient
	register   chan *spectatorClient
	unregister chan *spectatorClient

	manager  *instance.Manager
	tickRate int
	nextID   int

	rateLimiter *ConnectionRateLimiter
}

func NewSpectatorServer(manager *instance.Manager, tickRate int) *SpectatorServer {
	return &SpectatorServer{
		clients:     make(map[int]*spectatorClient),
		register:    make(chan *spectatorClient),
		unregister:  make(chan *spectatorClient),
		manager:     manager,
		tickRate:    tickRate,
		rateLimiter: NewConnectionRateLimiter(4),
	}
}

// Run processes client (un)registration; the periodic broadcast runs on its
// own goroutine so a stalled registration never delays a tick's snapshot.
func (s *SpectatorServer) Run() {
	go s.broadcastLoop()
	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.id] = client
			s.mu.Unlock()
			log.Printf("spectator %d watching room %s", client.id, client.roomCode)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.id]; ok {
				delete(s.clients, client.id)
				close(client.send)
			}
			s.mu.Unlock()
		}
	}
}

func (s *SpectatorServer) broadcastLoop() {
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()
	for range ticker.C {
		s.broadcastSnapshots()
	}
}

func (s *SpectatorServer) broadcastSnapshots() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshotCache := make(map[string]any)
	for _, client := range s.clients {
		frame, ok := snapshotCache[client.roomCode]
		if !ok {
			room, exists := s.manager.GetInstance(client.roomCode)
			if !exists {
				continue
			}
			frame = room.World.GetSnapshot()
			snapshotCache[client.roomCode] = frame
		}
		select {
		case client.send <- spectatorFrame{Type: "snapshot", Data: frame}:
		default:
			log.Printf("spectator %d send buffer full, dropping frame", client.id)
		}
	}
}

// ServeHTTP upgrades the request and begins streaming snapshots of the room
// named by the "room" query parameter (defaultRoomCode if absent).
func (s *SpectatorServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	host, _, _ := net.SplitHostPort(r.RemoteAddr)
	if !s.rateLimiter.Allow(host) {
		http.Error(w, "too many spectator connections from this address", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.rateLimiter.Release(host)
		log.Printf("spectator upgrade error: %v", err)
		return
	}

	roomCode := r.URL.Query().Get("room")
	if roomCode == "" {
		roomCode = defaultRoomCode
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	client := &spectatorClient{
		id: id, roomCode: roomCode, conn: conn,
		send: make(chan spectatorFrame, 16), server: s,
	}
	s.register <- client

	go client.writePump()
	go client.readPump(host)
}

func (c *spectatorClient) readPump(host string) {
	defer func() {
		c.server.unregister <- c
		c.server.rateLimiter.Release(host)
		c.conn.Close()
	}()
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	for {
		// Spectators are read-only: any inbound message is just a liveness
		// signal, discarded after refreshing the read deadline above.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *spectatorClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
