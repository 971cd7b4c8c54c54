// Package transport hosts the network edges: the UDP gameplay protocol and
// the companion WebSocket spectator feed, both wired to an
// instance.Manager.
package transport

import (
	"log"
	"net"
	"time"

	"github.com/lab1702/rtype-server/internal/engine"
	"github.com/lab1702/rtype-server/internal/instance"
	"github.com/lab1702/rtype-server/internal/protocol"
)

// DebugPackets gates verbose per-datagram logging, in the engine package's
// DebugWeapons/DebugBossPhases spirit.
var DebugPackets = false

func logPacket(format string, args ...any) {
	if DebugPackets {
		log.Printf("[PACKET DEBUG] "+format, args...)
	}
}

// defaultRoomCode is used for every Connect until a matchmaking/room-select
// side channel exists; the wire protocol's Connect payload is just a player
// name and carries no room code, so every UDP client lands in one shared
// room. The instance manager still mediates it, keeping multi-room support
// one new Connect field away.
const defaultRoomCode = "default"

// playerSession tracks which room an endpoint's datagrams belong to, since
// the UDP listener itself is room-agnostic.
type playerSession struct {
	roomCode string
	playerID int
}

// Server is the UDP gameplay listener: one socket demultiplexing inbound
// datagrams by source endpoint into per-room serializer goroutines, each
// driving its room's GameWorld.Tick on its own ticker and broadcasting
// state back out.
type Server struct {
	conn     *net.UDPConn
	manager  *instance.Manager
	tickRate int

	rateLimiter *EndpointRateLimiter
	connLimiter *ConnectionRateLimiter

	sessions map[string]*playerSession // keyed by endpoint string
	rooms    map[string]*roomSerializer

	outSeq uint16

	stop chan struct{}
}

// NewServer binds addr and wires a fresh gameplay listener.
func NewServer(addr string, manager *instance.Manager, tickRate int) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		conn:        conn,
		manager:     manager,
		tickRate:    tickRate,
		rateLimiter: NewEndpointRateLimiter(DefaultRateLimitConfig),
		connLimiter: NewConnectionRateLimiter(8),
		sessions:    make(map[string]*playerSession),
		rooms:       make(map[string]*roomSerializer),
		stop:        make(chan struct{}),
	}, nil
}

// Run reads datagrams until Shutdown is called. Malformed or unrecognized
// packets are dropped silently; UDP has no connection to tear down over a
// decode error, so logging and moving on is the only sane response.
func (s *Server) Run() {
	buf := make([]byte, 2048)
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		s.conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			if !s.isShuttingDown() {
				log.Printf("udp read error: %v", err)
			}
			continue
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		s.handleDatagram(datagram, addr)
	}
}

func (s *Server) isShuttingDown() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// Shutdown stops Run and every room serializer, then closes the socket.
func (s *Server) Shutdown() {
	close(s.stop)
	for _, room := range s.rooms {
		room.stop()
	}
	s.rateLimiter.Stop()
	s.conn.Close()
}

func (s *Server) handleDatagram(data []byte, addr *net.UDPAddr) {
	endpoint := addr.String()
	if !s.rateLimiter.Allow(endpoint) {
		logPacket("rate limited endpoint=%s", endpoint)
		return
	}

	hdr, payload, err := protocol.DecodeFrame(data)
	if err != nil {
		logPacket("drop malformed frame from %s: %v", endpoint, err)
		return
	}

	switch hdr.BaseType() {
	case protocol.TypeConnect:
		s.handleConnect(payload, addr)
	case protocol.TypeDisconnect:
		s.handleDisconnect(endpoint)
	case protocol.TypePlayerInput:
		s.handlePlayerInput(endpoint, hdr, payload)
	case protocol.TypePing:
		s.handlePing(endpoint, hdr, payload, addr)
	default:
		logPacket("drop unknown packet type %d from %s", hdr.BaseType(), endpoint)
	}
}

func (s *Server) handleConnect(payload []byte, addr *net.UDPAddr) {
	var pkt protocol.Connect
	if err := pkt.UnmarshalBinary(payload); err != nil {
		logPacket("drop malformed Connect: %v", err)
		return
	}
	endpoint := addr.String()
	if _, ok := s.sessions[endpoint]; ok {
		return // already connected; a duplicate Connect is a no-op
	}
	if !s.connLimiter.Allow(addr.IP.String()) {
		s.sendPacket(addr, protocol.TypeReject, protocol.Reject{ReasonCode: protocol.RejectRateLimited})
		return
	}

	room := s.manager.GetOrCreateInstance(defaultRoomCode)
	rs := s.roomFor(room.Code, room)

	var playerID int
	var joined bool
	rs.post(func(world *engine.GameWorld) {
		playerID, joined = world.AddPlayer(addr)
	})
	if !joined {
		s.connLimiter.Release(addr.IP.String())
		s.sendPacket(addr, protocol.TypeReject, protocol.Reject{ReasonCode: protocol.RejectRoomFull})
		return
	}

	s.sessions[endpoint] = &playerSession{roomCode: defaultRoomCode, playerID: playerID}
	rs.addEndpoint(addr, playerID)

	s.sendPacket(addr, protocol.TypeAccept, protocol.Accept{
		PlayerID:   uint32(playerID),
		ServerTick: uint32(rs.tickCount()),
		TickRate:   float32(s.tickRate),
	})
	log.Printf("player %d connected from %s to room %s", playerID, endpoint, room.Code)
}

func (s *Server) handleDisconnect(endpoint string) {
	sess, ok := s.sessions[endpoint]
	if !ok {
		return
	}
	delete(s.sessions, endpoint)
	rs, ok := s.rooms[sess.roomCode]
	if !ok {
		return
	}
	rs.post(func(world *engine.GameWorld) {
		world.RemovePlayer(sess.playerID)
	})
	host, _, _ := net.SplitHostPort(endpoint)
	s.connLimiter.Release(host)
	rs.removeEndpoint(endpoint)
}

func (s *Server) handlePlayerInput(endpoint string, hdr protocol.Header, payload []byte) {
	sess, ok := s.sessions[endpoint]
	if !ok {
		return
	}
	var pkt protocol.PlayerInput
	if err := pkt.UnmarshalBinary(payload); err != nil {
		logPacket("drop malformed PlayerInput from %s: %v", endpoint, err)
		return
	}
	rs, ok := s.rooms[sess.roomCode]
	if !ok {
		return
	}
	rs.enqueueInput(sess.playerID, pkt.InputKeys, hdr.Sequence)
}

func (s *Server) handlePing(endpoint string, hdr protocol.Header, payload []byte, addr *net.UDPAddr) {
	var ping protocol.Ping
	if err := ping.UnmarshalBinary(payload); err != nil {
		logPacket("drop malformed Ping from %s: %v", endpoint, err)
		return
	}
	s.sendPacket(addr, protocol.TypePong, protocol.Pong{TimestampUS: ping.TimestampUS})
}

func (s *Server) sendPacket(addr *net.UDPAddr, t protocol.PacketType, body protocol.Payload) {
	s.outSeq++
	frame, err := protocol.EncodeFrame(t, s.outSeq, uint64(time.Now().UnixNano()), body)
	if err != nil {
		log.Printf("encode %v failed: %v", t, err)
		return
	}
	if _, err := s.conn.WriteToUDP(frame, addr); err != nil {
		logPacket("send to %s failed: %v", addr, err) // best-effort UDP: log, don't propagate
	}
}

// roomFor returns this server's serializer for code, starting it if new.
func (s *Server) roomFor(code string, room *instance.Room) *roomSerializer {
	if rs, ok := s.rooms[code]; ok {
		return rs
	}
	rs := newRoomSerializer(room, s.tickRate, s.sendPacket)
	s.rooms[code] = rs
	go rs.run()
	return rs
}
