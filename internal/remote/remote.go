// Package remote exposes the control panel over a WebSocket so sliders can live in a browser
// or another process. Updates are queued for the main loop; nothing here touches GL.
package remote

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/wavy-plane/internal/wave"
)

const (
	// queueSize bounds the updates waiting for the main loop.
	queueSize = 64
	// outboxSize bounds the state messages waiting for one client's writer.
	outboxSize = 16
	// writeWait is the deadline for a single write to a client.
	writeWait = 2 * time.Second
)

// Update is one client message. Absent fields leave the control unchanged.
type Update struct {
	Frequency        *float32 `json:"frequency,omitempty"`
	Amplitude        *float32 `json:"amplitude,omitempty"`
	PositionMultiple *float32 `json:"position_multiple,omitempty"`
	Brightness       *float32 `json:"brightness,omitempty"`
	RotationSpeed    *float32 `json:"rotation_speed,omitempty"`
	CameraX          *float32 `json:"camera_x,omitempty"`
	CameraY          *float32 `json:"camera_y,omitempty"`
	CameraZ          *float32 `json:"camera_z,omitempty"`
	AutoRotate       *bool    `json:"auto_rotate,omitempty"`

	// Preset selects a configured preset by zero-based slot.
	Preset *int `json:"preset,omitempty"`
	// Reload rebuilds the pipeline with the current grid.
	Reload bool `json:"reload,omitempty"`
}

// Apply writes the control fields of u into c.
func (u Update) Apply(c *wave.Controls) {
	set := func(dst *float32, v *float32) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Frequency, u.Frequency)
	set(&c.Amplitude, u.Amplitude)
	set(&c.PositionMultiple, u.PositionMultiple)
	set(&c.Brightness, u.Brightness)
	set(&c.RotationSpeed, u.RotationSpeed)
	set(&c.CameraX, u.CameraX)
	set(&c.CameraY, u.CameraY)
	set(&c.CameraZ, u.CameraZ)
	if u.AutoRotate != nil {
		c.AutoRotate = *u.AutoRotate
	}
}

// State is the message sent to clients on connect and after every change.
type State struct {
	Type     string        `json:"type"`
	Controls wave.Controls `json:"controls"`
}

// client owns one connection. Only writeLoop writes to conn.
type client struct {
	conn *websocket.Conn
	out  chan State
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		out:  make(chan State, outboxSize),
		done: make(chan struct{}),
	}
}

// enqueue queues msg without blocking. It reports false when the outbox is full.
func (c *client) enqueue(msg State) bool {
	select {
	case c.out <- msg:
		return true
	default:
		return false
	}
}

func (c *client) writeLoop() error {
	for {
		select {
		case msg := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return err
			}
		case <-c.done:
			return nil
		}
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Server accepts control clients on /ws.
type Server struct {
	log      *zap.Logger
	upgrader websocket.Upgrader
	updates  chan Update

	mu      sync.RWMutex
	clients map[*websocket.Conn]*client
	state   wave.Controls

	srv      *http.Server
	listener net.Listener
}

// New creates a server. Call Start to listen, or mount Handler yourself.
func New(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		updates: make(chan Update, queueSize),
		clients: make(map[*websocket.Conn]*client),
	}
	return s
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on addr and serves in the background.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{Handler: s.Handler()}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("remote server stopped", zap.Error(err))
		}
	}()
	s.log.Info("remote control listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the listening address, empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Updates delivers client messages to the main loop.
func (s *Server) Updates() <-chan Update {
	return s.updates
}

// Broadcast records the current controls and queues them for every client. It never blocks;
// a client whose outbox is full is disconnected.
func (s *Server) Broadcast(c wave.Controls) {
	msg := State{Type: "state", Controls: c}

	s.mu.Lock()
	s.state = c
	var slow []*websocket.Conn
	for conn, cl := range s.clients {
		if !cl.enqueue(msg) {
			slow = append(slow, conn)
		}
	}
	s.mu.Unlock()

	for _, conn := range slow {
		s.log.Warn("remote client too slow, disconnecting")
		s.drop(conn)
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown closes all clients and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[*websocket.Conn]*client)
	s.mu.Unlock()

	for _, cl := range clients {
		cl.close()
	}

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer s.drop(conn)

	cl := newClient(conn)
	s.mu.Lock()
	s.clients[conn] = cl
	cl.enqueue(State{Type: "state", Controls: s.state})
	s.mu.Unlock()

	go func() {
		if err := cl.writeLoop(); err != nil {
			s.log.Debug("remote write failed", zap.Error(err))
			s.drop(conn)
		}
	}()

	s.log.Info("remote client connected", zap.String("remote", r.RemoteAddr))
	for {
		var u Update
		if err := conn.ReadJSON(&u); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("remote read failed", zap.Error(err))
			}
			return
		}
		select {
		case s.updates <- u:
		default:
			s.log.Warn("remote update dropped, main loop is behind")
		}
	}
}

// drop unregisters a client and closes its connection. Unknown connections are ignored.
func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	cl, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if ok {
		cl.close()
	}
}
