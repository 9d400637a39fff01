package boundary

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// WSServer accepts the native runtime's websocket session and speaks
// the Message framing over it. One session is active at a time; a
// second connection attempt is rejected until the first drops.
type WSServer struct {
	sink     EventSink
	log      *logger.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[string]ReplyFunc

	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewWSServer creates a server delivering broadcast frames to sink.
func NewWSServer(sink EventSink, log *logger.Logger) *WSServer {
	if log == nil {
		log = logger.NewDefault("boundary")
	}
	s := &WSServer{
		sink: sink,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		pending: make(map[string]ReplyFunc),
		tasks:   make(chan func(), 64),
		done:    make(chan struct{}),
	}
	go s.dispatchLoop()
	return s
}

// dispatchLoop is the single goroutine all inbound frames funnel
// through. It serializes sink calls and reply continuations.
func (s *WSServer) dispatchLoop() {
	for {
		select {
		case fn := <-s.tasks:
			fn()
		case <-s.done:
			return
		}
	}
}

func (s *WSServer) dispatch(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// ServeHTTP upgrades the request into the runtime session.
func (s *WSServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	busy := s.conn != nil
	s.mu.Unlock()
	if busy {
		http.Error(w, "runtime session already attached", http.StatusConflict)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	if s.conn != nil {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()

	s.log.Info("runtime session attached", "remote", conn.RemoteAddr().String())
	s.readLoop(conn)
}

func (s *WSServer) readLoop(conn *websocket.Conn) {
	defer s.detach(conn)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("runtime session read error", "error", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.log.Warn("discarding unparsable boundary frame", "error", err)
			continue
		}

		if msg.ID != "" {
			s.deliverReply(msg)
			continue
		}
		kind, body := msg.Kind, []byte(msg.Body)
		s.dispatch(func() {
			if err := s.sink.HandleMessage(kind, body); err != nil {
				s.log.Debug("boundary event dropped", "kind", kind, "error", err)
			}
		})
	}
}

func (s *WSServer) deliverReply(msg Message) {
	s.mu.Lock()
	reply, ok := s.pending[msg.ID]
	delete(s.pending, msg.ID)
	s.mu.Unlock()

	if !ok {
		s.log.Debug("reply with no pending command", "id", msg.ID, "kind", msg.Kind)
		return
	}
	body := []byte(msg.Body)
	s.dispatch(func() { reply(body, nil) })
}

// detach clears the session and fails every command still waiting on
// it, since their replies can no longer arrive.
func (s *WSServer) detach(conn *websocket.Conn) {
	conn.Close()

	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		return
	}
	s.conn = nil
	orphans := s.pending
	s.pending = make(map[string]ReplyFunc)
	s.mu.Unlock()

	s.log.Info("runtime session detached", "pending", len(orphans))
	for _, reply := range orphans {
		r := reply
		s.dispatch(func() { r(nil, ErrClosed) })
	}
}

// Call implements Caller.
func (s *WSServer) Call(kind string, body any, reply ReplyFunc) error {
	raw, err := encodeBody(body)
	if err != nil {
		return err
	}
	id := uuid.NewString()

	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.pending[id] = reply
	err = conn.WriteJSON(Message{Kind: kind, ID: id, Body: raw})
	if err != nil {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	return err
}

// Notify implements Caller.
func (s *WSServer) Notify(kind string, body any) error {
	raw, err := encodeBody(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ErrNotConnected
	}
	return s.conn.WriteJSON(Message{Kind: kind, Body: raw})
}

// Connected reports whether a runtime session is attached.
func (s *WSServer) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// Close shuts the transport down and fails pending commands.
func (s *WSServer) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		orphans := s.pending
		s.pending = make(map[string]ReplyFunc)
		s.mu.Unlock()

		for _, reply := range orphans {
			reply(nil, ErrClosed)
		}
		if conn != nil {
			conn.Close()
		}
		close(s.done)
	})
	return nil
}
