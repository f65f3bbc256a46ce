package transport

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ytget/player-bridge/internal/logger"
)

const (
	maxMessageSize = 64 * 1024
	pingTime       = pongTime * 9 / 10
	pongTime       = 60 * time.Second
	writeWait      = 10 * time.Second
)

var ErrClosed = errors.New("connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	WriteBufferPool: &sync.Pool{},
}

// Socket serializes the reads and the writes of a websocket connection
// with two pumps.
type Socket struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once

	// OnMessage is called by the reader for each text frame, in order.
	OnMessage func(message []byte)

	pingPong bool
	log      *logger.Logger
}

// Upgrade switches an HTTP request to a server socket which pings its peer.
func Upgrade(w http.ResponseWriter, r *http.Request, log *logger.Logger) (*Socket, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newSocket(conn, true, log), nil
}

func newSocket(conn *websocket.Conn, pingPong bool, log *logger.Logger) *Socket {
	return &Socket{
		conn:     conn,
		send:     make(chan []byte),
		done:     make(chan struct{}),
		pingPong: pingPong,
		log:      log,
	}
}

// Listen starts the pumps, OnMessage should be set before.
func (s *Socket) Listen() {
	go s.writer()
	go s.reader()
}

// Write queues a frame for the writer.
func (s *Socket) Write(data []byte) error {
	select {
	case s.send <- data:
		return nil
	case <-s.done:
		return ErrClosed
	}
}

// Done is closed when the connection is gone.
func (s *Socket) Done() <-chan struct{} { return s.done }

// Close sends a close frame to the peer and stops the pumps.
func (s *Socket) Close() {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	s.shutdown()
}

func (s *Socket) shutdown() {
	s.once.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

// reader pumps messages from the websocket connection to the OnMessage callback.
// Blocking, must be called as goroutine.
func (s *Socket) reader() {
	defer s.shutdown()

	s.conn.SetReadLimit(maxMessageSize)
	if s.pingPong {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongTime))
		s.conn.SetPongHandler(func(string) error { return s.conn.SetReadDeadline(time.Now().Add(pongTime)) })
	}
	for {
		kind, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("WebSocket read")
			}
			return
		}
		if kind != websocket.TextMessage {
			s.log.Debug().Msgf("Skipped frame of type %v", kind)
			continue
		}
		if s.OnMessage != nil {
			s.OnMessage(message)
		}
	}
}

// writer pumps messages from the send channel to the websocket connection.
// Blocking, must be called as goroutine.
func (s *Socket) writer() {
	defer s.shutdown()

	var tick <-chan time.Time
	if s.pingPong {
		ticker := time.NewTicker(pingTime)
		defer ticker.Stop()
		tick = ticker.C
	}
	for {
		select {
		case message := <-s.send:
			if err := s.write(websocket.TextMessage, message); err != nil {
				s.log.Warn().Err(err).Msg("WebSocket write")
				return
			}
		case <-tick:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *Socket) write(kind int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(kind, data)
}
