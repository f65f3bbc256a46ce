package transport

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/logger"
)

// Paths
const (
	PathChannel = "/channel"
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
)

// HeaderRequestId carries the request id of POST calls.
const HeaderRequestId = "X-Request-Id"

const maxBodySize = maxMessageSize

// Dispatcher runs request envelopes, it is implemented by channel.Registry.
type Dispatcher interface {
	HandleMessage(ctx context.Context, data []byte) []byte
	Call(ctx context.Context, rq channel.Request) channel.Reply
}

// Handler routes HTTP and WebSocket traffic to the channels.
type Handler struct {
	mux        *http.ServeMux
	dispatcher Dispatcher
	log        *logger.Logger

	mu      sync.Mutex
	sockets map[*Socket]struct{}
}

// NewHandler builds the routes, metrics may be nil.
func NewHandler(dispatcher Dispatcher, metrics http.Handler, metricsPrefix string, log *logger.Logger) *Handler {
	h := &Handler{
		mux:        http.NewServeMux(),
		dispatcher: dispatcher,
		log:        log,
		sockets:    make(map[*Socket]struct{}),
	}
	h.mux.HandleFunc("GET "+PathChannel, h.socket)
	h.mux.HandleFunc("POST "+PathChannel+"/{call...}", h.post)
	h.mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		h.mux.Handle("GET "+metricsPrefix+PathMetrics, metrics)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) { h.mux.ServeHTTP(w, r) }

// Close drops all open sockets.
func (h *Handler) Close() {
	h.mu.Lock()
	sockets := make([]*Socket, 0, len(h.sockets))
	for s := range h.sockets {
		sockets = append(sockets, s)
	}
	h.mu.Unlock()
	for _, s := range sockets {
		s.Close()
	}
}

func (h *Handler) socket(w http.ResponseWriter, r *http.Request) {
	s, err := Upgrade(w, r, h.log)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade")
		return
	}
	// the request context ends with this handler, so it waits for the socket
	ctx := context.WithoutCancel(r.Context())
	s.OnMessage = func(message []byte) {
		if err := s.Write(h.dispatcher.HandleMessage(ctx, message)); err != nil {
			h.log.Debug().Err(err).Msg("Reply dropped")
		}
	}

	h.mu.Lock()
	h.sockets[s] = struct{}{}
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket connected")

	s.Listen()
	<-s.Done()

	h.mu.Lock()
	delete(h.sockets, s)
	h.mu.Unlock()
	h.log.Debug().Str("remote", r.RemoteAddr).Msg("WebSocket disconnected")
}

// post serves POST /channel/{channel}/{method}, channel names may contain slashes.
func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("call")
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		http.Error(w, "expected /channel/{channel}/{method}", http.StatusNotFound)
		return
	}

	if !sameOrigin(r) {
		h.log.Warn().Str("origin", r.Header.Get("Origin")).Msg("Cross-origin call rejected")
		http.Error(w, "cross-origin calls are not allowed", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	if len(body) > 0 && !isJSON(r.Header.Get("Content-Type")) {
		http.Error(w, "arguments must be application/json", http.StatusUnsupportedMediaType)
		return
	}
	rq := channel.Request{
		Id:      r.Header.Get(HeaderRequestId),
		Channel: path[:i],
		Method:  path[i+1:],
		Args:    body,
	}
	reply := h.dispatcher.Call(r.Context(), rq)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(reply))
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		h.log.Error().Err(err).Msg("Reply encoding failed")
	}
}

// sameOrigin accepts requests without an Origin header or from the host
// they are sent to, the rule websocket.Upgrader applies by default.
func sameOrigin(r *http.Request) bool {
	origin := r.Header["Origin"]
	if len(origin) == 0 {
		return true
	}
	u, err := url.Parse(origin[0])
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

func isJSON(contentType string) bool {
	t, _, err := mime.ParseMediaType(contentType)
	return err == nil && t == "application/json"
}

// StatusCode maps a reply to an HTTP status.
func StatusCode(reply channel.Reply) int {
	switch reply.Status {
	case channel.StatusOK:
		return http.StatusOK
	case channel.StatusNotImplemented:
		return http.StatusNotImplemented
	}
	if reply.Error != nil && (reply.Error.Code == channel.CodeInternal || reply.Error.Code == channel.CodeNoReply) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}
