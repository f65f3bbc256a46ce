package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ytget/player-bridge/internal/channel"
	"github.com/ytget/player-bridge/internal/logger"
)

// Client calls channel methods over a WebSocket connection.
type Client struct {
	conn  *Socket
	queue map[string]chan *channel.Response
	mu    sync.Mutex
	log   *logger.Logger
}

// Dial connects to the channel endpoint of a bridge, address is host:port.
func Dial(ctx context.Context, address string, log *logger.Logger) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: address, Path: PathChannel}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	c := &Client{
		conn:  newSocket(conn, false, log),
		queue: make(map[string]chan *channel.Response, 1),
		log:   log,
	}
	c.conn.OnMessage = c.handleMessage
	c.conn.Listen()
	return c, nil
}

// Call sends one method call and waits for the reply with the same id.
// The returned error is a transport error; channel errors are in the response.
func (c *Client) Call(ctx context.Context, ch, method string, args any) (*channel.Response, error) {
	rq := channel.Request{Id: uuid.NewString(), Channel: ch, Method: method}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("arguments: %w", err)
		}
		rq.Args = raw
	}
	data, err := json.Marshal(rq)
	if err != nil {
		return nil, err
	}

	wait := make(chan *channel.Response, 1)
	c.mu.Lock()
	c.queue[rq.Id] = wait
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.queue, rq.Id)
		c.mu.Unlock()
	}()

	if err := c.conn.Write(data); err != nil {
		return nil, err
	}
	select {
	case resp := <-wait:
		return resp, nil
	case <-c.conn.Done():
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) handleMessage(message []byte) {
	var resp channel.Response
	if err := json.Unmarshal(message, &resp); err != nil {
		c.log.Warn().Err(err).Msg("Malformed reply")
		return
	}
	c.mu.Lock()
	wait, ok := c.queue[resp.Id]
	c.mu.Unlock()
	if !ok {
		c.log.Warn().Str(logger.IdField, resp.Id).Msg("Reply without a call")
		return
	}
	select {
	case wait <- &resp:
	default:
		c.log.Warn().Str(logger.IdField, resp.Id).Msg("Duplicate reply")
	}
}

func (c *Client) Close() { c.conn.Close() }
