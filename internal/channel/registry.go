package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/ytget/player-bridge/internal/logger"
)

// Result receives exactly one answer from a handler.
type Result interface {
	Success(v any)
	Error(code, message string, details any)
	NotImplemented()
}

// Handler serves the method calls of one channel.
// It must reply through result before returning.
type Handler interface {
	Handle(ctx context.Context, call *MethodCall, result Result)
}

type HandlerFunc func(ctx context.Context, call *MethodCall, result Result)

func (f HandlerFunc) Handle(ctx context.Context, call *MethodCall, result Result) { f(ctx, call, result) }

// Methods routes calls by method name; unknown names are not implemented.
type Methods map[string]HandlerFunc

func (m Methods) Handle(ctx context.Context, call *MethodCall, result Result) {
	if h, ok := m[call.Method]; ok {
		h(ctx, call, result)
		return
	}
	result.NotImplemented()
}

// Registry holds the channel handlers by channel name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	onReply  func(channel, method string, status Status)
	log      *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{handlers: make(map[string]Handler, 2), log: log}
}

// SetMethodCallHandler installs the handler of a channel, nil removes it.
func (r *Registry) SetMethodCallHandler(channel string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, channel)
		return
	}
	r.handlers[channel] = h
}

// OnReply sets a callback called after every reply, e.g. for metrics.
func (r *Registry) OnReply(fn func(channel, method string, status Status)) {
	r.mu.Lock()
	r.onReply = fn
	r.mu.Unlock()
}

// Channels returns the sorted channel names.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs a call on a channel and returns its reply.
// Unknown channels are not implemented.
func (r *Registry) Invoke(ctx context.Context, channel string, call *MethodCall) Reply {
	r.mu.RLock()
	h, ok := r.handlers[channel]
	onReply := r.onReply
	r.mu.RUnlock()

	log := r.log.Extend(r.log.With().Str(logger.ChannelField, channel).Str(logger.MethodField, call.Method))
	res := &result{log: log}
	if !ok {
		log.Warn().Msg("No handler for channel")
		res.NotImplemented()
	} else {
		r.handle(ctx, h, call, res)
	}

	out := res.reply()
	out.Channel = channel
	if onReply != nil {
		onReply(channel, call.Method, out.Status)
	}
	log.Debug().Str("s", string(out.Status)).Msg("Reply")
	return out
}

func (r *Registry) handle(ctx context.Context, h Handler, call *MethodCall, res *result) {
	defer func() {
		if v := recover(); v != nil {
			res.log.Error().Msgf("handler panic: %v", v)
			res.Error(CodeInternal, fmt.Sprintf("%v", v), nil)
		}
	}()
	h.Handle(ctx, call, res)
}

// HandleMessage decodes a request envelope, invokes it and encodes the reply.
func (r *Registry) HandleMessage(ctx context.Context, data []byte) []byte {
	out := r.Dispatch(ctx, data)
	b, err := json.Marshal(out)
	if err != nil {
		r.log.Error().Err(err).Msg("Reply encoding failed")
		b, _ = json.Marshal(Reply{Id: out.Id, Channel: out.Channel, Status: StatusError,
			Error: &Error{Code: CodeInternal, Message: err.Error()}})
	}
	return b
}

// Dispatch decodes a request envelope and invokes it.
func (r *Registry) Dispatch(ctx context.Context, data []byte) Reply {
	var rq Request
	if err := json.Unmarshal(data, &rq); err != nil {
		return malformed("", "", err)
	}
	return r.Call(ctx, rq)
}

// Call invokes a request envelope, a missing id is generated.
func (r *Registry) Call(ctx context.Context, rq Request) Reply {
	if rq.Id == "" {
		rq.Id = uuid.NewString()
	}
	if rq.Channel == "" || rq.Method == "" {
		return malformed(rq.Id, rq.Channel, fmt.Errorf("channel and method are required"))
	}
	call, err := NewMethodCall(rq.Method, rq.Args)
	if err != nil {
		return malformed(rq.Id, rq.Channel, err)
	}
	reply := r.Invoke(logger.WithRequestId(ctx, rq.Id), rq.Channel, call)
	reply.Id = rq.Id
	return reply
}

func malformed(id, channel string, err error) Reply {
	return Reply{Id: id, Channel: channel, Status: StatusError, Error: &Error{Code: CodeMalformed, Message: err.Error()}}
}

// result keeps the first answer of a handler.
type result struct {
	mu  sync.Mutex
	out *Reply
	log *logger.Logger
}

func (r *result) set(out Reply) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.out != nil {
		r.log.Warn().Str("s", string(out.Status)).Msg("Reply already submitted, ignored")
		return
	}
	r.out = &out
}

func (r *result) Success(v any) { r.set(Reply{Status: StatusOK, Result: v}) }

func (r *result) Error(code, message string, details any) {
	r.set(Reply{Status: StatusError, Error: &Error{Code: code, Message: message, Details: details}})
}

func (r *result) NotImplemented() { r.set(Reply{Status: StatusNotImplemented}) }

func (r *result) reply() Reply {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.out == nil {
		return Reply{Status: StatusError, Error: &Error{Code: CodeNoReply, Message: "handler returned without a reply"}}
	}
	return *r.out
}
