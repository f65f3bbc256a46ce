// Package channel models the request/response boundary between the UI layer
// and the bridge as named method channels.
//
// Each call and each reply is a JSON-encoded envelope:
//
//	 id - (optional) request id echoed in the reply;
//	  c - (required) channel name;
//	  m - (required in requests) method name;
//	  a - (optional) method arguments, a JSON object;
//	  s - (replies) one of ok, error, notImplemented;
//	  r - (replies) the success value;
//	  e - (replies) {code, message, details} for errors.
//
// Example:
//
//	{"id":"1","c":"com.ytget.player_bridge/vlc","m":"launchVLC","a":{"url":"http://host/v.mkv","title":"V"}}
//	{"id":"1","c":"com.ytget.player_bridge/vlc","s":"ok","r":true}
package channel

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Status string

const (
	StatusOK             Status = "ok"
	StatusError          Status = "error"
	StatusNotImplemented Status = "notImplemented"
)

// Error codes
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeMalformed       = "MALFORMED"
	CodeNoReply         = "NO_REPLY"
	CodeInternal        = "INTERNAL"
)

var (
	ErrMalformed    = errors.New("malformed")
	ErrArgumentType = errors.New("wrong argument type")
)

// Request is an incoming method call.
type Request struct {
	Id      string          `json:"id,omitempty"`
	Channel string          `json:"c"`
	Method  string          `json:"m"`
	Args    json.RawMessage `json:"a,omitempty"` // should be json.RawMessage for 2-pass unmarshal
}

// Reply is an outgoing answer to a Request.
type Reply struct {
	Id      string `json:"id,omitempty"`
	Channel string `json:"c"`
	Status  Status `json:"s"`
	Result  any    `json:"r,omitempty"`
	Error   *Error `json:"e,omitempty"`
}

// Response is a Reply as seen by a client, with the result left raw.
type Response struct {
	Id      string          `json:"id,omitempty"`
	Channel string          `json:"c"`
	Status  Status          `json:"s"`
	Result  json.RawMessage `json:"r,omitempty"`
	Error   *Error          `json:"e,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Err converts a non-ok response to an error.
func (r *Response) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusError:
		if r.Error == nil {
			return &Error{Code: CodeInternal}
		}
		return r.Error
	case StatusNotImplemented:
		return fmt.Errorf("%s: not implemented", r.Channel)
	default:
		return fmt.Errorf("%w: unknown status %q", ErrMalformed, r.Status)
	}
}

// Unwrap decodes the result of an ok response.
func Unwrap[T any](r *Response) (*T, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(r.Result, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return out, nil
}

// MethodCall is a decoded call handed to a channel handler.
type MethodCall struct {
	Method    string
	Arguments map[string]any
}

// NewMethodCall decodes raw arguments; they must be absent, null or an object.
func NewMethodCall(method string, args json.RawMessage) (*MethodCall, error) {
	call := &MethodCall{Method: method}
	if len(args) == 0 || string(args) == "null" {
		return call, nil
	}
	if err := json.Unmarshal(args, &call.Arguments); err != nil {
		return nil, fmt.Errorf("%w: arguments must be an object: %v", ErrMalformed, err)
	}
	return call, nil
}

// HasArgument reports whether the argument is present and not null.
func (c *MethodCall) HasArgument(key string) bool {
	v, ok := c.Arguments[key]
	return ok && v != nil
}

// OptionalString returns nil when the argument is absent or null.
func (c *MethodCall) OptionalString(key string) (*string, error) {
	if !c.HasArgument(key) {
		return nil, nil
	}
	s, ok := c.Arguments[key].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrArgumentType, key)
	}
	return &s, nil
}
