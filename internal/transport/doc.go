// Package transport serves the method channels on a local HTTP listener.
//
// GET /channel upgrades to a WebSocket where each text frame is a request
// envelope and each reply is sent back as one frame. POST
// /channel/{channel}/{method} takes the arguments object as the body and
// answers with the reply envelope.
package transport
