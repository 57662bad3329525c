// Package protocol defines the JSON messages exchanged with web players.
// Every frame is an Envelope: a type tag and a raw payload.
package protocol

import (
	"encoding/json"
)

// Message types.
const (
	MsgCommand = "command" // client -> server
	MsgWelcome = "welcome" // server -> client, once after connect
	MsgState   = "state"   // server -> client, periodic snapshot
	MsgEvent   = "event"   // server -> client, one per game event
	MsgError   = "error"   // server -> client, rejected command
)

// Envelope wraps every message on the wire.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}
