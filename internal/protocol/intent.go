package protocol

import "encoding/json"

// IntentEnvelope wraps a realtime client's inbound command by type name,
// deferring payload decoding until the type is known.
type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}
