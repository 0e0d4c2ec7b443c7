// Package realtime fans bus events out to connected WebSocket clients as
// protocol.PatchEnvelope frames, per spec.md §6's realtime stream.
// Grounded on the teacher's internal/ws/hub.go (mutex-guarded connection
// set, broadcast-to-all) merged with cmd/server/implementations.go's
// BroadcasterImpl/SequenceGeneratorImpl pair: one dungeon game's event
// stream owns both its connection set and its sequence counter, so there
// is no generic connection-fan-out type left floating unattached to the
// game it serves.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/duskvale/dungeonengine/internal/protocol"
)

// Broadcaster owns one game's live WebSocket connections and marshals its
// bus events into sequenced protocol.PatchEnvelope frames for them.
type Broadcaster struct {
	logger   *zap.SugaredLogger
	sequence uint64

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewBroadcaster constructs an empty Broadcaster for one game's stream.
func NewBroadcaster(logger *zap.SugaredLogger) *Broadcaster {
	return &Broadcaster{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

// Join registers conn to receive this game's future event frames and
// starts its read loop, which exists only to detect the client going
// away (the protocol is server-push only). Grounded on the teacher's
// cmd/server/main.go "/stream" handler goroutine.
func (b *Broadcaster) Join(conn *websocket.Conn) {
	b.mu.Lock()
	b.clients[conn] = struct{}{}
	b.mu.Unlock()

	go func() {
		defer b.leave(conn)
		defer conn.Close(websocket.StatusNormalClosure, "")
		for {
			if _, _, err := conn.Read(context.Background()); err != nil {
				return
			}
		}
	}()
}

func (b *Broadcaster) leave(conn *websocket.Conn) {
	b.mu.Lock()
	delete(b.clients, conn)
	b.mu.Unlock()
}

// Handler returns a bus.EventHandler that broadcasts every event it
// receives; pass it to GameBus.SubscribeAll.
func (b *Broadcaster) Handler() func(eventType string, payload any) {
	return func(eventType string, payload any) {
		b.Broadcast(eventType, payload)
	}
}

// Broadcast wraps payload in a PatchEnvelope tagged eventType, assigns it
// the next sequence number, and writes it to every connected client,
// dropping and closing any connection whose write fails or times out.
func (b *Broadcaster) Broadcast(eventType string, payload any) {
	seq := atomic.AddUint64(&b.sequence, 1)
	envelope := protocol.PatchEnvelope{Sequence: seq, Type: eventType, Payload: payload}
	data, err := json.Marshal(envelope)
	if err != nil {
		b.logger.Errorw("failed to marshal event", "type", eventType, "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := conn.Write(ctx, websocket.MessageText, data)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(b.clients, conn)
		}
	}
}
