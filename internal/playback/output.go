package playback

import (
	"sync"

	"github.com/podhaven/backend/internal/models"
)

// Broadcaster publishes player commands to connected UI clients. Satisfied
// by the realtime hub.
type Broadcaster interface {
	Broadcast(room, event string, payload interface{})
}

// NewWSOutputFactory returns an OutputFactory whose outputs publish commands
// to the given room. The connected client owns the actual audio element and
// mirrors the commands onto it.
func NewWSOutputFactory(b Broadcaster, room string) OutputFactory {
	return func(track models.PlaybackTrack) Output {
		return &wsOutput{b: b, room: room, track: track}
	}
}

type wsOutput struct {
	b     Broadcaster
	room  string
	track models.PlaybackTrack

	mu       sync.Mutex
	detached bool
}

func (o *wsOutput) emit(event string, payload interface{}) {
	o.mu.Lock()
	dead := o.detached
	o.mu.Unlock()
	if dead {
		return
	}
	o.b.Broadcast(o.room, event, payload)
}

func (o *wsOutput) Load(sourceURL string) {
	o.emit("player_load", map[string]interface{}{
		"source_url": sourceURL,
		"track":      o.track,
	})
}

func (o *wsOutput) Seek(seconds float64) {
	o.emit("player_seek", map[string]float64{"seconds": seconds})
}

func (o *wsOutput) Play() {
	o.emit("player_play", nil)
}

func (o *wsOutput) Pause() {
	o.emit("player_pause", nil)
}

func (o *wsOutput) Detach() {
	o.emit("player_detach", nil)
	o.mu.Lock()
	o.detached = true
	o.mu.Unlock()
}
