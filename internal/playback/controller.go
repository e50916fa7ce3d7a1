// Package playback plays exactly one track at a time and enforces trim
// bounds for user recordings.
package playback

import (
	"sync"

	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/models"
)

// Output is the single shared audio surface. Implementations route commands
// to the actual playback device (for this service, the connected UI client).
// Detach tears the surface down; a detached output receives nothing further.
type Output interface {
	Load(sourceURL string)
	Seek(seconds float64)
	Play()
	Pause()
	Detach()
}

// OutputFactory attaches a fresh output for a track. Called once per Play.
type OutputFactory func(track models.PlaybackTrack) Output

// Handle identifies one attachment of a track to the output. Position and
// end-of-media events carry the handle; events from a superseded attachment
// are dropped, so a torn-down track can never pause or seek the new one.
type Handle uint64

// State is the externally visible player state.
type State struct {
	Track    *models.PlaybackTrack `json:"track,omitempty"`
	Playing  bool                  `json:"playing"`
	Position float64               `json:"position_seconds"`
	Handle   Handle                `json:"handle"`
}

// Controller owns the playback surface and the current track.
type Controller struct {
	newOutput OutputFactory
	logger    *zap.Logger

	mu       sync.Mutex
	output   Output
	track    *models.PlaybackTrack
	handle   Handle
	playing  bool
	position float64
}

// NewController creates a controller with nothing loaded.
func NewController(factory OutputFactory, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{newOutput: factory, logger: logger}
}

// Play supersedes whatever is loaded: the previous output is detached before
// the new one is attached, then the track is loaded, seeked to its start
// bound (default 0), and started.
func (c *Controller) Play(track models.PlaybackTrack) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.output != nil {
		c.output.Detach()
		c.output = nil
	}
	c.handle++

	out := c.newOutput(track)
	c.output = out
	c.track = &track

	out.Load(track.SourceURL)
	c.position = 0
	if track.StartSeconds > 0 {
		out.Seek(track.StartSeconds)
		c.position = track.StartSeconds
	}
	out.Play()
	c.playing = true

	c.logger.Info("playing track",
		zap.String("kind", string(track.Kind)),
		zap.String("title", track.Title))
	return c.stateLocked()
}

// Toggle pauses if playing and resumes if paused. No-op with nothing loaded.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.track == nil || c.output == nil {
		return c.stateLocked()
	}
	if c.playing {
		c.output.Pause()
		c.playing = false
	} else {
		c.output.Play()
		c.playing = true
	}
	return c.stateLocked()
}

// OnPosition handles a playback-position update. For a bounded track, once
// the position reaches the end bound playback pauses and the position resets
// to the start bound; there is no auto-advance and no loop.
func (c *Controller) OnPosition(h Handle, pos float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h != c.handle || c.track == nil {
		return
	}
	c.position = pos
	if c.track.Bounded() && pos >= c.track.EndSeconds {
		c.output.Pause()
		c.playing = false
		c.output.Seek(c.track.StartSeconds)
		c.position = c.track.StartSeconds
	}
}

// OnEnded handles natural end of media: playback pauses where it is, with no
// position reset.
func (c *Controller) OnEnded(h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h != c.handle {
		return
	}
	c.playing = false
}

// State returns a snapshot of the player.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Track:    c.track,
		Playing:  c.playing,
		Position: c.position,
		Handle:   c.handle,
	}
}
