package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/podhaven/backend/internal/models"
)

// State is the capture session lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateCapturing  State = "capturing"
	StateFinalizing State = "finalizing"
)

// FrameSink receives visualization frames while the session is capturing.
// Each frame is a frequency-magnitude snapshot, one byte per bucket.
type FrameSink func(frame []byte)

// Config holds capture session tuning.
type Config struct {
	// Bins is the visualization bucket count (power of two).
	Bins int
	// RefreshInterval is the visualization cadence.
	RefreshInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Bins <= 0 {
		c.Bins = DefaultBins
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 33 * time.Millisecond
	}
	return c
}

// Session manages the lifecycle of one recording attempt: it owns the live
// microphone stream, accumulates data fragments into a finished clip, and
// drives the visualization signal while capturing.
//
// The microphone is the one exclusive shared resource here: the session
// releases it exactly once on every exit path out of Capturing.
type Session struct {
	device  Device
	cfg     Config
	onFrame FrameSink
	logger  *zap.Logger

	mu            sync.Mutex
	state         State
	stream        Stream
	fragments     [][]byte
	lastFragment  []byte
	elapsed       int
	clip          *models.Clip
	done          chan struct{} // closed on Stop; ends the ticker loop
	clockInterval time.Duration // per-second counter cadence; overridden in tests
}

// NewSession creates an idle capture session. onFrame may be nil to disable
// visualization output.
func NewSession(device Device, cfg Config, onFrame FrameSink, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		device:        device,
		cfg:           cfg.withDefaults(),
		onFrame:       onFrame,
		logger:        logger,
		state:         StateIdle,
		clockInterval: time.Second,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Elapsed returns whole seconds captured so far (or in the finished clip).
func (s *Session) Elapsed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Clip returns the finished clip, or nil while none exists.
func (s *Session) Clip() *models.Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clip
}

// Start requests microphone access and begins capturing. Valid only from
// Idle. On denial or device error the session returns to Idle and the error
// is surfaced to the caller; the attempt is not retried automatically.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = StateRequesting
	s.mu.Unlock()

	stream, err := s.device.Acquire(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateIdle
		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrDevice) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrDevice, err)
	}

	s.stream = stream
	s.state = StateCapturing
	s.elapsed = 0
	s.fragments = nil
	s.lastFragment = nil
	s.clip = nil
	s.done = make(chan struct{})
	go s.run(s.done)
	s.logger.Info("capture started", zap.Int("bins", s.cfg.Bins))
	return nil
}

// AppendFragment adds one recorder data fragment. Fragments arriving outside
// Capturing are dropped.
func (s *Session) AppendFragment(data []byte) {
	if len(data) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCapturing {
		return
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.fragments = append(s.fragments, buf)
	s.lastFragment = buf
}

// Stop finalizes the capture: assembles all fragments into one immutable
// buffer, cancels the timers, releases the device, and produces the Clip.
// Calling Stop when not capturing is a no-op and returns nil.
func (s *Session) Stop() *models.Clip {
	s.mu.Lock()
	if s.state != StateCapturing {
		s.mu.Unlock()
		return nil
	}
	s.state = StateFinalizing
	close(s.done)
	s.done = nil

	clip := &models.Clip{
		ID:              uuid.New(),
		AudioData:       bytes.Join(s.fragments, nil),
		DurationSeconds: s.elapsed,
		CreatedAt:       time.Now(),
	}
	s.fragments = nil
	s.lastFragment = nil
	s.clip = clip

	stream := s.stream
	s.stream = nil
	s.state = StateIdle
	s.mu.Unlock()

	if stream != nil {
		if err := stream.Close(); err != nil {
			s.logger.Warn("release device", zap.Error(err))
		}
	}
	s.logger.Info("capture stopped",
		zap.String("clip_id", clip.ID.String()),
		zap.Int("duration_sec", clip.DurationSeconds),
		zap.Int("bytes", len(clip.AudioData)))
	return clip
}

// Reset discards any finished clip, returning the session to a clean Idle.
// No-op while capturing.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return
	}
	s.clip = nil
	s.elapsed = 0
}

// run drives the per-second counter and the visualization cadence. Both
// tickers die with done; emission re-checks state under the lock, so no tick
// is observable after Stop.
func (s *Session) run(done chan struct{}) {
	clock := time.NewTicker(s.clockInterval)
	viz := time.NewTicker(s.cfg.RefreshInterval)
	defer clock.Stop()
	defer viz.Stop()

	for {
		select {
		case <-done:
			return
		case <-clock.C:
			s.mu.Lock()
			if s.state == StateCapturing {
				s.elapsed++
			}
			s.mu.Unlock()
		case <-viz.C:
			s.emitFrame()
		}
	}
}

// emitFrame delivers one visualization frame. The sink runs under the lock
// so that a frame can never be observed after Stop has returned.
func (s *Session) emitFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCapturing || s.onFrame == nil {
		return
	}
	s.onFrame(Spectrum(s.lastFragment, s.cfg.Bins))
}
