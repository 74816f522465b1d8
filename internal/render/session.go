package render

import (
	"image"
	"sync"

	"github.com/sheetslice/sheetslice/pkg/logger"
)

// staleStreakLimit is how many times in a row the same key may be
// re-requested before a completed render lands, before the watchdog
// flags the render as stuck.
const staleStreakLimit = 5

type sessionState int

const (
	stateIdle sessionState = iota
	stateRendering
)

// Session tracks the latest requested render for a viewport. Each
// request gets a monotonically increasing generation; only the
// completion matching the latest generation is applied, so a stale
// render can never overwrite a newer one.
type Session struct {
	mu          sync.Mutex
	state       sessionState
	generation  uint64
	key         string
	staleStreak int
	dropped     int

	surface    *image.RGBA
	surfaceKey string

	log *logger.Logger
}

func NewSession(log *logger.Logger) *Session {
	return &Session{log: log}
}

// Begin registers a new render request for key and returns its
// generation. Any in-flight render for an older generation becomes
// stale. Repeated requests for the same key without a completion in
// between trip the watchdog.
func (s *Session) Begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateRendering && key == s.key {
		s.staleStreak++
		if s.staleStreak >= staleStreakLimit {
			s.log.Info("render watchdog: %d consecutive re-requests for %q without a completion", s.staleStreak, key)
		}
	} else {
		s.staleStreak = 0
	}

	s.generation++
	s.state = stateRendering
	s.key = key
	return s.generation
}

// Commit applies a completed render if its generation is still the
// latest. Stale completions are dropped and counted.
func (s *Session) Commit(gen uint64, surface *image.RGBA) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.dropped++
		s.log.Debug("discarding stale render (generation %d, latest %d)", gen, s.generation)
		return false
	}
	s.state = stateIdle
	s.staleStreak = 0
	s.surface = surface
	s.surfaceKey = s.key
	return true
}

// Fail marks the render for gen as failed. A stale failure is ignored.
func (s *Session) Fail(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.dropped++
		return
	}
	s.state = stateIdle
	s.log.Info("render failed for %q: %v", s.key, err)
}

// Latest returns the most recently committed surface and its key, or
// nil when nothing has completed yet.
func (s *Session) Latest() (*image.RGBA, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface, s.surfaceKey
}

// Dropped returns how many stale completions have been discarded.
func (s *Session) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}
