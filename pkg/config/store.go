package config

import (
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/clock"
)

const (
	pollInterval = time.Second
	pollTimeout  = 15 * time.Second
)

// Source is the externally-owned raw configuration container. The settings
// sub-object is reachable only by polling; the host additionally signals
// when its root configuration node has been refreshed.
type Source interface {
	// Raw returns the current settings sub-object, or false while the
	// host has not exposed its configuration yet. A nil value with true
	// means the host has configuration but no settings sub-object.
	Raw() (any, bool)

	// Subscribe registers a refresh-signal callback and returns its
	// cancel func.
	Subscribe(fn func()) (cancel func())
}

// Store owns the current settings snapshot and the observer list.
//
// Snapshots are replaced, never mutated, so Current is usable from any call
// site. Observers fire in registration order, synchronously, exactly once
// per effective change: an update whose raw value deep-equals the previous
// one, or whose parsed result equals the previous snapshot, notifies nobody.
type Store struct {
	mu     sync.Mutex
	source Source
	clock  clock.Clock
	log    zerolog.Logger

	current Settings
	lastRaw any
	haveRaw bool

	observers []observer
	nextID    int

	monitoring   bool
	polling      bool
	pollTimer    clock.Timer
	cancelSource func()
}

type observer struct {
	id int
	fn func()
}

// NewStore creates a store serving the defaults until the first successful
// read. A nil clk uses the system clock.
func NewStore(source Source, clk clock.Clock, log zerolog.Logger) *Store {
	if clk == nil {
		clk = clock.System()
	}
	return &Store{
		source:  source,
		clock:   clk,
		log:     log,
		current: Defaults(),
	}
}

// Current returns the latest validated snapshot.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers a change observer and returns its cancel func.
func (s *Store) Subscribe(fn func()) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// ReadAndMonitor performs the first configuration read, retrying every
// second for up to 15 seconds while the source is not ready, and re-reads
// whenever the source signals a refresh.
func (s *Store) ReadAndMonitor() {
	s.mu.Lock()
	first := !s.monitoring
	s.monitoring = true
	s.mu.Unlock()

	if first {
		cancel := s.source.Subscribe(s.refresh)
		s.mu.Lock()
		s.cancelSource = cancel
		s.mu.Unlock()
	}
	s.beginPoll()
}

// Close cancels the refresh subscription and any pending poll.
func (s *Store) Close() {
	s.mu.Lock()
	cancel := s.cancelSource
	s.cancelSource = nil
	timer := s.pollTimer
	s.pollTimer = nil
	s.polling = false
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if timer != nil {
		timer.Stop()
	}
}

func (s *Store) refresh() {
	s.beginPoll()
}

// beginPoll starts a bounded attempt chain unless one is already running;
// an active chain re-reads the source on its next attempt anyway.
func (s *Store) beginPoll() {
	s.mu.Lock()
	if s.polling {
		s.mu.Unlock()
		return
	}
	s.polling = true
	s.mu.Unlock()

	s.attempt(s.clock.Now().Add(pollTimeout))
}

func (s *Store) attempt(deadline time.Time) {
	raw, ok := s.source.Raw()
	if ok {
		s.endPoll()
		s.apply(raw)
		return
	}
	if !s.clock.Now().Before(deadline) {
		s.endPoll()
		s.log.Error().Msg("settings object never became readable")
		return
	}

	timer := s.clock.AfterFunc(pollInterval, func() { s.attempt(deadline) })
	s.mu.Lock()
	s.pollTimer = timer
	s.mu.Unlock()
}

func (s *Store) endPoll() {
	s.mu.Lock()
	s.polling = false
	s.pollTimer = nil
	s.mu.Unlock()
}

// apply parses a raw value and atomically replaces the snapshot, notifying
// observers only on an effective change.
func (s *Store) apply(raw any) {
	s.mu.Lock()
	if s.haveRaw && reflect.DeepEqual(raw, s.lastRaw) {
		s.mu.Unlock()
		return
	}
	s.lastRaw = raw
	s.haveRaw = true
	s.mu.Unlock()

	parsed, err := Parse(raw, s.log)
	if err != nil {
		s.log.Error().Err(err).Msg("rejecting settings update")
		return
	}

	s.mu.Lock()
	if parsed.Equal(s.current) {
		s.mu.Unlock()
		return
	}
	s.current = parsed
	fns := make([]func(), len(s.observers))
	for i, o := range s.observers {
		fns[i] = o.fn
	}
	s.mu.Unlock()

	s.log.Debug().
		Bool("enabled", parsed.Enabled).
		Stringer("animation", parsed.Animation).
		Msg("settings updated")
	for _, fn := range fns {
		fn()
	}
}
