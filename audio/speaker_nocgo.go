//go:build !cgo && !windows && !darwin

package audio

import (
	"errors"
	"sync"
	"time"

	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

// Available reports whether this build can make sound.
// Audio output on linux needs cgo for the native sound libraries.
const Available = false

var errNothingLoaded = errors.New("no track loaded")

// Speaker is a silent handle for builds without cgo. Tracks are still
// decoded so durations and decode errors show up, but nothing plays and the
// position never moves.
type Speaker struct {
	mu      sync.Mutex
	trackID string
	state   player.State
	events  chan player.Event
	closed  chan struct{}
	once    sync.Once
}

func New() *Speaker {
	return &Speaker{
		events: make(chan player.Event, 16),
		closed: make(chan struct{}),
	}
}

func (s *Speaker) Load(track playlist.Track) error {
	s.mu.Lock()
	s.trackID = ""
	s.state = player.StateStopped
	s.mu.Unlock()

	streamer, format, err := decode(track.Source)
	if err != nil {
		return err
	}
	d := length(streamer, format)
	streamer.Close()

	s.mu.Lock()
	s.trackID = track.ID
	s.mu.Unlock()

	go s.emit(player.MetadataReady{TrackID: track.ID, Duration: d})
	return nil
}

func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackID != "" {
		s.state = player.StatePlaying
	}
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == player.StatePlaying {
		s.state = player.StatePaused
	}
}

func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = player.StateStopped
}

func (s *Speaker) Seek(time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trackID == "" {
		return errNothingLoaded
	}
	return nil
}

func (s *Speaker) State() player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Speaker) Events() <-chan player.Event {
	return s.events
}

func (s *Speaker) Close() {
	s.once.Do(func() { close(s.closed) })
}

func (s *Speaker) emit(ev player.Event) {
	select {
	case s.events <- ev:
	case <-s.closed:
	}
}
