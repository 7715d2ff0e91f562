// Package playertest provides an in-memory playback handle for tests.
package playertest

import (
	"errors"
	"time"

	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

// Handle records what the controller asked of it. Durations are never
// announced on their own; tests call Ready to simulate metadata arriving.
// A failed Load leaves the handle as it was, so tests can tell whether the
// caller cleans up after it.
type Handle struct {
	Loaded   []playlist.Track
	Position time.Duration
	LoadErr  error
	SeekErr  error

	state  player.State
	events chan player.Event
}

func NewHandle() *Handle {
	return &Handle{
		events: make(chan player.Event, 16),
	}
}

func (h *Handle) Load(track playlist.Track) error {
	if h.LoadErr != nil {
		return h.LoadErr
	}
	h.Loaded = append(h.Loaded, track)
	h.Position = 0
	h.state = player.StateStopped
	return nil
}

func (h *Handle) Play() {
	h.state = player.StatePlaying
}

func (h *Handle) Pause() {
	h.state = player.StatePaused
}

func (h *Handle) Stop() {
	h.state = player.StateStopped
	h.Position = 0
}

func (h *Handle) Seek(position time.Duration) error {
	if h.SeekErr != nil {
		return h.SeekErr
	}
	if len(h.Loaded) == 0 {
		return errors.New("nothing loaded")
	}
	h.Position = position
	return nil
}

func (h *Handle) State() player.State {
	return h.state
}

func (h *Handle) Events() <-chan player.Event {
	return h.events
}

// Current returns the most recently loaded track.
func (h *Handle) Current() (playlist.Track, bool) {
	if len(h.Loaded) == 0 {
		return playlist.Track{}, false
	}
	return h.Loaded[len(h.Loaded)-1], true
}

// Ready builds the metadata notification for the current track.
func (h *Handle) Ready(d time.Duration) player.MetadataReady {
	t, _ := h.Current()
	return player.MetadataReady{TrackID: t.ID, Duration: d}
}

// Ended builds the end-of-track notification for the current track.
func (h *Handle) Ended() player.PlaybackEnded {
	t, _ := h.Current()
	return player.PlaybackEnded{TrackID: t.ID}
}

// Emit queues ev on the events channel.
func (h *Handle) Emit(ev player.Event) {
	h.events <- ev
}
