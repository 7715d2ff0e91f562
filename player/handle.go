package player

import (
	"time"

	"github.com/pes18fan/spool/playlist"
)

type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Handle is the thing that actually makes sound. It owns the play state;
// the controller only asks for it.
//
// Load binds a track and leaves it stopped at position zero. The track's
// duration is not known when Load returns; the handle reports it later with
// a MetadataReady event on the Events channel.
type Handle interface {
	Load(track playlist.Track) error
	Play()
	Pause()
	// Stop pauses and rewinds to the start.
	Stop()
	Seek(position time.Duration) error
	State() State
	Events() <-chan Event
}
