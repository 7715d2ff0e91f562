package player

import (
	"time"

	"github.com/pes18fan/spool/playlist"
)

// An Event is anything the controller reacts to: a user intent coming from
// the UI or a notification coming from the playback handle.
type Event interface {
	isEvent()
}

// Sent by the handle once the duration of a freshly loaded track is known.
// It always arrives after Load has returned.
type MetadataReady struct {
	TrackID  string
	Duration time.Duration
}

func (MetadataReady) isEvent() {}

// Sent by the handle while a track is playing.
// Sent out every second by default.
type PositionChanged struct {
	TrackID  string
	Position time.Duration
}

func (PositionChanged) isEvent() {}

// Sent by the handle when a track plays through to its end.
type PlaybackEnded struct {
	TrackID string
}

func (PlaybackEnded) isEvent() {}

// Sent by the handle when the loaded track can no longer be played.
type PlaybackFailed struct {
	TrackID string
	Err     error
}

func (PlaybackFailed) isEvent() {}

type PlayRequested struct{}

func (PlayRequested) isEvent() {}

type PauseRequested struct{}

func (PauseRequested) isEvent() {}

type StopRequested struct{}

func (StopRequested) isEvent() {}

type NextRequested struct{}

func (NextRequested) isEvent() {}

type PrevRequested struct{}

func (PrevRequested) isEvent() {}

type ShuffleRequested struct{}

func (ShuffleRequested) isEvent() {}

// A list entry was picked directly.
type TrackSelected struct {
	Index int
}

func (TrackSelected) isEvent() {}

// Fraction is a position along the progress bar, 0 at the start and 1 at the
// end of the track.
type SeekRequested struct {
	Fraction float64
}

func (SeekRequested) isEvent() {}

// Relative seek, negative values rewind.
type SkipRequested struct {
	Delta time.Duration
}

func (SkipRequested) isEvent() {}

type TracksAdded struct {
	Items []playlist.Item
}

func (TracksAdded) isEvent() {}
