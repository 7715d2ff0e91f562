package player

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pes18fan/spool/playlist"
)

var ErrUnknownDuration = errors.New("track duration not known yet")

// Status is everything the display needs, copied out of the controller.
type Status struct {
	Tracks        []playlist.Track
	Current       int // -1 when the playlist is empty
	Shuffled      bool
	State         State
	Loaded        string // ID of the track bound to the handle, "" if none
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
}

// Controller turns user intents into operations on a playlist and a
// playback handle. All methods must be called from the same goroutine.
type Controller struct {
	list   *playlist.Playlist
	handle Handle

	loaded        string
	position      time.Duration
	duration      time.Duration
	durationKnown bool
}

func NewController(list *playlist.Playlist, handle Handle) *Controller {
	return &Controller{
		list:   list,
		handle: handle,
	}
}

// Dispatch applies one event. Notifications for a track other than the one
// currently loaded are ignored.
func (c *Controller) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case PlayRequested:
		return c.Play()
	case PauseRequested:
		return c.Pause()
	case StopRequested:
		return c.Stop()
	case NextRequested:
		return c.Next()
	case PrevRequested:
		return c.Prev()
	case ShuffleRequested:
		c.ToggleShuffle()
	case TrackSelected:
		return c.Select(ev.Index)
	case SeekRequested:
		return c.Seek(ev.Fraction)
	case SkipRequested:
		return c.SeekBy(ev.Delta)
	case TracksAdded:
		c.Append(ev.Items...)

	case MetadataReady:
		if ev.TrackID != c.loaded {
			log.Println("dropping stale metadata for track", ev.TrackID)
			return nil
		}
		c.duration = ev.Duration
		c.durationKnown = true
	case PositionChanged:
		if ev.TrackID != c.loaded {
			return nil
		}
		c.position = ev.Position
	case PlaybackEnded:
		if ev.TrackID != c.loaded {
			log.Println("dropping stale end of track", ev.TrackID)
			return nil
		}
		return c.Next()
	case PlaybackFailed:
		if ev.TrackID != c.loaded {
			return nil
		}
		return fmt.Errorf("playback failed: %w", ev.Err)
	default:
		return fmt.Errorf("unknown event %T", ev)
	}
	return nil
}

// Play starts the current track, loading it first if the handle holds
// something else.
func (c *Controller) Play() error {
	track, err := c.list.Current()
	if err != nil {
		return err
	}
	if track.ID != c.loaded {
		if err := c.loadTrack(track); err != nil {
			return err
		}
	}
	c.handle.Play()
	return nil
}

func (c *Controller) Pause() error {
	if c.list.Len() == 0 {
		return playlist.ErrEmptyPlaylist
	}
	c.handle.Pause()
	return nil
}

// Stop pauses and rewinds. The position is reset right away instead of
// waiting for the handle to report it.
func (c *Controller) Stop() error {
	if c.list.Len() == 0 {
		return playlist.ErrEmptyPlaylist
	}
	c.handle.Stop()
	c.position = 0
	return nil
}

func (c *Controller) Next() error {
	track, err := c.list.Next()
	if err != nil {
		return err
	}
	return c.playTrack(track)
}

func (c *Controller) Prev() error {
	track, err := c.list.Prev()
	if err != nil {
		return err
	}
	return c.playTrack(track)
}

// Select plays the track at index.
func (c *Controller) Select(index int) error {
	track, err := c.list.Select(index)
	if err != nil {
		return err
	}
	return c.playTrack(track)
}

func (c *Controller) ToggleShuffle() bool {
	return c.list.ToggleShuffle()
}

func (c *Controller) Append(items ...playlist.Item) []playlist.Track {
	return c.list.Append(items...)
}

// Seek jumps to fraction of the loaded track's duration.
func (c *Controller) Seek(fraction float64) error {
	if c.list.Len() == 0 {
		return playlist.ErrEmptyPlaylist
	}
	if !c.durationKnown {
		return ErrUnknownDuration
	}
	fraction = min(max(fraction, 0), 1)
	return c.seekTo(time.Duration(float64(c.duration) * fraction))
}

// SeekBy moves the position by delta, clamped to the track.
func (c *Controller) SeekBy(delta time.Duration) error {
	if c.list.Len() == 0 {
		return playlist.ErrEmptyPlaylist
	}
	if !c.durationKnown {
		return ErrUnknownDuration
	}
	return c.seekTo(min(max(c.position+delta, 0), c.duration))
}

func (c *Controller) seekTo(pos time.Duration) error {
	if err := c.handle.Seek(pos); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	c.position = pos
	return nil
}

func (c *Controller) playTrack(track playlist.Track) error {
	if err := c.loadTrack(track); err != nil {
		return err
	}
	c.handle.Play()
	return nil
}

// loadTrack binds the handle to track. Its duration stays unknown until the
// matching MetadataReady arrives. If the handle cannot load track it is
// stopped, so nothing keeps playing that the controller no longer tracks.
func (c *Controller) loadTrack(track playlist.Track) error {
	c.loaded = track.ID
	c.position = 0
	c.duration = 0
	c.durationKnown = false

	if err := c.handle.Load(track); err != nil {
		c.handle.Stop()
		c.loaded = ""
		return fmt.Errorf("failed to load %s: %w", track.Name, err)
	}
	log.Println("loaded", track.Source)
	return nil
}

// Loaded returns the track bound to the handle.
func (c *Controller) Loaded() (playlist.Track, bool) {
	if c.loaded == "" {
		return playlist.Track{}, false
	}
	i := c.list.IndexOf(c.loaded)
	if i < 0 {
		return playlist.Track{}, false
	}
	return c.list.Tracks()[i], true
}

func (c *Controller) State() State {
	return c.handle.State()
}

func (c *Controller) Status() Status {
	return Status{
		Tracks:        c.list.Tracks(),
		Current:       c.list.Index(),
		Shuffled:      c.list.Shuffled(),
		State:         c.handle.State(),
		Loaded:        c.loaded,
		Position:      c.position,
		Duration:      c.duration,
		DurationKnown: c.durationKnown,
	}
}
