//go:build cgo || windows || darwin

package audio

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

// Available reports whether this build can make sound.
const Available = true

var errNothingLoaded = errors.New("no track loaded")

// Speaker plays one track at a time on the system speaker. Notifications
// about the loaded track are sent on Events; every one carries the ID of the
// track it is about.
type Speaker struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate

	trackID  string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	state    player.State
	stopTick chan struct{}

	events    chan player.Event
	closed    chan struct{}
	closeOnce sync.Once
}

func New() *Speaker {
	return &Speaker{
		events: make(chan player.Event, 16),
		closed: make(chan struct{}),
	}
}

// Load replaces whatever is loaded with track, paused at the start. Its
// duration is announced with a MetadataReady event. The previous track is
// dropped even when track fails to load.
func (s *Speaker) Load(track playlist.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.unloadLocked()

	streamer, format, err := decode(track.Source)
	if err != nil {
		return err
	}

	// The speaker runs at the first track's sample rate for the whole
	// session. A failed init leaves it uninitialized for the next Load.
	if !s.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		s.sampleRate = format.SampleRate
		s.initialized = true
	}

	// Tracks with a different sample rate than the speaker's need resampling
	// to sound right.
	var source beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}

	id := track.ID
	s.trackID = id
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: source, Paused: true}
	s.state = player.StateStopped
	s.stopTick = make(chan struct{})

	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		// The callback runs inside the speaker lock.
		go s.finished(id)
	})))
	go s.tick(id, s.stopTick)
	go s.emit(player.MetadataReady{TrackID: id, Duration: length(streamer, format)})

	log.Println("loaded", track.Source)
	return nil
}

// unloadLocked drops the current track. s.mu must be held.
func (s *Speaker) unloadLocked() {
	if s.stopTick != nil {
		close(s.stopTick)
		s.stopTick = nil
	}
	if s.streamer == nil {
		return
	}

	// don't lock the speaker before clearing
	// this is cuz speaker.Clear() already tries to lock it
	speaker.Clear()

	speaker.Lock()
	s.streamer.Close()
	speaker.Unlock()

	s.streamer = nil
	s.ctrl = nil
	s.trackID = ""
	s.state = player.StateStopped
}

func (s *Speaker) setPaused(paused bool) {
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *Speaker) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}
	s.setPaused(false)
	s.state = player.StatePlaying
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil || s.state != player.StatePlaying {
		return
	}
	s.setPaused(true)
	s.state = player.StatePaused
}

func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}
	s.setPaused(true)
	speaker.Lock()
	if err := s.streamer.Seek(0); err != nil {
		log.Println("failed to rewind:", err)
	}
	speaker.Unlock()
	s.state = player.StateStopped
}

func (s *Speaker) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.streamer == nil {
		return errNothingLoaded
	}

	speaker.Lock()
	defer speaker.Unlock()

	n := s.format.SampleRate.N(position)
	n = min(max(n, 0), max(s.streamer.Len()-1, 0))
	return s.streamer.Seek(n)
}

func (s *Speaker) State() player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Speaker) Events() <-chan player.Event {
	return s.events
}

// Close stops playback and ends all notifications.
func (s *Speaker) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.mu.Lock()
		s.unloadLocked()
		s.mu.Unlock()
	})
}

func (s *Speaker) emit(ev player.Event) {
	select {
	case s.events <- ev:
	case <-s.closed:
	}
}

func (s *Speaker) finished(id string) {
	s.mu.Lock()
	if s.trackID == id {
		s.state = player.StateStopped
	}
	s.mu.Unlock()

	log.Println("finished playing track", id)
	s.emit(player.PlaybackEnded{TrackID: id})
}

// tick reports the position of track id until it is unloaded.
func (s *Speaker) tick(id string, stop <-chan struct{}) {
	ticker := time.NewTicker(positionUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-s.closed:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.trackID != id || s.streamer == nil {
			s.mu.Unlock()
			return
		}
		speaker.Lock()
		paused := s.ctrl.Paused
		pos := s.format.SampleRate.D(s.streamer.Position())
		err := s.streamer.Err()
		speaker.Unlock()
		s.mu.Unlock()

		if err != nil {
			s.emit(player.PlaybackFailed{TrackID: id, Err: err})
			return
		}
		// don't bother sending position updates if paused
		if !paused {
			s.emit(player.PositionChanged{TrackID: id, Position: pos})
		}
	}
}
