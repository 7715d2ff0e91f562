package playlist

import (
	"errors"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrEmptyPlaylist   = errors.New("playlist is empty")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Track is one playable item. Tracks are never modified after Append.
type Track struct {
	ID               string // Identity used to match playback notifications
	Name             string // Display label
	Source           string // Path handed to the audio handle
	OriginalPosition int    // Insertion order, restores the list after a shuffle
}

// Item is what ingestion hands over to become a Track.
type Item struct {
	Name   string
	Source string
}

// Playlist is an ordered list of tracks with a current position and a
// shuffle flag. It is not safe for concurrent use.
type Playlist struct {
	tracks   []Track
	current  int // -1 when empty
	shuffled bool
	rng      *rand.Rand
}

type Option func(*Playlist)

// WithRand makes shuffles use r instead of a time-seeded source.
func WithRand(r *rand.Rand) Option {
	return func(p *Playlist) {
		p.rng = r
	}
}

func New(opts ...Option) *Playlist {
	p := &Playlist{
		tracks:  make([]Track, 0),
		current: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Append adds one track per item at the end of the list and returns the new
// tracks. Appending to an empty list makes its first track current.
func (p *Playlist) Append(items ...Item) []Track {
	added := make([]Track, 0, len(items))
	for _, item := range items {
		t := Track{
			ID:               uuid.New().String(),
			Name:             item.Name,
			Source:           item.Source,
			OriginalPosition: len(p.tracks),
		}
		p.tracks = append(p.tracks, t)
		added = append(added, t)
	}

	if p.current < 0 && len(p.tracks) > 0 {
		p.current = 0
	}
	return added
}

// ToggleShuffle shuffles the list in place, or restores insertion order if
// it is already shuffled. The current track stays current. Returns the new
// shuffle flag.
func (p *Playlist) ToggleShuffle() bool {
	var currentID string
	if t, err := p.Current(); err == nil {
		currentID = t.ID
	}

	if !p.shuffled {
		// Fisher-Yates
		for i := len(p.tracks) - 1; i > 0; i-- {
			j := p.rng.Intn(i + 1)
			p.tracks[i], p.tracks[j] = p.tracks[j], p.tracks[i]
		}
		p.shuffled = true
	} else {
		slices.SortStableFunc(p.tracks, func(a, b Track) int {
			return a.OriginalPosition - b.OriginalPosition
		})
		p.shuffled = false
	}

	if currentID != "" {
		p.current = p.IndexOf(currentID)
	}
	return p.shuffled
}

// Select makes the track at index current.
func (p *Playlist) Select(index int) (Track, error) {
	if index < 0 || index >= len(p.tracks) {
		return Track{}, ErrIndexOutOfRange
	}
	p.current = index
	return p.tracks[index], nil
}

// Next moves to the following track, wrapping to the first one.
func (p *Playlist) Next() (Track, error) {
	return p.step(1)
}

// Prev moves to the preceding track, wrapping to the last one.
func (p *Playlist) Prev() (Track, error) {
	return p.step(-1)
}

func (p *Playlist) step(delta int) (Track, error) {
	n := len(p.tracks)
	if n == 0 {
		return Track{}, ErrEmptyPlaylist
	}
	p.current = ((p.current+delta)%n + n) % n
	return p.tracks[p.current], nil
}

func (p *Playlist) Current() (Track, error) {
	if len(p.tracks) == 0 {
		return Track{}, ErrEmptyPlaylist
	}
	return p.tracks[p.current], nil
}

// Index returns the current index, or -1 for an empty list.
func (p *Playlist) Index() int {
	return p.current
}

// IndexOf returns the position of the track with the given ID, or -1.
func (p *Playlist) IndexOf(id string) int {
	_, i, ok := lo.FindIndexOf(p.tracks, func(t Track) bool {
		return t.ID == id
	})
	if !ok {
		return -1
	}
	return i
}

func (p *Playlist) Len() int {
	return len(p.tracks)
}

func (p *Playlist) Shuffled() bool {
	return p.shuffled
}

// Tracks returns a copy of the list in its current order.
func (p *Playlist) Tracks() []Track {
	return slices.Clone(p.tracks)
}
