// Package display projects controller state onto what the terminal shows.
// Project is pure; Renderer only turns a Snapshot into text.
package display

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

// Placeholder is shown instead of a duration that is not known yet.
const Placeholder = "--:--"

type Entry struct {
	Name   string
	Active bool
}

type Snapshot struct {
	NowPlaying   string
	State        string
	Entries      []Entry
	Elapsed      string
	Total        string
	Progress     float64 // percent, 0 to 100
	Count        string
	ShuffleLabel string
}

// FormatTime renders d as M:SS. Seconds are floored and minutes are not
// capped, so an hour is 60:00.
func FormatTime(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Percent is how far position is into a track of the given duration. It is
// 0 whenever the duration is unknown or zero.
func Percent(position, duration time.Duration, known bool) float64 {
	if !known || duration <= 0 {
		return 0
	}
	p := 100 * float64(position) / float64(duration)
	return min(max(p, 0), 100)
}

func CountLabel(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

func ShuffleLabel(shuffled bool) string {
	if shuffled {
		return "Unshuffle"
	}
	return "Shuffle"
}

func Project(s player.Status) Snapshot {
	entries := lo.Map(s.Tracks, func(t playlist.Track, i int) Entry {
		return Entry{Name: t.Name, Active: i == s.Current}
	})

	total := Placeholder
	if s.DurationKnown {
		total = FormatTime(s.Duration)
	}

	nowPlaying := ""
	if t, ok := lo.Find(s.Tracks, func(t playlist.Track) bool {
		return s.Loaded != "" && t.ID == s.Loaded
	}); ok {
		nowPlaying = t.Name
	}

	return Snapshot{
		NowPlaying:   nowPlaying,
		State:        s.State.String(),
		Entries:      entries,
		Elapsed:      FormatTime(s.Position),
		Total:        total,
		Progress:     Percent(s.Position, s.Duration, s.DurationKnown),
		Count:        CountLabel(len(s.Tracks)),
		ShuffleLabel: ShuffleLabel(s.Shuffled),
	}
}
