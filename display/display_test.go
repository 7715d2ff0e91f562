package display

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pes18fan/spool/player"
	"github.com/pes18fan/spool/playlist"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{0, "0:00"},
		{5 * time.Second, "0:05"},
		{59*time.Second + 999*time.Millisecond, "0:59"},
		{60 * time.Second, "1:00"},
		{65 * time.Second, "1:05"},
		{65*time.Second + 700*time.Millisecond, "1:05"},
		{10*time.Minute + 9*time.Second, "10:09"},
		{time.Hour, "60:00"},
		{3*time.Hour + 2*time.Second, "180:02"},
		{-3 * time.Second, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.input); got != tt.expected {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatTime_SecondsAlwaysTwoDigits(t *testing.T) {
	for s := 0; s < 7200; s += 7 {
		got := FormatTime(time.Duration(s) * time.Second)
		parts := strings.Split(got, ":")
		require.Len(t, parts, 2, got)
		assert.Len(t, parts[1], 2, got)
		assert.Equal(t, fmt.Sprintf("%d", s/60), parts[0])
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		position time.Duration
		duration time.Duration
		known    bool
		expected float64
	}{
		{10 * time.Second, 0, false, 0},
		{10 * time.Second, time.Minute, false, 0},
		{10 * time.Second, 0, true, 0},
		{0, time.Minute, true, 0},
		{15 * time.Second, time.Minute, true, 25},
		{time.Minute, time.Minute, true, 100},
		{2 * time.Minute, time.Minute, true, 100},
	}

	for _, tt := range tests {
		got := Percent(tt.position, tt.duration, tt.known)
		assert.False(t, math.IsNaN(got))
		assert.InDelta(t, tt.expected, got, 1e-9, "Percent(%v, %v, %v)", tt.position, tt.duration, tt.known)
	}
}

func status(n, current int) player.Status {
	tracks := make([]playlist.Track, n)
	for i := range tracks {
		tracks[i] = playlist.Track{
			ID:               fmt.Sprintf("id%d", i),
			Name:             fmt.Sprintf("song %d", i),
			OriginalPosition: i,
		}
	}
	return player.Status{Tracks: tracks, Current: current}
}

func TestProject_HighlightsOnlyCurrent(t *testing.T) {
	snap := Project(status(4, 2))

	require.Len(t, snap.Entries, 4)
	for i, e := range snap.Entries {
		assert.Equal(t, i == 2, e.Active, "entry %d", i)
	}
	assert.Equal(t, "4 files", snap.Count)
}

func TestProject_Empty(t *testing.T) {
	snap := Project(status(0, -1))

	assert.Empty(t, snap.Entries)
	assert.Equal(t, "0 files", snap.Count)
	assert.Equal(t, "0:00", snap.Elapsed)
	assert.Equal(t, Placeholder, snap.Total)
	assert.Equal(t, 0.0, snap.Progress)
	assert.Equal(t, "", snap.NowPlaying)
	assert.Equal(t, "Stopped", snap.State)
}

func TestProject_UnknownDurationUsesPlaceholder(t *testing.T) {
	s := status(1, 0)
	s.Loaded = "id0"
	s.Position = 30 * time.Second

	snap := Project(s)
	assert.Equal(t, "0:30", snap.Elapsed)
	assert.Equal(t, Placeholder, snap.Total)
	assert.Equal(t, 0.0, snap.Progress)
	assert.Equal(t, "song 0", snap.NowPlaying)
}

func TestProject_KnownDuration(t *testing.T) {
	s := status(3, 1)
	s.Loaded = "id1"
	s.State = player.StatePlaying
	s.Position = 30 * time.Second
	s.Duration = 2 * time.Minute
	s.DurationKnown = true
	s.Shuffled = true

	snap := Project(s)
	assert.Equal(t, "2:00", snap.Total)
	assert.InDelta(t, 25.0, snap.Progress, 1e-9)
	assert.Equal(t, "Playing", snap.State)
	assert.Equal(t, "Unshuffle", snap.ShuffleLabel)
}

func TestProject_Idempotent(t *testing.T) {
	s := status(5, 3)
	assert.Equal(t, Project(s), Project(s))
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "1 file", CountLabel(1))
	assert.Equal(t, "12 files", CountLabel(12))
}
