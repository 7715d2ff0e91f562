package display

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(n int) Snapshot {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Name: fmt.Sprintf("track %d", i), Active: i == 0}
	}
	return Snapshot{
		State:        "Stopped",
		Entries:      entries,
		Elapsed:      "0:00",
		Total:        Placeholder,
		Count:        CountLabel(n),
		ShuffleLabel: ShuffleLabel(false),
	}
}

func TestRender_ContainsLabels(t *testing.T) {
	r := NewRenderer()
	out := r.Render(snapshot(3), 0, "index out of range", "help")

	assert.Contains(t, out, "Nothing loaded")
	assert.Contains(t, out, "0:00 / --:--")
	assert.Contains(t, out, "3 files")
	assert.Contains(t, out, "Shuffle")
	assert.Contains(t, out, "track 2")
	assert.Contains(t, out, "index out of range")
	assert.True(t, strings.HasSuffix(out, "help"))
}

func TestRenderer_SeekFraction(t *testing.T) {
	r := NewRenderer()
	r.SetSize(84, 30)

	_, ok := r.SeekFraction(10, r.barRow)
	assert.False(t, ok, "nothing rendered yet")

	r.Render(snapshot(2), 0, "", "")

	f, ok := r.SeekFraction(indent, r.barRow)
	require.True(t, ok)
	assert.Equal(t, 0.0, f)

	f, ok = r.SeekFraction(indent+40, r.barRow)
	require.True(t, ok)
	assert.InDelta(t, 0.5, f, 1e-9)

	_, ok = r.SeekFraction(indent+80, r.barRow)
	assert.False(t, ok)
	_, ok = r.SeekFraction(0, r.barRow)
	assert.False(t, ok)
	_, ok = r.SeekFraction(20, r.barRow+1)
	assert.False(t, ok)
}

func TestRenderer_BarRowMatchesOutput(t *testing.T) {
	r := NewRenderer()
	out := r.Render(snapshot(1), 0, "", "")
	lines := strings.Split(out, "\n")

	require.Greater(t, len(lines), r.barRow+1)
	assert.Contains(t, lines[r.barRow+1], "0:00 / --:--")
}

func TestRenderer_EntryAt(t *testing.T) {
	r := NewRenderer()
	r.SetSize(80, chromeHeight+4)
	out := r.Render(snapshot(10), 0, "", "")
	lines := strings.Split(out, "\n")

	idx, ok := r.EntryAt(r.listRow + 2)
	require.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Contains(t, lines[r.listRow+2], "track 2")

	_, ok = r.EntryAt(r.listRow + 4)
	assert.False(t, ok, "only four rows fit")
	_, ok = r.EntryAt(r.listRow - 1)
	assert.False(t, ok)
}

func TestRenderer_ScrollsToCursor(t *testing.T) {
	r := NewRenderer()
	r.SetSize(80, chromeHeight+4)
	out := r.Render(snapshot(10), 8, "", "")

	assert.Contains(t, out, "track 8")
	assert.NotContains(t, out, "track 0")
	idx, ok := r.EntryAt(r.listRow)
	require.True(t, ok)
	assert.Equal(t, 5, idx)
}

func TestRenderer_ShortList(t *testing.T) {
	r := NewRenderer()
	r.Render(snapshot(2), 0, "", "")

	_, ok := r.EntryAt(r.listRow + 2)
	assert.False(t, ok)
}

func TestRenderer_TruncatesLongNames(t *testing.T) {
	r := NewRenderer()
	r.SetSize(20, 30)
	s := snapshot(1)
	s.Entries[0].Name = strings.Repeat("x", 100)

	out := r.Render(s, 0, "", "")
	assert.NotContains(t, out, strings.Repeat("x", 100))
	assert.Contains(t, out, "…")
}
