package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not really audio"), 0o644))
}

func TestIsAudio(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"song.mp3", true},
		{"SONG.MP3", true},
		{"a/b/c.flac", true},
		{"x.ogg", true},
		{"x.wav", true},
		{"cover.jpg", false},
		{"notes", false},
	}

	for _, tt := range tests {
		if got := IsAudio(tt.path); got != tt.expected {
			t.Errorf("IsAudio(%q) = %v, want %v", tt.path, got, tt.expected)
		}
	}
}

func TestItems_FilesKeepOrderAndSkipValidation(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "b side.mp3")
	b := filepath.Join(dir, "readme.txt")
	touch(t, a)
	touch(t, b)

	items, err := Items([]string{a, b}, Options{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "b side.mp3", items[0].Name)
	assert.Equal(t, a, items[0].Source)
	assert.Equal(t, "readme.txt", items[1].Name)
}

func TestItems_WalksDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.flac"))
	touch(t, filepath.Join(dir, "a.mp3"))
	touch(t, filepath.Join(dir, "cover.jpg"))
	touch(t, filepath.Join(dir, "disc2", "c.ogg"))

	items, err := Items([]string{dir}, Options{})
	require.NoError(t, err)

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	assert.Equal(t, []string{"a.mp3", "b.flac", "c.ogg"}, names)
}

func TestItems_ReportsMissingButKeepsTheRest(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mp3")
	touch(t, good)
	missing := filepath.Join(dir, "missing.mp3")

	items, err := Items([]string{missing, good}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.mp3")
	require.Len(t, items, 1)
	assert.Equal(t, good, items[0].Source)
}

func TestItems_Empty(t *testing.T) {
	items, err := Items(nil, Options{ReadTags: true})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestItems_UntaggedFileFallsBackToBaseName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "untagged.mp3")
	touch(t, path)

	items, err := Items([]string{path}, Options{ReadTags: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "untagged.mp3", items[0].Name)
}

func TestParseDrop(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "   ", nil},
		{"single path", "/music/a.mp3\n", []string{"/music/a.mp3"}},
		{"several paths", "/a.mp3 /b.flac", []string{"/a.mp3", "/b.flac"}},
		{"single quoted", "'/home/me/My Song.mp3' /tmp/x.wav", []string{"/home/me/My Song.mp3", "/tmp/x.wav"}},
		{"double quoted", `"/home/me/My Song.mp3"`, []string{"/home/me/My Song.mp3"}},
		{"escaped space", `/home/me/My\ Song.mp3`, []string{"/home/me/My Song.mp3"}},
		{"file uri", "file:///home/me/My%20Song.mp3", []string{"/home/me/My Song.mp3"}},
		{"windows quoted", `"C:\Users\me\My Music\a.mp3"`, []string{`C:\Users\me\My Music\a.mp3`}},
		{"windows bare", `C:\Users\me\a.mp3 D:\b.flac`, []string{`C:\Users\me\a.mp3`, `D:\b.flac`}},
		{"windows share", `\\nas\music\a.mp3`, []string{`\\nas\music\a.mp3`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDrop(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDrop_WindowsMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", " \r\n", nil},
		{"mixed quotes", `'C:\a b.mp3' "D:\it's.wav" E:\c.ogg`, []string{`C:\a b.mp3`, `D:\it's.wav`, `E:\c.ogg`}},
		{"relative", `music\a.mp3`, []string{`music\a.mp3`}},
		{"empty quotes", `"" C:\a.mp3`, []string{`C:\a.mp3`}},
		{"file uri", "file:///C:/My%20Music/a.mp3", []string{"C:/My Music/a.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDrop(tt.input, true)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDrop_UnterminatedQuote(t *testing.T) {
	_, err := parseDrop(`"C:\a.mp3`, true)
	assert.Error(t, err)
	_, err = parseDrop(`'/a.mp3`, false)
	assert.Error(t, err)
}

func TestWatch_ReportsNewAudioFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	require.NoError(t, err)
	defer w.Close()

	touch(t, filepath.Join(dir, "ignored.txt"))
	song := filepath.Join(dir, "dropped.mp3")
	touch(t, song)

	select {
	case got := <-w.Paths():
		assert.Equal(t, song, got)
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no path reported for dropped file")
	}
}

func TestWatch_MissingDir(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
