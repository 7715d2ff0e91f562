// Package ingest turns user supplied files into playlist items.
// File contents are never checked here; a file that cannot be decoded fails
// when the player loads it.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"github.com/dhowden/tag"
	"github.com/google/shlex"
	"github.com/samber/lo"

	"github.com/pes18fan/spool/playlist"
)

// Extensions the audio handle can decode. Only used to pick files out of
// directories; a file named explicitly is taken as is.
var Extensions = []string{".mp3", ".flac", ".ogg", ".wav"}

type Options struct {
	// Use "Artist - Title" from the file's tags as its name when present.
	ReadTags bool
}

func IsAudio(path string) bool {
	return lo.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Items builds one item per file. Directories are walked and contribute
// their audio files in lexical order. Paths that cannot be read are skipped
// and reported together in the returned error.
func Items(paths []string, opts Options) ([]playlist.Item, error) {
	var items []playlist.Item
	var errs []error

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", path, err))
			continue
		}

		if !info.IsDir() {
			items = append(items, newItem(path, opts))
			continue
		}

		files, err := audioFiles(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to walk %s: %w", path, err))
		}
		for _, f := range files {
			items = append(items, newItem(f, opts))
		}
	}

	return items, errors.Join(errs...)
}

func audioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsAudio(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func newItem(path string, opts Options) playlist.Item {
	return playlist.Item{
		Name:   displayName(path, opts),
		Source: path,
	}
}

func displayName(path string, opts Options) string {
	base := filepath.Base(path)
	if !opts.ReadTags {
		return base
	}

	f, err := os.Open(path)
	if err != nil {
		return base
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		log.Println("failed to read tags from", path, ":", err)
		return base
	}
	if m.Title() == "" {
		return base
	}
	if m.Artist() == "" {
		return m.Title()
	}
	return m.Artist() + " - " + m.Title()
}

// windowsPath matches a drive letter or UNC path at the start of a field.
var windowsPath = regexp.MustCompile(`(^|[\s'"])([A-Za-z]:\\|\\\\)`)

// ParseDrop splits the text a terminal pastes when files are dropped on it.
// Terminals quote or backslash-escape paths with spaces, and some send
// file:// URIs instead of plain paths. Windows paths keep their backslashes.
func ParseDrop(text string) ([]string, error) {
	return parseDrop(text, runtime.GOOS == "windows" || windowsPath.MatchString(text))
}

func parseDrop(text string, windows bool) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var fields []string
	var err error
	if windows {
		fields, err = splitQuoted(text)
	} else {
		fields, err = shlex.Split(text)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to split dropped text: %w", err)
	}

	paths := make([]string, 0, len(fields))
	for _, field := range fields {
		if strings.HasPrefix(field, "file://") {
			u, err := url.Parse(field)
			if err != nil {
				return nil, fmt.Errorf("bad file uri %q: %w", field, err)
			}
			field = u.Path
			// file:///C:/x parses to /C:/x
			if windows && len(field) > 2 && field[0] == '/' && field[2] == ':' {
				field = field[1:]
			}
		}
		if field != "" {
			paths = append(paths, field)
		}
	}
	return paths, nil
}

// splitQuoted splits on whitespace outside single or double quotes. Unlike a
// shell it has no escapes, so backslashes are kept as path separators.
func splitQuoted(text string) ([]string, error) {
	var (
		fields  []string
		field   strings.Builder
		quote   rune
		inField bool
	)
	for _, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				field.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inField = true
		case unicode.IsSpace(r):
			if inField {
				fields = append(fields, field.String())
				field.Reset()
				inField = false
			}
		default:
			field.WriteRune(r)
			inField = true
		}
	}
	if quote != 0 {
		return nil, errors.New("unterminated quote")
	}
	if inField {
		fields = append(fields, field.String())
	}
	return fields, nil
}
